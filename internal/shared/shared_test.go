package shared

import (
	"errors"
	"testing"
)

func TestNormalizeLoginKey(t *testing.T) {
	tc := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "basic normalization",
			key:  "Singer@Example.Com",
			want: "singer@example.com",
		},
		{
			name: "surrounding whitespace",
			key:  "  admin@playlistvote.local  ",
			want: "admin@playlistvote.local",
		},
		{
			name: "username form",
			key:  " Admin ",
			want: "admin",
		},
		{
			name: "already canonical",
			key:  "tenor@band.org",
			want: "tenor@band.org",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLoginKey(tt.key)
			if got != tt.want {
				t.Errorf("NormalizeLoginKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenBrowser(t *testing.T) {
	t.Run("unsupported platform", func(t *testing.T) {
		orig := goos
		goos = func() string { return "plan9" }
		defer func() { goos = orig }()

		if err := OpenBrowser("https://example.com"); !errors.Is(err, ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Errorf("expected unique IDs, got %s twice", a)
	}
}
