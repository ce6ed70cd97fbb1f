package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/services"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	tu "github.com/jocimarsoliveira81-sudo/playlistvote/internal/testing"
	"github.com/urfave/cli/v3"
)

type testEnv struct {
	runner   *Runner
	output   *bytes.Buffer
	clipped  []string
	metadata *tu.MockMetadata
	insight  *tu.MockInsight
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	env := &testEnv{
		output:   &bytes.Buffer{},
		metadata: &tu.MockMetadata{Meta: &services.Metadata{Title: "Oceans", Author: "Hillsong United"}},
		insight:  &tu.MockInsight{Text: "Open with Oceans."},
	}

	env.runner = NewRunner(RunnerOpts{
		Config:   shared.DefaultConfig(),
		Store:    store.New(db),
		Metadata: env.metadata,
		Insight:  env.insight,
		Clip: func(s string) error {
			env.clipped = append(env.clipped, s)
			return nil
		},
		Browse: func(string) error { return nil },
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: env.output,
	})

	return env
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "playlistvote",
		Commands: e.runner.register(),
	}
	e.output.Reset()
	return app.Run(context.Background(), append([]string{"playlistvote"}, args...))
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	if err := e.run(t, args...); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return e.output.String()
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.clip == nil || runner.browse == nil {
				t.Error("expected clipboard and browser helpers to be set")
			}
		})

		t.Run("with dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Config: config, Output: output})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes compact JSON", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if got := output.String(); got != "{\"key\":\"value\"}\n" {
				t.Errorf("unexpected output: %q", got)
			}
		})

		t.Run("propagates write failures", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			if err := runner.writeJSON("x", false); err == nil {
				t.Error("expected error from failing writer")
			}
		})
	})
}

func TestSessionCommands(t *testing.T) {
	t.Run("login seeds the primary admin", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.mustRun(t, "login", "admin", "adminadmin")
		if !strings.Contains(out, "Signed in as Music Director") {
			t.Errorf("unexpected login output: %q", out)
		}

		out = env.mustRun(t, "whoami")
		if !strings.Contains(out, "ADMIN") {
			t.Errorf("expected admin role in whoami output: %q", out)
		}
	})

	t.Run("login rejects bad credentials", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.run(t, "login", "admin", "wrong")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("logout clears the session", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		env.mustRun(t, "logout")

		if err := env.run(t, "whoami"); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated after logout, got %v", err)
		}
	})
}

func TestSongCommands(t *testing.T) {
	t.Run("add fills metadata from lookup", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")

		out := env.mustRun(t, "songs", "add", "--url", "https://youtu.be/dQw4w9WgXcQ")
		if !strings.Contains(out, "Oceans") || !strings.Contains(out, "Hillsong United") {
			t.Errorf("expected looked-up metadata in output: %q", out)
		}
		if env.metadata.Lookups != 1 {
			t.Errorf("expected one metadata lookup, got %d", env.metadata.Lookups)
		}

		out = env.mustRun(t, "songs", "list")
		if !strings.Contains(out, "Oceans") {
			t.Errorf("expected song in list: %q", out)
		}
	})

	t.Run("explicit title skips the lookup", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")

		env.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker", "--artist", "Sinach")
		if env.metadata.Lookups != 0 {
			t.Errorf("expected no metadata lookup, got %d", env.metadata.Lookups)
		}
	})

	t.Run("add requires the admin role", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		env.mustRun(t, "members", "register", "-e", "ana@example.com", "-p", "s3cret", "-n", "Ana")
		env.mustRun(t, "logout")
		env.mustRun(t, "login", "ana@example.com", "s3cret")

		err := env.run(t, "songs", "add", "--url", "https://youtu.be/abc12345678")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected admin gate, got %v", err)
		}
	})

	t.Run("vote records and replaces a score", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		out := env.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker")

		id := extractID(t, out)
		env.mustRun(t, "vote", id, "5")
		env.mustRun(t, "vote", id, "3")

		listed := env.mustRun(t, "songs", "list")
		if !strings.Contains(listed, "avg 3.0 (1 votes") {
			t.Errorf("expected replaced vote in admin listing: %q", listed)
		}
	})

	t.Run("vote rejects out-of-range scores", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		out := env.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker")
		id := extractID(t, out)

		if err := env.run(t, "vote", id, "6"); !errors.Is(err, shared.ErrInvalidScore) {
			t.Errorf("expected ErrInvalidScore, got %v", err)
		}
	})

	t.Run("visibility toggle hides a song from members", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		out := env.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker")
		id := extractID(t, out)

		env.mustRun(t, "songs", "visibility", id)
		env.mustRun(t, "members", "register", "-e", "ana@example.com", "-p", "s3cret")
		env.mustRun(t, "logout")
		env.mustRun(t, "login", "ana@example.com", "s3cret")

		listed := env.mustRun(t, "songs", "list")
		if strings.Contains(listed, "Way Maker") {
			t.Errorf("expected private song hidden from member: %q", listed)
		}
	})
}

func TestShareCommands(t *testing.T) {
	t.Run("share playlist prints a link and copies it", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		env.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker")

		out := env.mustRun(t, "share", "playlist", "--copy")
		if !strings.Contains(out, "?playlist=") {
			t.Errorf("expected playlist link: %q", out)
		}
		if len(env.clipped) != 1 || !strings.Contains(env.clipped[0], "?playlist=") {
			t.Errorf("expected link on clipboard, got %v", env.clipped)
		}
	})

	t.Run("open applies a shared playlist link on another device", func(t *testing.T) {
		sender := newTestEnv(t)
		sender.mustRun(t, "login", "admin", "adminadmin")
		sender.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker")
		link := strings.Fields(sender.mustRun(t, "share", "playlist"))[0]

		receiver := newTestEnv(t)
		out := receiver.mustRun(t, "open", link)
		if !strings.Contains(out, "✓") {
			t.Errorf("expected success notice: %q", out)
		}

		receiver.mustRun(t, "login", "admin", "adminadmin")
		listed := receiver.mustRun(t, "songs", "list")
		if !strings.Contains(listed, "Way Maker") {
			t.Errorf("expected merged song on receiver: %q", listed)
		}
	})

	t.Run("request and approve admit a member", func(t *testing.T) {
		member := newTestEnv(t)
		out := member.mustRun(t, "request", "-n", "Ana", "-e", "ana@example.com", "-p", "s3cret")
		code := strings.Fields(out)[0]

		admin := newTestEnv(t)
		admin.mustRun(t, "login", "admin", "adminadmin")
		approveOut := admin.mustRun(t, "approve", code)
		if !strings.Contains(approveOut, "Approved Ana") {
			t.Errorf("unexpected approve output: %q", approveOut)
		}
		if !strings.Contains(approveOut, "?invite=") {
			t.Errorf("expected invite link after approval: %q", approveOut)
		}

		roster := admin.mustRun(t, "members", "list")
		if !strings.Contains(roster, "ana@example.com") {
			t.Errorf("expected member in roster: %q", roster)
		}
	})

	t.Run("approving the same request twice fails", func(t *testing.T) {
		member := newTestEnv(t)
		code := strings.Fields(member.mustRun(t, "request", "-e", "ana@example.com", "-p", "s3cret"))[0]

		admin := newTestEnv(t)
		admin.mustRun(t, "login", "admin", "adminadmin")
		admin.mustRun(t, "approve", code)

		if err := admin.run(t, "approve", code); !errors.Is(err, shared.ErrDuplicateLoginKey) {
			t.Errorf("expected ErrDuplicateLoginKey, got %v", err)
		}
	})

	t.Run("invite link admits the member on a fresh device", func(t *testing.T) {
		admin := newTestEnv(t)
		admin.mustRun(t, "login", "admin", "adminadmin")
		admin.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker")
		admin.mustRun(t, "members", "register", "-n", "Ana", "-e", "ana@example.com", "-p", "s3cret")
		link := strings.Fields(admin.mustRun(t, "share", "invite", "ana@example.com"))[0]

		device := newTestEnv(t)
		out := device.mustRun(t, "open", link)
		if !strings.Contains(out, "Welcome, Ana") {
			t.Errorf("expected welcome notice: %q", out)
		}
		if strings.Contains(out, "Signed in as") {
			t.Errorf("invite must not sign anyone in: %q", out)
		}

		device.mustRun(t, "login", "ana@example.com", "s3cret")
		listed := device.mustRun(t, "songs", "list")
		if !strings.Contains(listed, "Way Maker") {
			t.Errorf("expected bundled songs on device: %q", listed)
		}
	})

	t.Run("opening an invite keeps the current session", func(t *testing.T) {
		admin := newTestEnv(t)
		admin.mustRun(t, "login", "admin", "adminadmin")
		admin.mustRun(t, "members", "register", "-n", "Ana", "-e", "ana@example.com", "-p", "s3cret")
		link := strings.Fields(admin.mustRun(t, "share", "invite", "ana@example.com", "--grant-only"))[0]

		out := admin.mustRun(t, "open", link)
		if !strings.Contains(out, "Signed in as Music Director") {
			t.Errorf("expected the admin session restored: %q", out)
		}

		whoami := admin.mustRun(t, "whoami")
		if !strings.Contains(whoami, "Music Director") {
			t.Errorf("admin session must survive the invite: %q", whoami)
		}
	})

	t.Run("sync code moves roster and catalog", func(t *testing.T) {
		admin := newTestEnv(t)
		admin.mustRun(t, "login", "admin", "adminadmin")
		admin.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker")
		admin.mustRun(t, "members", "register", "-e", "ana@example.com", "-p", "s3cret")
		code := strings.Fields(admin.mustRun(t, "share", "sync"))[0]

		device := newTestEnv(t)
		out := device.mustRun(t, "import", "sync", code)
		if !strings.Contains(out, "2 members and 1 songs") {
			t.Errorf("unexpected import output: %q", out)
		}

		device.mustRun(t, "login", "ana@example.com", "s3cret")
	})

	t.Run("corrupted codes are rejected", func(t *testing.T) {
		env := newTestEnv(t)
		if err := env.run(t, "import", "playlist", "%%%not-base64%%%"); !errors.Is(err, shared.ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})
}

func TestMemberCommands(t *testing.T) {
	t.Run("primary admin cannot be removed", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")

		if err := env.run(t, "members", "remove", "admin"); !errors.Is(err, shared.ErrAdminImmutable) {
			t.Errorf("expected ErrAdminImmutable, got %v", err)
		}
	})

	t.Run("reset-password changes a member's login", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		env.mustRun(t, "members", "register", "-e", "ana@example.com", "-p", "old")
		env.mustRun(t, "members", "reset-password", "ana@example.com", "-p", "new")
		env.mustRun(t, "logout")

		if err := env.run(t, "login", "ana@example.com", "old"); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected old password rejected, got %v", err)
		}
		env.mustRun(t, "login", "ana@example.com", "new")
	})

	t.Run("passwd changes own password", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		env.mustRun(t, "members", "passwd", "-p", "longersecret")
		env.mustRun(t, "logout")
		env.mustRun(t, "login", "admin", "longersecret")
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		env.mustRun(t, "members", "register", "-e", "ana@example.com", "-p", "s3cret")

		err := env.run(t, "members", "register", "-e", "ANA@example.com", "-p", "other")
		if !errors.Is(err, shared.ErrDuplicateLoginKey) {
			t.Errorf("expected ErrDuplicateLoginKey, got %v", err)
		}
	})
}

func TestInsightAndExport(t *testing.T) {
	t.Run("insight prints the assistant text", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")

		out := env.mustRun(t, "insight")
		if !strings.Contains(out, "Open with Oceans.") {
			t.Errorf("expected insight text: %q", out)
		}
	})

	t.Run("export writes CSV to stdout", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")
		env.mustRun(t, "songs", "add", "--url", "https://youtu.be/abc12345678", "--title", "Way Maker")

		out := env.mustRun(t, "export", "--format", "csv")
		if !strings.Contains(out, "Way Maker") {
			t.Errorf("expected song row in CSV: %q", out)
		}
	})

	t.Run("export rejects unknown formats", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun(t, "login", "admin", "adminadmin")

		if err := env.run(t, "export", "--format", "xml"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

// extractID pulls the generated song ID out of the `songs add` output,
// which ends with "(<id>)".
func extractID(t *testing.T, out string) string {
	t.Helper()
	start := strings.LastIndex(out, "(")
	end := strings.LastIndex(out, ")")
	if start < 0 || end < start {
		t.Fatalf("no song id in output: %q", out)
	}
	return out[start+1 : end]
}
