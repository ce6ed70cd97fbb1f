package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
)

// Encode serializes v to JSON and base64-encodes the UTF-8 bytes using the
// standard alphabet, matching the tokens the hosted page produces.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode token payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses [Encode] into dst. Any malformed input, base64 or JSON,
// is reported as [shared.ErrDecode]; callers surface it as a notice and
// carry on with local state.
func Decode(tok string, dst any) error {
	data, err := decodeBase64(tok)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}
	return nil
}

// decodeBase64 accepts the forms a token shows up in after passing through
// chat apps and address bars: surrounding whitespace, percent-encoding,
// URL-safe alphabet, stripped padding.
func decodeBase64(tok string) ([]byte, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return nil, fmt.Errorf("empty token")
	}

	if unescaped, err := url.QueryUnescape(tok); err == nil {
		tok = unescaped
	}

	// Query strings turn '+' into a space; put them back before decoding.
	tok = strings.ReplaceAll(tok, " ", "+")

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if data, err := enc.DecodeString(tok); err == nil {
			return data, nil
		}
	}

	return nil, fmt.Errorf("not valid base64")
}
