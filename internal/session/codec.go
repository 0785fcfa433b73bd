package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedToken is returned by Decode for anything that is not exactly
// "{expiresAtMs}.{nonce}.{signature}".
var ErrMalformedToken = errors.New("malformed session token")

// Token is the decoded form of a stateless admin session token. All three
// fields are drawn from dot-free alphabets (decimal, hex, base64url), so "."
// is an unambiguous delimiter.
type Token struct {
	ExpiresAtMs int64
	Nonce       string
	Signature   string
}

// Encode joins the token fields into the cookie wire format.
func Encode(t Token) string {
	return fmt.Sprintf("%d.%s.%s", t.ExpiresAtMs, t.Nonce, t.Signature)
}

// Decode splits raw strictly into three non-empty parts with a numeric expiry.
func Decode(raw string) (Token, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Token{}, ErrMalformedToken
	}

	expiresAtMs, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Token{}, ErrMalformedToken
	}
	if parts[1] == "" || parts[2] == "" {
		return Token{}, ErrMalformedToken
	}

	return Token{
		ExpiresAtMs: expiresAtMs,
		Nonce:       parts[1],
		Signature:   parts[2],
	}, nil
}

// Sign computes the HMAC-SHA256 over "{expiresAtMs}.{nonce}", base64url
// encoded without padding.
func Sign(secret []byte, expiresAtMs int64, nonce string) string {
	h := hmac.New(sha256.New, secret)
	fmt.Fprintf(h, "%d.%s", expiresAtMs, nonce)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
