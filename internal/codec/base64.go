package codec

import (
	"encoding/base64"
	"strings"
)

// EncodeBase64 returns the padded URL-safe base64 encoding of b.
func EncodeBase64(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}

// EncodeBase64String is EncodeBase64 over a string.
func EncodeBase64String(s string) string {
	return EncodeBase64([]byte(s))
}

// DecodeBase64 decodes URL-safe base64 with or without padding. Standard
// alphabet characters are accepted too since older clients send them.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("+", "-", "/", "_").Replace(s)
	s = strings.TrimRight(s, "=")
	return base64.RawURLEncoding.DecodeString(s)
}

// DecodeBase64String is DecodeBase64 returning a string.
func DecodeBase64String(s string) (string, error) {
	b, err := DecodeBase64(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
