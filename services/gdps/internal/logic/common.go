package logic

import (
	"strconv"
	"strings"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
)

const (
	levelPageSize   = 10
	commentPageSize = 10
	messagePageSize = 10
	requestPageSize = 20
	userPageSize    = 10
	maxPageSize     = 100
)

// decodeText unmasks a base64 text field; the empty string stays empty.
func decodeText(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	out, err := codec.DecodeBase64String(s)
	if err != nil {
		return "", response.Failed
	}
	return out, nil
}

// intList parses "1,2,3", tolerating the "(1,2,3)" form and "-" for none.
func intList(s string) []int {
	s = strings.Trim(strings.TrimSpace(s), "()")
	if s == "" || s == "-" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func clampCount(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return min(n, maxPageSize)
}
