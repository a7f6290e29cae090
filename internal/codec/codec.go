// Package codec implements the game's text wire format: key-indexed records,
// the base64 and cyclic XOR layers and the SHA-1 security tokens.
package codec

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// Sep is the default key/value separator.
	Sep = ":"
	// SongSep separates song record pairs.
	SongSep = "~|~"
	// SongListSep separates song records in a list.
	SongListSep = "~:~"
	// ListSep separates records in a list.
	ListSep = "|"
	// CommentSep separates comment record pairs.
	CommentSep = "~"
)

// ErrOddTokens is returned by Decode when the input does not split into pairs.
var ErrOddTokens = errors.New("codec: odd number of tokens")

// Record is a key-indexed map. Keys are small positive integers whose meaning
// is fixed per record shape.
type Record map[int]string

// Set stores a string value.
func (r Record) Set(k int, v string) Record {
	r[k] = v
	return r
}

// SetInt stores an integer value.
func (r Record) SetInt(k, v int) Record {
	r[k] = strconv.Itoa(v)
	return r
}

// SetBool stores 1 or 0.
func (r Record) SetBool(k int, v bool) Record {
	if v {
		r[k] = "1"
	} else {
		r[k] = "0"
	}
	return r
}

// Int returns the integer value at k, or def when absent or malformed.
func (r Record) Int(k, def int) int {
	v, ok := r[k]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Encode joins the record's pairs with sep. Keys are emitted in ascending order.
func Encode(r Record, sep string) string {
	if sep == "" {
		sep = Sep
	}
	keys := make([]int, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(strconv.Itoa(k))
		b.WriteString(sep)
		b.WriteString(r[k])
	}
	return b.String()
}

// EncodeList encodes each record with sep and joins them with listSep.
func EncodeList(rs []Record, sep, listSep string) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = Encode(r, sep)
	}
	return strings.Join(parts, listSep)
}

// Decode splits s on sep into alternating keys and values and casts each
// through the supplied functions.
func Decode[K comparable, V any](s, sep string, key func(string) (K, error), value func(string) (V, error)) (map[K]V, error) {
	if sep == "" {
		sep = Sep
	}
	out := make(map[K]V)
	if s == "" {
		return out, nil
	}
	tokens := strings.Split(s, sep)
	if len(tokens)%2 != 0 {
		return nil, ErrOddTokens
	}
	for i := 0; i < len(tokens); i += 2 {
		k, err := key(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("codec: key %q: %w", tokens[i], err)
		}
		v, err := value(tokens[i+1])
		if err != nil {
			return nil, fmt.Errorf("codec: value for %q: %w", tokens[i], err)
		}
		out[k] = v
	}
	return out, nil
}

// DecodeRecord decodes s into a Record with integer keys and raw values.
func DecodeRecord(s, sep string) (Record, error) {
	m, err := Decode(s, sep, strconv.Atoi, func(v string) (string, error) { return v, nil })
	if err != nil {
		return nil, err
	}
	return Record(m), nil
}

// Page renders the pagination trailer "total:offset:pageSize".
func Page(total, page, pageSize int) string {
	return fmt.Sprintf("%d:%d:%d", total, page*pageSize, pageSize)
}
