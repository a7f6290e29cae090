package codec

import (
	"errors"
	"math/rand/v2"
)

// ChestPrefixLen is the length of the random nonce in front of chest bodies.
const ChestPrefixLen = 5

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var errShortCheck = errors.New("codec: check string shorter than its prefix")

// RandomPrefix returns a five character alphanumeric nonce.
func RandomPrefix() string {
	b := make([]byte, ChestPrefixLen)
	for i := range b {
		b[i] = alphanumeric[rand.IntN(len(alphanumeric))]
	}
	return string(b)
}

// DecodeCheck strips the nonce of a client check string and unmasks the rest.
func DecodeCheck(chk, key string) (string, error) {
	if len(chk) < ChestPrefixLen {
		return "", errShortCheck
	}
	return DecodeXOR(chk[ChestPrefixLen:], key)
}

// EncodeChest masks a chest response body. It returns the encrypted part and
// the full body "prefix || encrypted | security".
func EncodeChest(prefix, plain string) (encrypted, body string) {
	encrypted = EncodeXOR(plain, KeyChest)
	return encrypted, prefix + encrypted + "|" + SHA1Hex(encrypted+ProtocolPepper)
}
