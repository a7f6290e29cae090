package codec

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
)

const (
	// ProtocolPepper salts every security token.
	ProtocolPepper = "xI25fpAapCQg"
	// CredentialPepper salts the GJP2 digest.
	CredentialPepper = "mI29fmAnxgTs"
)

// SHA1Hex returns the lowercase hex SHA-1 digest of s.
func SHA1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// GJP2 hashes a plain password into the client's GJP2 digest.
func GJP2(password string) string {
	return SHA1Hex(password + CredentialPepper)
}

// IsGJP2 reports whether s looks like a GJP2 digest.
func IsGJP2(s string) bool {
	if len(s) != 40 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// DecodeGJP unmasks a legacy GJP value into the plain password.
func DecodeGJP(gjp string) (string, error) {
	return DecodeXOR(gjp, KeyGJP)
}

// EncodeGJP masks a plain password the way the client does.
func EncodeGJP(password string) string {
	return EncodeXOR(password, KeyGJP)
}

const levelHashSamples = 40

// LevelDataHash samples 40 evenly spaced bytes of the level body.
func LevelDataHash(data string) string {
	if len(data) < levelHashSamples+1 {
		return SHA1Hex(data + ProtocolPepper)
	}
	step := len(data) / levelHashSamples
	var b strings.Builder
	b.Grow(levelHashSamples)
	for i := 0; i < levelHashSamples; i++ {
		b.WriteByte(data[i*step])
	}
	return SHA1Hex(b.String() + ProtocolPepper)
}

// LevelMetaHash hashes the level metadata fields, comma joined.
func LevelMetaHash(userID, stars int, demon bool, levelID int, coinsVerified bool, featureOrder int, password string, scheduleID int) string {
	fields := []string{
		strconv.Itoa(userID),
		strconv.Itoa(stars),
		boolDigit(demon),
		strconv.Itoa(levelID),
		boolDigit(coinsVerified),
		strconv.Itoa(featureOrder),
		password,
		strconv.Itoa(scheduleID),
	}
	return SHA1Hex(strings.Join(fields, ",") + ProtocolPepper)
}

// SearchHashEntry is the subset of a level the search hash reads.
type SearchHashEntry struct {
	ID            int
	Stars         int
	CoinsVerified bool
}

// SearchHash covers a page of search results.
func SearchHash(levels []SearchHashEntry) string {
	var b strings.Builder
	for _, l := range levels {
		id := strconv.Itoa(l.ID)
		b.WriteByte(id[0])
		b.WriteByte(id[len(id)-1])
		b.WriteString(strconv.Itoa(l.Stars))
		b.WriteString(boolDigit(l.CoinsVerified))
	}
	return SHA1Hex(b.String() + ProtocolPepper)
}

func boolDigit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
