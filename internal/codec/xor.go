package codec

// Cyclic XOR keys.
const (
	KeyGJP           = "37526"
	KeyMessage       = "14251"
	KeyLevelPassword = "26364"
	KeyChest         = "59182"
	KeyQuest         = "19847"
)

// XOR applies key cyclically over data and returns a new slice.
// An empty key returns a copy of data.
func XOR(data []byte, key string) []byte {
	out := make([]byte, len(data))
	if key == "" {
		copy(out, data)
		return out
	}
	for i, c := range data {
		out[i] = c ^ key[i%len(key)]
	}
	return out
}

// EncodeXOR masks plain with key and base64url-encodes the result.
func EncodeXOR(plain, key string) string {
	return EncodeBase64(XOR([]byte(plain), key))
}

// DecodeXOR reverses EncodeXOR.
func DecodeXOR(s, key string) (string, error) {
	b, err := DecodeBase64(s)
	if err != nil {
		return "", err
	}
	return string(XOR(b, key)), nil
}
