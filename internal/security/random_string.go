package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// MinSecretKeyLength is the shortest HS256 signing key handed out.
	MinSecretKeyLength = 32
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// NewSecretKey returns a random token-signing key. Lengths below MinSecretKeyLength are raised to it.
func NewSecretKey(length int) (string, error) {
	if length < MinSecretKeyLength {
		length = MinSecretKeyLength
	}
	return RandomString(length, secretKeyAlphabet)
}

// RandomString draws each character uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[position.Int64()]
	}
	return string(out), nil
}
