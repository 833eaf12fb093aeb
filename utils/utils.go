package utils

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"os"

	"github.com/murmurapp/murmur/utils/dotenv"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RandomAlphabetString generates a random lowercase string of length n.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// TextToMd5Hash returns the hex md5 digest of the provided text. Used to
// derive stable object store keys from urls.
func TextToMd5Hash(text string) (string, error) {
	h := md5.New()
	if _, err := h.Write([]byte(text)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsProdEnv returns true iff the service runs with the production
// environment, decided solely by the MURMUR_ENV environment variable.
func IsProdEnv() bool {
	return os.Getenv("MURMUR_ENV") == dotenv.ProdEnv
}
