package crypto

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func ComparePassword(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

func GenerateRandomAlphanumeric(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[RandIntn(len(alphanumeric))]
	}
	return string(b)
}

// GenerateDateToken derives an opaque token from an 8-character random
// salt and the calendar date of t (no zero-padding).
func GenerateDateToken(t time.Time) string {
	salt := GenerateRandomAlphanumeric(8)
	date := fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
	sum := md5.Sum([]byte(salt + date))
	return hex.EncodeToString(sum[:])
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}
