package id

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// New returns a random (v4) UUID in its canonical 36-char form.
func New() string { return uuid.NewString() }

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// AssetCode builds a human-scannable asset code: PREFIX-yyyyMMddHHmmssSSS-XXX.
func AssetCode(prefix string, at time.Time) string {
	ts := strings.ReplaceAll(at.UTC().Format("20060102150405.000"), ".", "")
	return strings.ToUpper(prefix) + "-" + ts + "-" + randomSuffix(3)
}

func randomSuffix(n int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < n; i++ {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte('X')
			continue
		}
		b.WriteByte(codeAlphabet[k.Int64()])
	}
	return b.String()
}
