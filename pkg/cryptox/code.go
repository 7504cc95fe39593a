package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// Verification code bounds. Codes never start with a zero digit.
const (
	CodeMin = 100000
	CodeMax = 999999
)

// GenerateNumericCode returns a decimal code drawn uniformly from
// [CodeMin, CodeMax] using crypto/rand.
func GenerateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(CodeMax-CodeMin+1))
	if err != nil {
		return "", fmt.Errorf("cryptox: generate code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+CodeMin, 10), nil
}
