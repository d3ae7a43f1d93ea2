package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// GenerateCode returns a 6-digit verification code drawn uniformly from
// [100000, 999999]. The range excludes leading zeros, so the string form is
// always exactly six characters. The numeric space is small; brute force is
// bounded by the per-session confirmation path and the rate limiter, not by
// the code itself.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}
