package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// WalletNumberLength is the number of digits in a generated wallet number.
const WalletNumberLength = 12

var randInt = rand.Int

// GenerateWalletNumber generates a random numeric wallet number.
// Uniqueness is enforced by the wallets.wallet_number unique index;
// callers retry on a constraint violation.
func GenerateWalletNumber() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(WalletNumberLength), nil)
	n, err := randInt(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate wallet number: %w", err)
	}
	return fmt.Sprintf("%0*d", WalletNumberLength, n), nil
}
