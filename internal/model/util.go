package model

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	orderNumberPrefix = "OR-"
	orderNumberMin    = 100000
	orderNumberMax    = 9999999
)

// NewOrderNumber returns a human-readable order number such as OR-4821937
func NewOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(orderNumberMax-orderNumberMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("%s%d", orderNumberPrefix, n.Int64()+orderNumberMin), nil
}
