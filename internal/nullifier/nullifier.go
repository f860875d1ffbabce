// Package nullifier derives World ID external nullifiers.
package nullifier

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// fieldBytes is the width of an encoded uint256.
const fieldBytes = 32

// HashToField hashes input with keccak256 and shifts the digest right by
// 8 bits so the result always fits the SNARK scalar field.
func HashToField(input []byte) *big.Int {
	h := sha3.NewLegacyKeccak256()
	h.Write(input)
	n := new(big.Int).SetBytes(h.Sum(nil))
	return n.Rsh(n, 8)
}

// Encode renders a field element as a 0x-prefixed, zero-padded hex string.
func Encode(n *big.Int) string {
	return fmt.Sprintf("0x%064x", n)
}

// Decode parses a value produced by Encode.
func Decode(s string) (*big.Int, error) {
	hex := strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(hex) == 0 || len(hex) > 2*fieldBytes {
		return nil, fmt.Errorf("invalid field element length %d", len(hex))
	}
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return nil, fmt.Errorf("invalid field element %q", s)
	}
	return n, nil
}

// External returns the external nullifier of action on appID, i.e.
// hashToField(abi.encodePacked(uint256(hashToField(appID)), action)).
func External(appID, action string) string {
	buf := make([]byte, fieldBytes, fieldBytes+len(action))
	HashToField([]byte(appID)).FillBytes(buf)
	buf = append(buf, action...)
	return Encode(HashToField(buf))
}
