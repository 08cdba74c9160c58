// Package database contains the transaction and block types that make up
// the chain, along with the hashing, signing, and validation rules that bind
// them together.
package database

import (
	"crypto/ecdsa"
	"errors"

	"github.com/minichain/minichain/foundation/blockchain/signature"
)

// AccountID represents an account on the chain. The value is the hex
// encoding of the account's compressed secp256k1 public key. The zero value
// is the reward sentinel, the distinguished sender for mining rewards.
type AccountID string

// RewardAccountID is the sentinel sender for mining reward transactions.
// There is no payer and no signature behind it.
const RewardAccountID AccountID = ""

// ToAccountID converts a hex encoded string to an account id and validates
// it represents a real point on the curve.
func ToAccountID(hex string) (AccountID, error) {
	a := AccountID(hex)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// PublicKeyToAccountID converts the public key to an account id.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(signature.PublicKeyHex(&pk))
}

// IsAccountID verifies the underlying data decodes to a compressed
// secp256k1 public key.
func (a AccountID) IsAccountID() bool {
	if _, err := signature.ToPublicKey(string(a)); err != nil {
		return false
	}

	return true
}
