// Package signature provides helper functions for hashing, signing, and
// verifying the data that moves through the blockchain.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros. It is used as the previous block
// hash for the genesis block, which has no parent.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns a unique string for the value. The value is marshaled into
// canonical JSON first so the hash is stable across processes. Struct field
// order fixes the encoding, unlike a map.
func Hash(value any) string {
	data, err := digest(value)
	if err != nil {
		return ZeroHash
	}

	return hexutil.Encode(data)
}

// Sign uses the specified private key to sign the value. The signature is
// returned in the 65 byte [R|S|V] format produced by the secp256k1 curve.
func Sign(value any, privateKey *ecdsa.PrivateKey) ([]byte, error) {

	// Prepare the data for signing.
	data, err := digest(value)
	if err != nil {
		return nil, err
	}

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return nil, err
	}

	// Check the signature verifies against the public key we signed with
	// before handing it out.
	publicKeyHex := PublicKeyHex(&privateKey.PublicKey)
	if err := Verify(value, publicKeyHex, sig); err != nil {
		return nil, err
	}

	return sig, nil
}

// Verify checks the signature was produced over the value by the private key
// belonging to the specified hex encoded compressed public key.
func Verify(value any, publicKeyHex string, sig []byte) error {
	if len(sig) < crypto.RecoveryIDOffset {
		return fmt.Errorf("signature is %d bytes, need at least %d", len(sig), crypto.RecoveryIDOffset)
	}

	publicKey, err := ToPublicKey(publicKeyHex)
	if err != nil {
		return err
	}

	data, err := digest(value)
	if err != nil {
		return err
	}

	// The recovery id is not part of the verification.
	if !crypto.VerifySignature(crypto.CompressPubkey(publicKey), data, sig[:crypto.RecoveryIDOffset]) {
		return errors.New("invalid signature")
	}

	return nil
}

// PublicKeyHex returns the hex encoding of the compressed public key. This
// value is used as the account address on the chain.
func PublicKeyHex(publicKey *ecdsa.PublicKey) string {
	return hex.EncodeToString(crypto.CompressPubkey(publicKey))
}

// ToPublicKey reconstructs the public key from its hex encoded compressed
// form.
func ToPublicKey(publicKeyHex string) (*ecdsa.PublicKey, error) {
	data, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}

	publicKey, err := crypto.DecompressPubkey(data)
	if err != nil {
		return nil, fmt.Errorf("decompressing public key: %w", err)
	}

	return publicKey, nil
}

// SignatureString returns the signature as a hex string for display.
func SignatureString(sig []byte) string {
	return hexutil.Encode(sig)
}

// =============================================================================

// digest returns a 32 byte array that uniquely represents the value. The
// JSON marshaling provides the canonical byte representation that both the
// signer and the verifier must agree on.
func digest(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(data)

	return hash[:], nil
}
