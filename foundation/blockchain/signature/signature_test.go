package signature_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minichain/minichain/foundation/blockchain/signature"
)

const (
	pkHexKey      = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	otherPkHexKey = "aba14c5e2a6e9a2b510ca02edb66ea5f73103b8d0965e20d2d945b740c171852"
)

// =============================================================================

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}
	hash := "0x0f6887ac85101d6d6425a617edf35bd721b5f619fb92c36c3d2224e3bdb0ee5a"

	h := signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the right hash: %s", h[:6])
	}

	h = signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the same hash twice.")
	}
}

func Test_Signing(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	sig, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	publicKeyHex := signature.PublicKeyHex(&pk.PublicKey)
	if err := signature.Verify(value, publicKeyHex, sig); err != nil {
		t.Fatalf("Should be able to verify the signature: %s", err)
	}

	if len(signature.SignatureString(sig)) != 2+65*2 {
		t.Fatalf("Should get back a 65 byte signature string.")
	}
}

func Test_VerifyWrongKey(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	otherPk, err := crypto.HexToECDSA(otherPkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a second private key: %s", err)
	}

	sig, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	otherKeyHex := signature.PublicKeyHex(&otherPk.PublicKey)
	if err := signature.Verify(value, otherKeyHex, sig); err == nil {
		t.Fatalf("Should not be able to verify with the wrong public key.")
	}
}

func Test_VerifyChangedValue(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	sig, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	value.Name = "Jill"

	publicKeyHex := signature.PublicKeyHex(&pk.PublicKey)
	if err := signature.Verify(value, publicKeyHex, sig); err == nil {
		t.Fatalf("Should not be able to verify after the value changed.")
	}
}

func Test_PublicKeyRoundTrip(t *testing.T) {
	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	hex := signature.PublicKeyHex(&pk.PublicKey)
	if len(hex) != 66 {
		t.Fatalf("Should get a 33 byte compressed public key, got %d hex chars.", len(hex))
	}

	publicKey, err := signature.ToPublicKey(hex)
	if err != nil {
		t.Fatalf("Should be able to reconstruct the public key: %s", err)
	}

	if signature.PublicKeyHex(publicKey) != hex {
		t.Fatalf("Should get the same hex encoding back.")
	}
}
