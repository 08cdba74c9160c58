package database_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minichain/minichain/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	payerHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	otherHexKey = "aba14c5e2a6e9a2b510ca02edb66ea5f73103b8d0965e20d2d945b740c171852"
)

// =============================================================================

func Test_TransactionSigning(t *testing.T) {
	t.Log("Given the need to sign and validate transactions.")
	{
		payerKey, err := crypto.HexToECDSA(payerHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the payer key: %v", failed, err)
		}
		otherKey, err := crypto.HexToECDSA(otherHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the other key: %v", failed, err)
		}

		payerID := database.PublicKeyToAccountID(payerKey.PublicKey)
		otherID := database.PublicKeyToAccountID(otherKey.PublicKey)

		t.Logf("\tWhen handling a transfer from %s.", payerID)
		{
			tx, err := database.NewTx(payerID, otherID, 100)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to create a transaction.", success)

			signedTx, err := tx.Sign(payerKey)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to sign with the payer key: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to sign with the payer key.", success)

			if err := signedTx.Validate(); err != nil {
				t.Fatalf("\t%s\tShould validate after signing: %v", failed, err)
			}
			t.Logf("\t%s\tShould validate after signing.", success)

			if _, err := tx.Sign(otherKey); !errors.Is(err, database.ErrInvalidSigner) {
				t.Fatalf("\t%s\tShould reject signing with a mismatched key: %v", failed, err)
			}
			t.Logf("\t%s\tShould reject signing with a mismatched key.", success)
		}
	}
}

func Test_TransactionTamper(t *testing.T) {
	t.Log("Given the need to detect a transaction mutated after signing.")
	{
		payerKey, err := crypto.HexToECDSA(payerHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the payer key: %v", failed, err)
		}
		otherKey, err := crypto.HexToECDSA(otherHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the other key: %v", failed, err)
		}

		payerID := database.PublicKeyToAccountID(payerKey.PublicKey)
		otherID := database.PublicKeyToAccountID(otherKey.PublicKey)

		tx, err := database.NewTx(payerID, otherID, 100)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
		}

		signedTx, err := tx.Sign(payerKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
		}

		t.Log("\tWhen the value is changed after signing.")
		{
			tampered := signedTx
			tampered.Value = 1_000_000

			if err := tampered.Validate(); err == nil {
				t.Fatalf("\t%s\tShould fail validation after the value changed.", failed)
			}
			t.Logf("\t%s\tShould fail validation after the value changed.", success)
		}

		t.Log("\tWhen the recipient is changed after signing.")
		{
			tampered := signedTx
			tampered.ToID = payerID

			if err := tampered.Validate(); err == nil {
				t.Fatalf("\t%s\tShould fail validation after the recipient changed.", failed)
			}
			t.Logf("\t%s\tShould fail validation after the recipient changed.", success)
		}
	}
}

func Test_TransactionRules(t *testing.T) {
	t.Log("Given the need to enforce transaction construction rules.")
	{
		payerKey, err := crypto.HexToECDSA(payerHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the payer key: %v", failed, err)
		}
		otherKey, err := crypto.HexToECDSA(otherHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the other key: %v", failed, err)
		}

		payerID := database.PublicKeyToAccountID(payerKey.PublicKey)
		otherID := database.PublicKeyToAccountID(otherKey.PublicKey)

		t.Log("\tWhen the value is zero.")
		{
			if _, err := database.NewTx(payerID, otherID, 0); !errors.Is(err, database.ErrInvalidAmount) {
				t.Fatalf("\t%s\tShould reject a zero value transfer: %v", failed, err)
			}
			t.Logf("\t%s\tShould reject a zero value transfer.", success)
		}

		t.Log("\tWhen the transaction is unsigned.")
		{
			tx, err := database.NewTx(payerID, otherID, 50)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}

			unsigned := database.SignedTx{Tx: tx}
			if err := unsigned.Validate(); !errors.Is(err, database.ErrMissingSignature) {
				t.Fatalf("\t%s\tShould report the missing signature: %v", failed, err)
			}
			t.Logf("\t%s\tShould report the missing signature.", success)
		}

		t.Log("\tWhen the transaction is a mining reward.")
		{
			rewardTx := database.NewRewardTx(otherID, 50)
			if !rewardTx.IsReward() {
				t.Fatalf("\t%s\tShould report a reward transaction as a reward.", failed)
			}
			t.Logf("\t%s\tShould report a reward transaction as a reward.", success)

			if err := rewardTx.Validate(); err != nil {
				t.Fatalf("\t%s\tShould validate a reward without a signature: %v", failed, err)
			}
			t.Logf("\t%s\tShould validate a reward without a signature.", success)
		}
	}
}

func Test_TransactionHash(t *testing.T) {
	t.Log("Given the need for a deterministic transaction hash.")
	{
		payerKey, err := crypto.HexToECDSA(payerHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the payer key: %v", failed, err)
		}
		otherKey, err := crypto.HexToECDSA(otherHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the other key: %v", failed, err)
		}

		payerID := database.PublicKeyToAccountID(payerKey.PublicKey)
		otherID := database.PublicKeyToAccountID(otherKey.PublicKey)

		tx, err := database.NewTx(payerID, otherID, 100)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
		}

		if tx.Hash() != tx.Hash() {
			t.Fatalf("\t%s\tShould get the same hash twice.", failed)
		}
		t.Logf("\t%s\tShould get the same hash twice.", success)

		signedTx, err := tx.Sign(payerKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
		}

		if signedTx.Hash() != tx.Hash() {
			t.Fatalf("\t%s\tShould exclude the signature from the hash.", failed)
		}
		t.Logf("\t%s\tShould exclude the signature from the hash.", success)
	}
}
