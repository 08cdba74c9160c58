package database_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minichain/minichain/foundation/blockchain/database"
	"github.com/minichain/minichain/foundation/blockchain/signature"
)

// signedTransfer builds a signed transaction for block tests.
func signedTransfer(t *testing.T, value uint64) database.SignedTx {
	t.Helper()

	payerKey, err := crypto.HexToECDSA(payerHexKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the payer key: %v", failed, err)
	}
	otherKey, err := crypto.HexToECDSA(otherHexKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the other key: %v", failed, err)
	}

	tx, err := database.NewTx(database.PublicKeyToAccountID(payerKey.PublicKey), database.PublicKeyToAccountID(otherKey.PublicKey), value)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
	}

	signedTx, err := tx.Sign(payerKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
	}

	return signedTx
}

// =============================================================================

func Test_Mining(t *testing.T) {
	t.Log("Given the need to mine a block with proof of work.")
	{
		const difficulty = 4

		genesis := database.NewGenesisBlock()
		block := database.NewBlock([]database.SignedTx{signedTransfer(t, 100)}, genesis.Hash)

		t.Logf("\tWhen mining at difficulty %d.", difficulty)
		{
			if err := block.Mine(context.Background(), difficulty, nil); err != nil {
				t.Fatalf("\t%s\tShould be able to mine the block: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to mine the block.", success)

			if !strings.HasPrefix(block.Hash, "0x"+strings.Repeat("0", difficulty)) {
				t.Fatalf("\t%s\tShould have %d leading zeros in the hash: %s", failed, difficulty, block.Hash)
			}
			t.Logf("\t%s\tShould have %d leading zeros in the hash.", success, difficulty)

			if block.Hash != block.ComputeHash() {
				t.Fatalf("\t%s\tShould cache the hash that recomputation yields.", failed)
			}
			t.Logf("\t%s\tShould cache the hash that recomputation yields.", success)

			if err := block.ValidateBlock(genesis); err != nil {
				t.Fatalf("\t%s\tShould validate against the parent block: %v", failed, err)
			}
			t.Logf("\t%s\tShould validate against the parent block.", success)
		}
	}
}

func Test_MiningCancel(t *testing.T) {
	t.Log("Given the need to cancel an unbounded mining search.")
	{
		genesis := database.NewGenesisBlock()
		block := database.NewBlock([]database.SignedTx{signedTransfer(t, 100)}, genesis.Hash)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := block.Mine(ctx, 16, nil); err == nil {
			t.Fatalf("\t%s\tShould stop mining when the context is cancelled.", failed)
		}
		t.Logf("\t%s\tShould stop mining when the context is cancelled.", success)
	}
}

func Test_MiningRejectsTamperedTransactions(t *testing.T) {
	t.Log("Given the need to refuse mining a block with a bad transaction.")
	{
		signedTx := signedTransfer(t, 100)
		signedTx.Value = 500

		genesis := database.NewGenesisBlock()
		block := database.NewBlock([]database.SignedTx{signedTx}, genesis.Hash)

		if err := block.Mine(context.Background(), 1, nil); err == nil {
			t.Fatalf("\t%s\tShould refuse to mine a tampered transaction.", failed)
		}
		t.Logf("\t%s\tShould refuse to mine a tampered transaction.", success)
	}
}

func Test_BlockTamperDetection(t *testing.T) {
	t.Log("Given the need to detect a block mutated after mining.")
	{
		genesis := database.NewGenesisBlock()
		block := database.NewBlock([]database.SignedTx{signedTransfer(t, 100)}, genesis.Hash)

		if err := block.Mine(context.Background(), 1, nil); err != nil {
			t.Fatalf("\t%s\tShould be able to mine the block: %v", failed, err)
		}

		t.Log("\tWhen a transaction value is changed inside the mined block.")
		{
			tampered := block
			tampered.Trans = append([]database.SignedTx(nil), block.Trans...)
			tampered.Trans[0].Value = 1_000_000

			if err := tampered.ValidateBlock(genesis); err == nil {
				t.Fatalf("\t%s\tShould fail validation after the transaction changed.", failed)
			}
			t.Logf("\t%s\tShould fail validation after the transaction changed.", success)
		}

		t.Log("\tWhen the previous hash is changed.")
		{
			tampered := block
			tampered.Header.PrevBlockHash = signature.ZeroHash

			if err := tampered.ValidateBlock(genesis); err == nil {
				t.Fatalf("\t%s\tShould fail validation after the linkage changed.", failed)
			}
			t.Logf("\t%s\tShould fail validation after the linkage changed.", success)
		}
	}
}

func Test_BlockHashDeterminism(t *testing.T) {
	t.Log("Given the need for a deterministic block hash.")
	{
		genesis := database.NewGenesisBlock()

		if genesis.Header.PrevBlockHash != signature.ZeroHash {
			t.Fatalf("\t%s\tShould link the genesis block to the zero hash.", failed)
		}
		t.Logf("\t%s\tShould link the genesis block to the zero hash.", success)

		if genesis.ComputeHash() != genesis.ComputeHash() {
			t.Fatalf("\t%s\tShould get the same hash twice.", failed)
		}
		t.Logf("\t%s\tShould get the same hash twice.", success)

		if genesis.Hash != genesis.ComputeHash() {
			t.Fatalf("\t%s\tShould cache the genesis hash at construction.", failed)
		}
		t.Logf("\t%s\tShould cache the genesis hash at construction.", success)
	}
}
