package public

import (
	"github.com/minichain/minichain/foundation/blockchain/database"
	"github.com/minichain/minichain/foundation/nameservice"
)

// submitTx is what a wallet posts to get a transaction into the pool. The
// signature is produced by the wallet; the node never sees a private key.
type submitTx struct {
	From      string `json:"from" validate:"required,len=66,hexadecimal"`
	To        string `json:"to" validate:"required,len=66,hexadecimal"`
	Value     uint64 `json:"value" validate:"required,gt=0"`
	Signature string `json:"signature" validate:"required"`
}

// setDifficulty carries the new difficulty for future mining calls.
type setDifficulty struct {
	Difficulty uint `json:"difficulty" validate:"required,gte=1,lte=32"`
}

// =============================================================================

// tx represents a transaction in API responses, with account names resolved
// for readability.
type tx struct {
	From      string `json:"from"`
	FromName  string `json:"from_name"`
	To        string `json:"to"`
	ToName    string `json:"to_name"`
	Value     uint64 `json:"value"`
	Reward    bool   `json:"reward"`
	Signature string `json:"signature,omitempty"`
}

// block represents a block in API responses.
type block struct {
	PrevBlockHash string `json:"prev_block_hash"`
	TimeStamp     uint64 `json:"timestamp"`
	Nonce         uint64 `json:"nonce"`
	Hash          string `json:"hash"`
	Trans         []tx   `json:"trans"`
}

// toTx constructs the API transaction from a chain transaction.
func toTx(signedTx database.SignedTx, ns *nameservice.NameService) tx {
	t := tx{
		From:     string(signedTx.FromID),
		FromName: ns.Lookup(signedTx.FromID),
		To:       string(signedTx.ToID),
		ToName:   ns.Lookup(signedTx.ToID),
		Value:    signedTx.Value,
		Reward:   signedTx.IsReward(),
	}

	if len(signedTx.Signature) > 0 {
		t.Signature = signedTx.SignatureString()
	}

	if t.Reward {
		t.FromName = "reward"
	}

	return t
}

// toBlock constructs the API block from a chain block.
func toBlock(b database.Block, ns *nameservice.NameService) block {
	trans := make([]tx, len(b.Trans))
	for i, signedTx := range b.Trans {
		trans[i] = toTx(signedTx, ns)
	}

	return block{
		PrevBlockHash: b.Header.PrevBlockHash,
		TimeStamp:     b.Header.TimeStamp,
		Nonce:         b.Header.Nonce,
		Hash:          b.Hash,
		Trans:         trans,
	}
}
