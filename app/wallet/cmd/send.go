package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minichain/minichain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	sendTo    string
	sendValue uint64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign a transaction locally and submit it to the node",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sendTo, "to", "t", "", "The address receiving the value.")
	sendCmd.Flags().Uint64VarP(&sendValue, "value", "v", 0, "The value to send.")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("value")
}

func sendRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	fromID := database.PublicKeyToAccountID(privateKey.PublicKey)

	toID, err := database.ToAccountID(sendTo)
	if err != nil {
		log.Fatal(err)
	}

	tx, err := database.NewTx(fromID, toID, sendValue)
	if err != nil {
		log.Fatal(err)
	}

	// The private key never leaves the wallet. Only the signed transaction
	// goes over the wire.
	signedTx, err := tx.Sign(privateKey)
	if err != nil {
		log.Fatal(err)
	}

	payload := struct {
		From      string `json:"from"`
		To        string `json:"to"`
		Value     uint64 `json:"value"`
		Signature string `json:"signature"`
	}{
		From:      string(signedTx.FromID),
		To:        string(signedTx.ToID),
		Value:     signedTx.Value,
		Signature: signedTx.SignatureString(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/tx/submit", nodeURL), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(body))
}
