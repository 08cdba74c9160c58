// Package cmd contains the wallet commands. The wallet is the key material
// provider for the chain: it generates key pairs, derives addresses, and
// signs transactions locally before handing them to the node.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	accountName string
	accountPath string
	nodeURL     string
)

const keyExtension = ".ecdsa"

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "A simple wallet for the minichain ledger",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private"+keyExtension, "The name of the private key file.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:8080", "Url of the node.")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getPrivateKeyPath() string {
	if !strings.HasSuffix(accountName, keyExtension) {
		accountName += keyExtension
	}

	return filepath.Join(accountPath, accountName)
}
