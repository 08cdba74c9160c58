package main

import "github.com/minichain/minichain/app/wallet/cmd"

func main() {
	cmd.Execute()
}
