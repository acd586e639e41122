// Command keygen prints a fresh random authentication key in the form the
// server expects in x-auth-key and x-new-auth-key.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/keyvault/internal/common"
)

func main() {
	key, err := common.NewAuthKeyHex()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(key)
}
