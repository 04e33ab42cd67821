// cmd/mafatih/main.go
package main

import (
	"os"

	"mafatih/cmd/mafatih/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
