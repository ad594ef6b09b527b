package main

import (
	"os"

	"subdomain-gateway/cmd/routectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
