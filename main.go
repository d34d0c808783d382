package main

import (
	"os"

	"github.com/finlitapp/finlit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
