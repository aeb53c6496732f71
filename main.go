package main

import (
	"os"

	"github.com/moyoez/configd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
