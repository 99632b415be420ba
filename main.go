package main

import (
	"os"

	"github.com/tbaudier/parkwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
