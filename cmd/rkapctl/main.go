package main

import (
	"os"

	"github.com/MrJamesThe3rd/rkap/cmd/rkapctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
