package main

import (
	"os"

	"github.com/Timwi/KtaneZoo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
