package main

import (
	"os"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/cmd"
)

var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
