package main

import (
	"os"

	"github.com/shardeum/sec-im-cleanup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
