package main

import (
	"os"

	"github.com/coffersTech/tagquery/cmd/tagquery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
