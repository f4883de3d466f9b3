package main

import (
	"fmt"
	"os"

	"github.com/m3rciful/namebot/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout, nil).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "namebot:", err)
		os.Exit(1)
	}
}
