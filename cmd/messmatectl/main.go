package main

import (
	"fmt"
	"os"

	"github.com/magabrotheeeer/messmate/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.Deps{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
