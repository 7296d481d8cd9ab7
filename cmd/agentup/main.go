// agentup - Python environment bootstrap and launcher

package main

import (
	"os"

	"github.com/hctsai/agentup/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
