// Command warrify is the operator CLI: API server, worker, migrations,
// reminder ticks and offline risk assessment.
package main

import (
	"context"
	"os"

	"github.com/turtacn/warrify/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
