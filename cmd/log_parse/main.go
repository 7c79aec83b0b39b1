// log_parse prints the per-iteration maximum computation and communication
// times of a log as two comma-separated lines.
//
// Usage: log_parse [infile]
package main

import (
	"os"

	"github.com/ccollicutt/iterlog/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteLogParse())
}
