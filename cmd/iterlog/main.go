// iterlog - per-iteration timing extraction for MPI logs
//
// iterlog reads the colorized output of a distributed computation and
// reports the slowest rank's computation and communication time for each
// iteration.
package main

import (
	"os"

	"github.com/ccollicutt/iterlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
