// log_parse_sum prints, per iteration position, the maximum computation
// time plus the maximum communication time of a log as one line.
//
// Usage: log_parse_sum [infile]
package main

import (
	"os"

	"github.com/ccollicutt/iterlog/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteLogParseSum())
}
