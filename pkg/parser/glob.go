package parser

import (
	"fmt"
	"path/filepath"
	"sort"
)

// ExpandInputs expands input arguments into a deduplicated list of paths.
// Arguments keep their order; the matches of one glob are sorted. "-" is
// passed through for stdin, and patterns with no match are kept as literal
// paths so the open error names them. No arguments means stdin.
func ExpandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"-"}, nil
	}

	seen := make(map[string]bool)
	var result []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, arg := range args {
		if IsStdin(arg) {
			add("-")
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
		}

		if len(matches) == 0 {
			add(arg)
			continue
		}

		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return result, nil
}
