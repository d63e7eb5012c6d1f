package endpoint

import (
	"bufio"
	_ "embed"
	"io"
	"strings"
	"sync"
)

//go:embed data/fundamentals_types.txt
var fundamentalsTypesFile string

// FundamentalsPrefixes are the period prefixes accepted in front of fundamentals type names.
var FundamentalsPrefixes = []string{"monthly", "quarterly", "annual"}

var fundamentalsTypes = sync.OnceValue(func() []string {
	return ReadCatalog(strings.NewReader(fundamentalsTypesFile))
})

// FundamentalsTypes returns the bare fundamentals metric names
// (e.g. "WorkInProcess"). The slice is shared; do not modify it.
func FundamentalsTypes() []string { return fundamentalsTypes() }

// ReadCatalog reads one entry per line, skipping blank lines.
func ReadCatalog(r io.Reader) []string {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Prefixed returns every catalog entry with prefix prepended.
func Prefixed(prefix string, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = prefix + n
	}
	return out
}
