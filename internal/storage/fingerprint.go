package storage

import (
	"encoding/hex"
	"sort"

	"golang.org/x/crypto/blake2b"

	"depscope/internal/depgraph"
)

// Fingerprint computes a stable blake2b-256 digest of an edge list. The
// edges are canonicalized (sorted, deduplicated) first, so any input
// ordering of the same graph yields the same fingerprint.
func Fingerprint(edges []depgraph.Edge) string {
	lines := make([]string, 0, len(edges))
	seen := make(map[string]bool, len(edges))
	for _, e := range edges {
		line := e.From + "\x00" + e.To
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	sort.Strings(lines)

	h, _ := blake2b.New256(nil)
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
