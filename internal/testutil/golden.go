// Package testutil holds golden-file helpers shared by package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// updateGolden controls whether golden files should be updated.
// Use: go test ./... -update
var updateGolden = flag.Bool("update", false, "update golden files")

// volatileFields are stripped before comparison; they change per run.
var volatileFields = []*regexp.Regexp{
	regexp.MustCompile(`"analysisId":\s*"[^"]*",?\n?`),
	regexp.MustCompile(`"durationMs":\s*\d+,?\n?`),
}

// MarshalNormalized renders v as indented JSON with volatile fields
// removed, so the same analysis always produces the same bytes.
func MarshalNormalized(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	for _, re := range volatileFields {
		data = re.ReplaceAll(data, nil)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	return data
}

// CompareGolden compares got against testdata/<name>.golden, failing with
// a diff on mismatch. With -update the golden file is rewritten instead.
func CompareGolden(t *testing.T, name string, got any) {
	t.Helper()

	normalized := MarshalNormalized(t, got)
	goldenPath := filepath.Join("testdata", name+".golden")

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, normalized, 0o644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create it",
				goldenPath, string(normalized))
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(expected, normalized) {
		t.Errorf("Golden mismatch for %s:\n%s", goldenPath, diff(string(expected), string(normalized)))
	}
}

// diff renders a minimal line diff for test failure output.
func diff(expected, got string) string {
	expLines := strings.Split(expected, "\n")
	gotLines := strings.Split(got, "\n")

	var b strings.Builder
	max := len(expLines)
	if len(gotLines) > max {
		max = len(gotLines)
	}
	for i := 0; i < max; i++ {
		var e, g string
		if i < len(expLines) {
			e = expLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if e != g {
			fmt.Fprintf(&b, "line %d:\n  want: %s\n  got:  %s\n", i+1, e, g)
		}
	}
	return b.String()
}
