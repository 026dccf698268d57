// Package golden loads the DER fixtures used by tests. Each fixture is a file
// in the testdata directory of the calling package holding exactly one
// DER-encoded value.
package golden

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Dir is the directory containing the fixtures, relative to the package under
// test.
const Dir = "testdata"

// Load returns the contents of the fixture with the given name. The ".der"
// extension is added automatically. The test fails if the fixture cannot be
// read.
func Load(t testing.TB, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(Dir, name+".der"))
	require.NoError(t, err, "loading fixture %q", name)
	return b
}

// Names returns the names of all fixtures in sorted order.
func Names(t testing.TB) []string {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(Dir, "*.der"))
	require.NoError(t, err)
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = strings.TrimSuffix(filepath.Base(p), ".der")
	}
	sort.Strings(names)
	return names
}
