// SPDX-License-Identifier: MIT
//
// commands_test.go — an in-process end-to-end pass over the command tree
// itself: import a cube document, then resolve a coordinate through get,
// exactly as a user invoking the ncubectl binary would, without shelling
// out to go run.
package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/cube"
	"github.com/katalvlaran/ncube/jsonio"
	"github.com/katalvlaran/ncube/value"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever it wrote, since cobra's RunE funcs under test print straight to
// fmt.Println rather than cmd.OutOrStdout().
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = orig
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestImportThenGetEndToEnd(t *testing.T) {
	c := cube.New("pricing")
	a, err := c.AddAxis("tier", axis.Discrete, value.TypeString, axis.Sorted, false)
	require.NoError(t, err)
	gold, err := c.AddColumnTo(a.Name, "gold", nil)
	require.NoError(t, err)
	require.NoError(t, c.SetCell([]uint64{gold.ID}, "gold-rate"))

	doc, err := jsonio.Marshal(c)
	require.NoError(t, err)

	dir := t.TempDir()
	cubeFile := filepath.Join(dir, "pricing.json")
	require.NoError(t, os.WriteFile(cubeFile, doc, 0o644))

	cfg.Driver = "sqlite3"
	cfg.DSN = filepath.Join(dir, "ncubectl.db")

	root := NewRootCommand()
	root.SetArgs([]string{"import", cubeFile, "--app", "e2e"})
	out := captureStdout(t, func() {
		require.NoError(t, root.Execute())
	})
	require.Contains(t, out, "pricing")
	require.Contains(t, out, "e2e")

	root = NewRootCommand()
	root.SetArgs([]string{"get", "e2e", "pricing", "tier=gold"})
	out = captureStdout(t, func() {
		require.NoError(t, root.Execute())
	})
	require.Contains(t, out, "gold-rate")
}
