package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(dir, "reservations.db"))
	t.Setenv("GIN_MODE", "test")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "table-reservation dev")
}

func TestLoadBookFreeRank(t *testing.T) {
	dir := setupEnv(t)
	file := filepath.Join(dir, "restaurants.txt")
	require.NoError(t, os.WriteFile(file, []byte("A,2\nB,3\nC,notanumber\n"), 0o644))

	out, err := run(t, "load", file)
	require.NoError(t, err)
	assert.Contains(t, out, "2 added, 1 skipped")
	assert.Contains(t, out, `line 3: "C,notanumber"`)

	out, err = run(t, "book", "A", "2023-12-25", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "booked A - Table 1 on 2023-12-25")

	// State survives between invocations.
	_, err = run(t, "book", "A", "2023-12-25", "1")
	assert.ErrorIs(t, err, errNotAvailable)
	_, err = run(t, "book", "A", "2023-12-25", "9")
	assert.ErrorIs(t, err, errNotAvailable)
	_, err = run(t, "book", "A", "25-12-2023", "2")
	assert.Error(t, err)
	_, err = run(t, "book", "A", "2023-12-25", "two")
	assert.Error(t, err)

	out, err = run(t, "free", "2023-12-25")
	require.NoError(t, err)
	assert.Equal(t, []string{"A - Table 2", "B - Table 1", "B - Table 2", "B - Table 3"}, lines(out))

	out, err = run(t, "free", "2023-12-25", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"A - Table 2", "B - Table 1"}, lines(out))

	out, err = run(t, "rank", "2023-12-25")
	require.NoError(t, err)
	rows := lines(out)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "B", "3", "3"}, strings.Fields(rows[1]))
	assert.Equal(t, []string{"2", "A", "1", "2"}, strings.Fields(rows[2]))

	// The ranking is persisted.
	out, err = run(t, "free", "2023-12-25")
	require.NoError(t, err)
	assert.Equal(t, "B - Table 1", lines(out)[0])
}

func TestLoadMissingFile(t *testing.T) {
	dir := setupEnv(t)
	_, err := run(t, "load", filepath.Join(dir, "nope.txt"))
	assert.Error(t, err)
}

func TestUserAdd(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "user", "add", "--username", "host", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, `created user "host" (role=operator)`)

	_, err = run(t, "user", "add", "--username", "host", "--password", "again")
	assert.Error(t, err)

	_, err = run(t, "user", "add", "--username", "x", "--password", "y", "--role", "chef")
	assert.Error(t, err)
}

func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
