package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const fixtureYAML = `materials:
  - id: w1
    title: "Math worksheet: long division"
    content_type: worksheet
    due_date: "2024-05-07"
  - id: w2
    title: "Math worksheet: decimals"
    content_type: worksheet
    due_date: "2024-05-11"
  - id: q1
    title: "Math quiz review: fractions"
    content_type: quiz
    completed_at: "2024-05-01T10:00:00Z"
    grade_value: 55
    grade_max_value: 100
  - title: ""
    content_type: lesson
`

// testEnv isolates config lookup and pins the clock.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	old := clock
	clock = func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { clock = old })
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout)
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"satchel"}, args...))
	return stdout.String(), stderr.String(), err
}

func findFlag[T cli.Flag](flags []cli.Flag, name string) T {
	var zero T
	for _, flag := range flags {
		if f, ok := flag.(T); ok && f.Names()[0] == name {
			return f
		}
	}
	return zero
}

func TestCommandFlags(t *testing.T) {
	app := newApp(&bytes.Buffer{})
	commands := map[string]*cli.Command{}
	for _, cmd := range app.Commands {
		commands[cmd.Name] = cmd
	}
	require.Contains(t, commands, "search")
	require.Contains(t, commands, "classify")
	require.Contains(t, commands, "import")

	t.Run("student is required for search", func(t *testing.T) {
		f := findFlag[*cli.StringFlag](commands["search"].Flags, "student")
		require.NotNil(t, f)
		assert.True(t, f.Required)
	})

	t.Run("file is required for import", func(t *testing.T) {
		f := findFlag[*cli.StringFlag](commands["import"].Flags, "file")
		require.NotNil(t, f)
		assert.True(t, f.Required)
	})

	t.Run("progress defaults on", func(t *testing.T) {
		f := findFlag[*cli.BoolFlag](commands["import"].Flags, "progress")
		require.NotNil(t, f)
		assert.True(t, f.Value)
	})

	t.Run("log-level has no default so config wins", func(t *testing.T) {
		f := findFlag[*cli.StringFlag](app.Flags, "log-level")
		require.NotNil(t, f)
		assert.Empty(t, f.Value)
	})
}

func TestSearch_StudentRequired(t *testing.T) {
	testEnv(t)
	_, _, err := run(t, "--driver", "sqlite", "search", "--query", "homework")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student")
}

func TestInvalidLogLevel(t *testing.T) {
	testEnv(t)
	_, _, err := run(t, "--log-level", "verbose", "classify", "homework")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestClassify(t *testing.T) {
	testEnv(t)

	t.Run("text", func(t *testing.T) {
		out, _, err := run(t, "classify", "overdue", "math", "worksheets")
		require.NoError(t, err)
		assert.Contains(t, out, "homework")
		assert.Contains(t, out, "overdue")
		assert.Contains(t, out, "math")
		assert.Contains(t, out, "worksheet")
		assert.Contains(t, out, "filter:")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, "classify", "--json", "--query", "review low scores")
		require.NoError(t, err)

		var got intentOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "review", string(got.Type))
		assert.Equal(t, "low_scores", string(got.Status))
		assert.NotEmpty(t, got.Filter)
	})
}

func TestImportThenSearch(t *testing.T) {
	dir := testEnv(t)
	fixture := filepath.Join(dir, "materials.yaml")
	require.NoError(t, os.WriteFile(fixture, []byte(fixtureYAML), 0o644))
	dbPath := filepath.Join(dir, "satchel.db")
	global := []string{"--driver", "sqlite", "--db", dbPath, "--log-level", "error"}

	out, _, err := run(t, append(global, "import", "--student", "kid-1", "--file", fixture, "--progress=false")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 of 4 materials (1 invalid, 0 failed)")

	t.Run("text", func(t *testing.T) {
		out, stderr, err := run(t, append(global, "search", "--student", "kid-1", "overdue math worksheets")...)
		require.NoError(t, err)
		assert.NotContains(t, stderr, "warning")
		assert.Contains(t, out, "Intent: homework (math)")
		assert.Contains(t, out, "Math worksheet: long division")
		assert.Contains(t, out, "overdue")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, append(global, "search", "--student", "kid-1", "--json", "--limit", "1", "review low scores")...)
		require.NoError(t, err)

		var got searchOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.False(t, got.Degraded)
		require.Len(t, got.Results, 1)
		assert.Equal(t, "Math quiz review: fractions", got.Results[0].Title)
		assert.Contains(t, got.Results[0].Badges, "low score")
	})

	t.Run("filter", func(t *testing.T) {
		out, _, err := run(t, append(global, "search", "--student", "kid-1", "--filter", `title.contains("decimals")`, "math worksheets")...)
		require.NoError(t, err)
		assert.Contains(t, out, "Math worksheet: decimals")
		assert.NotContains(t, out, "long division")
	})

	t.Run("bad filter", func(t *testing.T) {
		_, _, err := run(t, append(global, "search", "--student", "kid-1", "--filter", "title +", "math worksheets")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create searcher")
	})

	t.Run("unknown student finds nothing", func(t *testing.T) {
		out, _, err := run(t, append(global, "search", "--student", "nobody", "homework")...)
		require.NoError(t, err)
		assert.Contains(t, out, "Found 0 hits")
	})
}

func TestImport_MissingFile(t *testing.T) {
	dir := testEnv(t)
	_, _, err := run(t, "--driver", "sqlite", "--db", filepath.Join(dir, "x.db"),
		"import", "--student", "kid-1", "--file", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
