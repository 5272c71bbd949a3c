package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/assembler/pkg/domain/entities"
	"github.com/vsinha/assembler/pkg/infrastructure/idgen"
	"github.com/vsinha/assembler/pkg/infrastructure/journal"
	testhelpers "github.com/vsinha/assembler/pkg/infrastructure/testing"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func execute(t *testing.T, cmd *cobra.Command, input string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func sequencedRun(root *RootOptions) *cobra.Command {
	return newRunCommand(root, &RunOptions{ids: idgen.NewSequenceGenerator("p")})
}

func TestRun_TextGolden(t *testing.T) {
	out, err := execute(t, NewRootCommand(), testhelpers.FurnitureInput, "run", "--show-stock", "--summary", "--seed", "1")
	require.NoError(t, err)
	newGolden(t).Assert(t, "run_text", []byte(out))
}

func TestRun_JSONGolden(t *testing.T) {
	out, err := execute(t, sequencedRun(&RootOptions{Format: "json"}), testhelpers.FurnitureInput, "--seed", "1")
	require.NoError(t, err)
	newGolden(t).Assert(t, "run_json", []byte(out))
}

func TestParse_Golden(t *testing.T) {
	out, err := execute(t, NewRootCommand(), testhelpers.FurnitureInput, "parse")
	require.NoError(t, err)
	newGolden(t).Assert(t, "parse_text", []byte(out))
}

func TestRun_ScenarioOutputs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"waits for total", "[Chair]S1a1b1c4\n\naS\nbS\ncS\ndS\n", "[Chair]S1a1b1c1d\n"},
		{"filler from leftovers", "[Box]S1a3\n\naS\nbS\nbS\n", "[Box]S1a2b\n"},
		{"rotation", "[X]S1a1\n[Y]S1a1\n\naS\naS\n", "[X]S1a\n[Y]S1a\n"},
		{"no designs", "\naS\n", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewRootCommand(), tt.input, "run")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRun_InputFileAndConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(input, []byte(testhelpers.FurnitureInput), 0o644))
	cfgPath := filepath.Join(dir, "assembler.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  show_stock: true\n"), 0o644))

	out, err := execute(t, NewRootCommand(), "", "run", "--input", input, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "[Chair]S1a1b1c1d\n[Box]S2e1f\ngS: 1\nTotal: 1\n", out)
}

func TestRun_Journal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.db")

	_, err := execute(t, sequencedRun(&RootOptions{}), testhelpers.FurnitureInput, "--journal", path)
	require.NoError(t, err)

	j, err := journal.Open(path)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p-1", entries[0].ProductID)
	assert.Equal(t, "[Chair]S1a1b1c1d", entries[0].Text)
	assert.Equal(t, "[Box]S2e1f", entries[1].Text)
	assert.Equal(t, int64(1), entries[1].Filler)
}

func TestRun_StockTable(t *testing.T) {
	out, err := execute(t, NewRootCommand(), "[X]S1a1\n\naS\nbS\nbS\n", "run", "--stock-table")
	require.NoError(t, err)
	assert.Contains(t, out, "[X]S1a\n")
	assert.Contains(t, out, "PART")
	assert.Contains(t, out, "total")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		args     []string
		code     int
		sentinel error
	}{
		{"malformed design", "[Chair]S1a\n\naS\n", []string{"run"}, ExitFailure, entities.ErrMalformedInput},
		{"unknown part size", "[Chair]S1a1\n\naM\n", []string{"run"}, ExitFailure, entities.ErrMalformedInput},
		{"bad format flag", "", []string{"run", "--format", "xml"}, ExitCommandError, nil},
		{"missing input file", "", []string{"run", "--input", "/does/not/exist"}, ExitCommandError, nil},
		{"missing config file", "", []string{"parse", "--config", "/does/not/exist.yaml"}, ExitCommandError, nil},
		{"malformed part in parse", "[X]S1a1\n\nxx\n", []string{"parse"}, ExitFailure, entities.ErrMalformedInput},
		{"unexpected argument", "", []string{"run", "extra"}, ExitCommandError, nil},
		{"unknown flag", "", []string{"run", "--bogus"}, ExitCommandError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewRootCommand(), tt.input, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, GetExitCode(err))
			if tt.sentinel != nil {
				assert.True(t, errors.Is(err, tt.sentinel), "expected %v in %v", tt.sentinel, err)
			}
		})
	}
}

func TestRun_ReportsLineNumberOfBadPart(t *testing.T) {
	_, err := execute(t, NewRootCommand(), "[X]S1a1\n\naS\nbS\nBAD\n", "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", nil)))
	assert.Equal(t, "bad: inner", WrapExitError(ExitFailure, "bad", errors.New("inner")).Error())
}

func TestParse_WarnsAboutShadowedDesigns(t *testing.T) {
	var stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader("[Small]S1a1\n[Large]S2a3\n\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"parse"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "design Large only fires after Small has rotated behind it")
}
