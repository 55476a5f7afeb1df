package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidate_AllEntriesPass(t *testing.T) {
	out, _, err := run(t, "validate", "--lines", "testdata/lines.csv")
	require.NoError(t, err)

	assert.Contains(t, out, "OK   JE002: 2 lines, 500.00")
	assert.Contains(t, out, "4 entries, 0 rejected")
}

func TestValidate_ReportsRejections(t *testing.T) {
	out, _, err := run(t, "validate", "--lines", "testdata/bad_lines.csv")

	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, out, "OK   JE001")
	assert.Contains(t, out, "FAIL JE002: journal entry is unbalanced: debits 500.00, credits 450.00")
	assert.Contains(t, out, "FAIL JE003: line 1: a line cannot have both a debit and a credit")
	assert.Contains(t, out, "3 entries, 2 rejected")
}

func TestValidate_RequiresLinesFlag(t *testing.T) {
	_, _, err := run(t, "validate")
	assert.Error(t, err)
}

func TestTrialBalance(t *testing.T) {
	out, stderr, err := run(t, "trial-balance", "--accounts", "testdata/accounts.csv", "--lines", "testdata/lines.csv")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9, out)
	assert.Contains(t, lines[1], "1000")
	assert.Contains(t, lines[1], "1680.00")
	assert.Contains(t, lines[2], "Equipment", "rows are sorted by code")
	assert.Contains(t, lines[7], "1800.00")
	assert.Equal(t, "Balanced", lines[8])
}

func TestTrialBalance_HideZero(t *testing.T) {
	out, _, err := run(t, "trial-balance", "--accounts", "testdata/accounts.csv", "--lines", "testdata/lines.csv", "--hide-zero")
	require.NoError(t, err)

	assert.NotContains(t, out, "Equipment")
	assert.Contains(t, out, "Rent")
}

func TestTrialBalance_SkipsRejectedEntries(t *testing.T) {
	out, stderr, err := run(t, "trial-balance", "--accounts", "testdata/accounts.csv", "--lines", "testdata/bad_lines.csv", "--hide-zero")
	require.NoError(t, err)

	assert.Contains(t, stderr, "skipping entry JE002")
	assert.Contains(t, stderr, "skipping entry JE003")
	assert.Contains(t, out, "1000.00")
	assert.NotContains(t, out, "Bank Loan")
	assert.Contains(t, out, "Balanced")
}

func TestTrialBalance_MissingFile(t *testing.T) {
	_, _, err := run(t, "trial-balance", "--accounts", "testdata/missing.csv", "--lines", "testdata/lines.csv")
	assert.Error(t, err)
}
