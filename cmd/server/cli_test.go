package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agrimitra/pkg/market/importer"
)

// resetFlags undoes flag state left behind by a previous Execute.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	t.Setenv("LOG_LEVEL", "error")
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSeedCommandIsIdempotent(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, "seed", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 6 market prices")

	out, err = run(t, "seed", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 market prices")
}

func TestPricesImportExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "cli.db")
	src := filepath.Join(dir, "in.xlsx")

	x := excelize.NewFile()
	rows := [][]any{
		{"Commodity", "State", "Min Price", "Max Price", "Modal Price"},
		{"Maize", "Bihar", 14, 19, 17},
		{"Soybean", "Madhya Pradesh", 38, 46, 42},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, x.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, x.SaveAs(src))
	require.NoError(t, x.Close())

	out, err := run(t, "prices", "import", "--xlsx", src, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 market prices")

	dst := filepath.Join(dir, "out.xlsx")
	out, err = run(t, "prices", "export", "--out", dst, "--region", "bihar", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1 market prices")

	got, err := importer.FromXLSX(dst, importer.ExportSheet)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Maize", got[0].CropName)
}

func TestPricesImportNeedsOneSource(t *testing.T) {
	_, err := run(t, "prices", "import", "--db", filepath.Join(t.TempDir(), "cli.db"))
	assert.ErrorContains(t, err, "exactly one of --xlsx or --url")
}

func TestBadLogFormat(t *testing.T) {
	_, err := run(t, "seed", "--db", filepath.Join(t.TempDir(), "cli.db"), "--log-format", "xml")
	assert.ErrorContains(t, err, "LOG_FORMAT")
}
