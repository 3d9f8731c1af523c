package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ist-rebalancer/internal/domain"
	"github.com/jhoicas/ist-rebalancer/pkg/jwt"
)

const regionalCSV = `Zone,STORE_NAME,DESIGN,1st Rcv Date,Shop Rcv Qty,Disp. Qty,O.H Qty,Sold Qty
Z1,StoreA,D1,2023-12-01,100,0,20,80
Z1,StoreB,D1,2024-01-01,100,0,80,20
Z2,StoreC,D1,2024-01-01,100,0,90,10
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ──────────────────────────────────────────────────────────────────────────────
// rebalance
// ──────────────────────────────────────────────────────────────────────────────

func TestRebalance_CSVGeneraFilasYTraslados(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "movimientos.csv", regionalCSV)
	out := filepath.Join(dir, "ist.csv")

	stdout, err := runCLI(t, "rebalance",
		"--variant", "regional",
		"--input", input,
		"--launch-date", "2024-01-01",
		"--sell-through", "40",
		"--min-age", "30",
		"--as-of", "2024-03-31",
		"--out", out,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 traslados")

	transfers, err := os.ReadFile(filepath.Join(dir, "ist_transfers.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(transfers)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "zone_id,selling_item_id,sending_unit_id,receiving_unit_id,quantity_transferred", lines[0])
	assert.Equal(t, "Z1,D1,StoreB,StoreA,60", lines[1])

	// rows: solo las tiendas elegibles de Z1; all_rows: las tres.
	rows, err := os.ReadFile(filepath.Join(dir, "ist_rows.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(rows)), "\n"), 3)
	assert.NotContains(t, string(rows), "StoreC")

	all, err := os.ReadFile(filepath.Join(dir, "ist_all_rows.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(all)), "\n"), 4)
}

func TestRebalance_XLSXYPDF(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "movimientos.csv", regionalCSV)
	out := filepath.Join(dir, "ist.xlsx")
	pdfOut := filepath.Join(dir, "ist.pdf")

	_, err := runCLI(t, "rebalance",
		"--variant", "regional",
		"--input", input,
		"--launch-date", "2024-01-01",
		"--as-of", "2024-03-31",
		"--out", out,
		"--pdf", pdfOut,
	)
	require.NoError(t, err)

	xlsx, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx, []byte("PK")), "xlsx es un zip")

	pdf, err := os.ReadFile(pdfOut)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRebalance_CodigosDeSalida(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "movimientos.csv", regionalCSV)
	incomplete := writeFile(t, dir, "incompleto.csv", "STORE_NAME,DESIGN\nA,D1\n")

	t.Run("esquema incompleto es validación", func(t *testing.T) {
		_, err := runCLI(t, "rebalance", "--input", incomplete, "--launch-date", "2024-01-01", "--out", filepath.Join(dir, "x.csv"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrSchema))
		assert.Equal(t, exitValidation, exitCode(err))
	})

	t.Run("variante desconocida es validación", func(t *testing.T) {
		_, err := runCLI(t, "rebalance", "--variant", "global", "--input", input, "--launch-date", "2024-01-01", "--out", filepath.Join(dir, "x.csv"))
		require.Error(t, err)
		assert.Equal(t, exitValidation, exitCode(err))
	})

	t.Run("extensión de salida no soportada", func(t *testing.T) {
		_, err := runCLI(t, "rebalance", "--input", input, "--launch-date", "2024-01-01", "--out", filepath.Join(dir, "x.json"))
		require.Error(t, err)
		assert.Equal(t, exitUsage, exitCode(err))
	})

	t.Run("as-of inválido", func(t *testing.T) {
		_, err := runCLI(t, "rebalance", "--input", input, "--launch-date", "2024-01-01", "--as-of", "31/03/2024", "--out", filepath.Join(dir, "x.csv"))
		require.Error(t, err)
		assert.Equal(t, exitUsage, exitCode(err))
	})

	t.Run("archivo inexistente", func(t *testing.T) {
		_, err := runCLI(t, "rebalance", "--input", filepath.Join(dir, "nada.csv"), "--launch-date", "2024-01-01", "--out", filepath.Join(dir, "x.csv"))
		require.Error(t, err)
		assert.Equal(t, exitIO, exitCode(err))
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// allocate
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_RepartePorSellThrough(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "surtido.csv", `STORE_NAME,UPC,Shop Rcv Qty,Disp. Qty,Sold Qty
S1,U1,100,0,50
S2,U1,100,0,10
S3,U1,100,0,90
`)
	alloc := writeFile(t, dir, "bodega.csv", "UPC,QTY\nU1,100\n")
	out := filepath.Join(dir, "reparto.csv")

	stdout, err := runCLI(t, "allocate",
		"--input", input,
		"--allocation", alloc,
		"--sell-through", "40",
		"--launch-date", "2024-01-01",
		"--out", out,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, out)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[1], "S3,U1,"), "la tienda de mayor sell-through recibe primero: %s", lines[1])
}

func TestAllocate_FormatoNoSoportado(t *testing.T) {
	_, err := runCLI(t, "allocate", "--input", "a.csv", "--allocation", "b.csv", "--out", "reparto.pdf")
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// token
// ──────────────────────────────────────────────────────────────────────────────

func TestToken_EmiteTokenValido(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")

	stdout, err := runCLI(t, "token", "--subject", "planner@tienda", "--role", "planner")
	require.NoError(t, err)

	subject, role, err := jwt.Parse("s3cr3t", strings.TrimSpace(stdout))
	require.NoError(t, err)
	assert.Equal(t, "planner@tienda", subject)
	assert.Equal(t, "planner", role)
}

func TestToken_SinSecreto(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := runCLI(t, "token", "--subject", "x")
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("x")))
	assert.Equal(t, exitValidation, exitCode(domainCode(domain.ErrInvalidInput)))
	assert.Nil(t, withCode(exitUsage, nil))
}
