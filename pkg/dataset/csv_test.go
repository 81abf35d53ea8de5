package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/matzehuels/scatterplot/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	data := "\ufeffName,Median Earnings 8 years After Entry,Median Debt on Graduation\n" +
		"\"Smith College, MA\",50000,25000\n" +
		"Short Row,1\n"

	tbl, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}

	if tbl.Header[0] != "Name" {
		t.Errorf("Header[0] = %q, want BOM stripped", tbl.Header[0])
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(tbl.Rows))
	}
	if got := tbl.Rows[0]["Name"]; got != "Smith College, MA" {
		t.Errorf("Rows[0][Name] = %q, want quoted value", got)
	}
	if got, ok := tbl.Rows[1][DefaultDebtColumn]; !ok || got != "" {
		t.Errorf("short row debt = %q, %v; want padded empty string", got, ok)
	}
}

func TestReadCSVMalformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Name,Debt\n\"unterminated,1\n"))
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("ReadCSV() error = %v, want INVALID_INPUT", err)
	}
}

func TestImportCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colleges.csv")
	if err := os.WriteFile(path, []byte("Name,x\nA,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := ImportCSV(path)
	if err != nil {
		t.Fatalf("ImportCSV() error: %v", err)
	}
	if !tbl.HasColumn("x") || tbl.HasColumn("y") {
		t.Errorf("HasColumn mismatch for header %v", tbl.Header)
	}

	_, err = ImportCSV(filepath.Join(dir, "missing.csv"))
	if !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("ImportCSV(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}
