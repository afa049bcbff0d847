package parsers

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testInstance = `c small test instance
p cnf 3 4
1 2 3 0
-1 2 0
-2 3 0
-3 0
`

var testClauses = [][]int{
	{1, 2, 3},
	{-1, 2},
	{-2, 3},
	{-3},
}

// clauseCollector implements SATSolver by recording the loaded clauses.
type clauseCollector struct {
	clauses [][]int
}

func (c *clauseCollector) AddClause(lits []int) error {
	clause := make([]int, len(lits))
	copy(clause, lits)
	c.clauses = append(c.clauses, clause)
	return nil
}

func writeFile(t *testing.T, name string, content string, gzipped bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("could not create %s: %s", path, err)
	}
	defer f.Close()

	if gzipped {
		w := gzip.NewWriter(f)
		defer w.Close()
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("could not write %s: %s", path, err)
		}
		return path
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("could not write %s: %s", path, err)
	}
	return path
}

func TestLoadDIMACS(t *testing.T) {
	path := writeFile(t, "instance.cnf", testInstance, false)

	c := &clauseCollector{}
	if err := LoadDIMACS(path, false, c); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(testClauses, c.clauses); diff != "" {
		t.Errorf("LoadDIMACS(): clause mismatch (-want, +got):\n%s", diff)
	}
}

func TestLoadDIMACS_gzip(t *testing.T) {
	path := writeFile(t, "instance.cnf.gz", testInstance, true)

	c := &clauseCollector{}
	if err := LoadDIMACS(path, true, c); err != nil {
		t.Fatalf("LoadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(testClauses, c.clauses); diff != "" {
		t.Errorf("LoadDIMACS(): clause mismatch (-want, +got):\n%s", diff)
	}
}

func TestLoadDIMACS_noFile(t *testing.T) {
	c := &clauseCollector{}
	if err := LoadDIMACS("", false, c); err == nil {
		t.Errorf("LoadDIMACS(): want error, got none")
	}
}

func TestLoadDIMACS_gzip_notGzipFile(t *testing.T) {
	path := writeFile(t, "instance.cnf", testInstance, false)

	c := &clauseCollector{}
	if err := LoadDIMACS(path, true, c); err == nil {
		t.Errorf("LoadDIMACS(): want error, got none")
	}
}

func TestReadModels(t *testing.T) {
	path := writeFile(t, "instance.cnf.models", "1 -2 3 0\n-1 -2 -3 0\n", false)

	got, err := ReadModels(path)
	if err != nil {
		t.Fatalf("ReadModels(): want no error, got %s", err)
	}
	want := [][]bool{
		{true, false, true},
		{false, false, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadModels(): model mismatch (-want, +got):\n%s", diff)
	}
}
