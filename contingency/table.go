package contingency

import (
	"errors"
	"fmt"

	"github.com/arloliu/fitwise/dataset"
)

// ErrDegenerateTable indicates a contingency table the chi-square test
// cannot run on: fewer than two rows or columns, or a zero expected cell.
var ErrDegenerateTable = errors.New("degenerate contingency table")

// Table is a two-dimensional contingency table: cross-tabulated counts for
// two categorical variables, rows indexed by levels of the first and columns
// by levels of the second.
type Table struct {
	rowLabels []string
	colLabels []string
	counts    [][]float64
}

// NewTable creates a contingency table from labeled non-negative counts.
// Every row of counts must have len(colLabels) cells.
func NewTable(rowLabels, colLabels []string, counts [][]float64) (*Table, error) {
	if len(rowLabels) != len(counts) {
		return nil, fmt.Errorf("%w: %d row labels for %d count rows",
			dataset.ErrInvalidInput, len(rowLabels), len(counts))
	}
	for i, row := range counts {
		if len(row) != len(colLabels) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				dataset.ErrInvalidInput, i, len(row), len(colLabels))
		}
		for j, c := range row {
			if c < 0 {
				return nil, fmt.Errorf("%w: negative count at [%d][%d]", dataset.ErrInvalidInput, i, j)
			}
		}
	}

	return &Table{rowLabels: rowLabels, colLabels: colLabels, counts: counts}, nil
}

// Crosstab builds the observed contingency table of two categorical columns:
// rows are levels of colA, columns are levels of colB, cells count the rows
// where both labels occur. Missing labels in either column are skipped.
func Crosstab(ds *dataset.Dataset, colA, colB string) (*Table, error) {
	a, err := ds.Categorical(colA)
	if err != nil {
		return nil, err
	}
	b, err := ds.Categorical(colB)
	if err != nil {
		return nil, err
	}

	rowIdx := levelIndex(a.Levels())
	colIdx := levelIndex(b.Levels())

	counts := make([][]float64, len(a.Levels()))
	for i := range counts {
		counts[i] = make([]float64, len(b.Levels()))
	}

	for i := 0; i < ds.NumRows(); i++ {
		la, lb := a.At(i), b.At(i)
		if la == "" || lb == "" {
			continue
		}
		counts[rowIdx[la]][colIdx[lb]]++
	}

	return NewTable(a.Levels(), b.Levels(), counts)
}

func levelIndex(levels []string) map[string]int {
	idx := make(map[string]int, len(levels))
	for i, lv := range levels {
		idx[lv] = i
	}

	return idx
}

// NumRows returns the number of table rows.
func (t *Table) NumRows() int { return len(t.counts) }

// NumCols returns the number of table columns.
func (t *Table) NumCols() int { return len(t.colLabels) }

// RowLabels returns the row level labels.
func (t *Table) RowLabels() []string { return t.rowLabels }

// ColLabels returns the column level labels.
func (t *Table) ColLabels() []string { return t.colLabels }

// At returns the observed count at [i][j].
func (t *Table) At(i, j int) float64 { return t.counts[i][j] }

// margins computes row totals, column totals, and the grand total.
func (t *Table) margins() (rowTotals, colTotals []float64, grand float64) {
	rowTotals = make([]float64, t.NumRows())
	colTotals = make([]float64, t.NumCols())
	for i, row := range t.counts {
		for j, c := range row {
			rowTotals[i] += c
			colTotals[j] += c
			grand += c
		}
	}

	return rowTotals, colTotals, grand
}

// String returns a short summary of the table shape.
func (t *Table) String() string {
	return fmt.Sprintf("Table{%d×%d}", t.NumRows(), t.NumCols())
}
