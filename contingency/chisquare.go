package contingency

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// TestResult is the outcome of a chi-square independence test.
type TestResult struct {
	// Statistic is the chi-square test statistic Σ(observed-expected)²/expected.
	Statistic float64
	// DF is the degrees of freedom (rows-1)(cols-1).
	DF int
	// PValue is the upper-tail probability of a chi-square distribution with
	// DF degrees of freedom exceeding Statistic.
	PValue float64
	// Expected holds the expected counts under independence, row-major.
	Expected [][]float64
}

// String returns a human-readable summary of the test result.
func (r *TestResult) String() string {
	return fmt.Sprintf("ChiSquare{X²: %.4f, df: %d, p: %.4g}", r.Statistic, r.DF, r.PValue)
}

// ChiSquareTest runs the chi-square test of independence on the table.
//
// Expected counts under independence are rowTotal·colTotal/grandTotal. The
// test fails with ErrDegenerateTable if the table has fewer than two rows or
// columns, or if any expected cell is zero (an all-zero row or column).
func (t *Table) ChiSquareTest() (*TestResult, error) {
	rows, cols := t.NumRows(), t.NumCols()
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: need at least a 2×2 table, got %d×%d", ErrDegenerateTable, rows, cols)
	}

	rowTotals, colTotals, grand := t.margins()
	if grand == 0 {
		return nil, fmt.Errorf("%w: table has no observations", ErrDegenerateTable)
	}

	expected := make([][]float64, rows)
	statistic := 0.0
	for i := 0; i < rows; i++ {
		expected[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			e := rowTotals[i] * colTotals[j] / grand
			if e == 0 {
				return nil, fmt.Errorf("%w: expected count is zero at [%d][%d]", ErrDegenerateTable, i, j)
			}
			expected[i][j] = e

			d := t.counts[i][j] - e
			statistic += d * d / e
		}
	}

	df := (rows - 1) * (cols - 1)
	dist := distuv.ChiSquared{K: float64(df)}

	return &TestResult{
		Statistic: statistic,
		DF:        df,
		PValue:    dist.Survival(statistic),
		Expected:  expected,
	}, nil
}
