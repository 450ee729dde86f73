package dataset

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/fitwise/format"
)

// ErrInvalidInput indicates a malformed dataset construction or a bad
// column/variable argument. It is the shared sentinel wrapped by all
// input-validation failures across the library.
var ErrInvalidInput = errors.New("invalid input")

// Column is a named, typed column of observations.
//
// Implementations:
//   - NumericColumn: float64 values, NaN marks a missing observation
//   - CategoricalColumn: string labels, "" marks a missing observation
type Column interface {
	// Name returns the column name.
	Name() string
	// Kind returns the semantic type of the column.
	Kind() format.ColumnKind
	// Len returns the number of observations.
	Len() int
	// HasMissing reports whether any observation is missing.
	HasMissing() bool
}

// NumericColumn holds float64 observations. Missing values are NaN.
type NumericColumn struct {
	name   string
	values []float64
}

// NewNumeric creates a numeric column. The values slice is not copied;
// callers must not modify it after construction.
func NewNumeric(name string, values []float64) *NumericColumn {
	return &NumericColumn{name: name, values: values}
}

// Name returns the column name.
func (c *NumericColumn) Name() string { return c.name }

// Kind returns format.KindNumeric.
func (c *NumericColumn) Kind() format.ColumnKind { return format.KindNumeric }

// Len returns the number of observations.
func (c *NumericColumn) Len() int { return len(c.values) }

// Values returns the underlying observations. The slice is shared with the
// column; callers must treat it as read-only.
func (c *NumericColumn) Values() []float64 { return c.values }

// At returns the observation at index i.
func (c *NumericColumn) At(i int) float64 { return c.values[i] }

// HasMissing reports whether any observation is NaN.
func (c *NumericColumn) HasMissing() bool {
	for _, v := range c.values {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}

// CategoricalColumn holds string-labeled observations with a finite level set
// and a designated reference level. Missing values are the empty string.
type CategoricalColumn struct {
	name      string
	values    []string
	levels    []string
	reference string
}

// NewCategorical creates a categorical column. Levels are recorded in first
// observed order and the first observed level becomes the reference level.
// Empty labels are treated as missing and do not contribute a level.
func NewCategorical(name string, values []string) *CategoricalColumn {
	seen := make(map[string]struct{})
	var levels []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			levels = append(levels, v)
		}
	}

	ref := ""
	if len(levels) > 0 {
		ref = levels[0]
	}

	return &CategoricalColumn{name: name, values: values, levels: levels, reference: ref}
}

// Name returns the column name.
func (c *CategoricalColumn) Name() string { return c.name }

// Kind returns format.KindCategorical.
func (c *CategoricalColumn) Kind() format.ColumnKind { return format.KindCategorical }

// Len returns the number of observations.
func (c *CategoricalColumn) Len() int { return len(c.values) }

// Labels returns the underlying observations. The slice is shared with the
// column; callers must treat it as read-only.
func (c *CategoricalColumn) Labels() []string { return c.values }

// At returns the observation at index i.
func (c *CategoricalColumn) At(i int) string { return c.values[i] }

// Levels returns the level set in first observed order.
func (c *CategoricalColumn) Levels() []string { return c.levels }

// Reference returns the designated reference level.
func (c *CategoricalColumn) Reference() string { return c.reference }

// NonReferenceLevels returns the levels excluding the reference level, in
// level order. These are the levels that receive indicator columns when the
// column enters a model design matrix.
func (c *CategoricalColumn) NonReferenceLevels() []string {
	out := make([]string, 0, len(c.levels)-1)
	for _, lv := range c.levels {
		if lv != c.reference {
			out = append(out, lv)
		}
	}

	return out
}

// HasLevel reports whether the given label is a known level of the column.
func (c *CategoricalColumn) HasLevel(level string) bool {
	for _, lv := range c.levels {
		if lv == level {
			return true
		}
	}

	return false
}

// HasMissing reports whether any observation is the empty string.
func (c *CategoricalColumn) HasMissing() bool {
	for _, v := range c.values {
		if v == "" {
			return true
		}
	}

	return false
}

// withReference returns a copy of the column with a different reference level.
func (c *CategoricalColumn) withReference(level string) (*CategoricalColumn, error) {
	if !c.HasLevel(level) {
		return nil, fmt.Errorf("%w: column %q has no level %q", ErrInvalidInput, c.name, level)
	}

	dup := *c
	dup.reference = level

	return &dup, nil
}

// Dataset is an immutable table of observations (rows) by typed columns.
//
// A Dataset is created once from its columns and never mutated afterwards;
// every cleaning or recoding step produces a new Dataset, so transformation
// pipelines compose without hidden shared state.
type Dataset struct {
	cols   []Column
	byName map[string]int
	rows   int
}

// New creates a Dataset from the given columns. All columns must have the
// same length and unique, non-empty names.
func New(cols ...Column) (*Dataset, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: dataset requires at least one column", ErrInvalidInput)
	}

	rows := cols[0].Len()
	byName := make(map[string]int, len(cols))
	for i, col := range cols {
		if col.Name() == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrInvalidInput, i)
		}
		if _, dup := byName[col.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrInvalidInput, col.Name())
		}
		if col.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				ErrInvalidInput, col.Name(), col.Len(), rows)
		}
		byName[col.Name()] = i
	}

	return &Dataset{cols: cols, byName: byName, rows: rows}, nil
}

// NumRows returns the number of observations.
func (d *Dataset) NumRows() int { return d.rows }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.cols) }

// Names returns the column names in column order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, col := range d.cols {
		names[i] = col.Name()
	}

	return names
}

// Column returns the column with the given name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}

	return d.cols[i], true
}

// Numeric returns the named column as a NumericColumn.
func (d *Dataset) Numeric(name string) (*NumericColumn, error) {
	col, ok := d.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: no column %q", ErrInvalidInput, name)
	}
	num, ok := col.(*NumericColumn)
	if !ok {
		return nil, fmt.Errorf("%w: column %q is %s, expected numeric", ErrInvalidInput, name, col.Kind())
	}

	return num, nil
}

// Categorical returns the named column as a CategoricalColumn.
func (d *Dataset) Categorical(name string) (*CategoricalColumn, error) {
	col, ok := d.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: no column %q", ErrInvalidInput, name)
	}
	cat, ok := col.(*CategoricalColumn)
	if !ok {
		return nil, fmt.Errorf("%w: column %q is %s, expected categorical", ErrInvalidInput, name, col.Kind())
	}

	return cat, nil
}

// Columns returns all columns in column order. The slice is shared with the
// dataset; callers must treat it as read-only.
func (d *Dataset) Columns() []Column { return d.cols }

// HasMissing reports whether any column contains a missing observation.
func (d *Dataset) HasMissing() bool {
	for _, col := range d.cols {
		if col.HasMissing() {
			return true
		}
	}

	return false
}

// Row is a lightweight view of a single observation.
type Row struct {
	d *Dataset
	i int
}

// Row returns a view of observation i.
func (d *Dataset) Row(i int) Row { return Row{d: d, i: i} }

// Index returns the observation index of the row.
func (r Row) Index() int { return r.i }

// Number returns the numeric value of the named column at this row.
// The second return is false if the column is absent or not numeric.
func (r Row) Number(col string) (float64, bool) {
	num, err := r.d.Numeric(col)
	if err != nil {
		return 0, false
	}

	return num.At(r.i), true
}

// Label returns the categorical label of the named column at this row.
// The second return is false if the column is absent or not categorical.
func (r Row) Label(col string) (string, bool) {
	cat, err := r.d.Categorical(col)
	if err != nil {
		return "", false
	}

	return cat.At(r.i), true
}

// String returns a short human-readable summary of the dataset shape.
func (d *Dataset) String() string {
	return fmt.Sprintf("Dataset{%d rows × %d cols}", d.rows, len(d.cols))
}
