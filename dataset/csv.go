package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/fitwise/format"
)

// ColumnSpec declares how one CSV column is ingested.
type ColumnSpec struct {
	// Name is the CSV header name of the column.
	Name string
	// Kind is the semantic type to ingest the column as.
	Kind format.ColumnKind
	// Reference optionally fixes the reference level of a categorical
	// column. Empty means the first observed level.
	Reference string
}

// Schema declares the columns to ingest from a CSV stream. Columns present
// in the stream but absent from the schema are ignored.
type Schema []ColumnSpec

// FromCSV reads a header-first CSV stream and builds a dataset according to
// the schema.
//
// Numeric cells that are empty or fail to parse become NaN (missing);
// empty categorical cells stay missing. The result may therefore violate
// the no-missing-values requirement of Fit; run DropMissing first.
func FromCSV(r io.Reader, schema Schema) (*Dataset, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("%w: empty schema", ErrInvalidInput)
	}

	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	headerIdx := make(map[string]int, len(header))
	for i, name := range header {
		headerIdx[strings.TrimSpace(name)] = i
	}

	fieldIdx := make([]int, len(schema))
	for i, spec := range schema {
		idx, ok := headerIdx[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: csv header has no column %q", ErrInvalidInput, spec.Name)
		}
		if spec.Kind != format.KindNumeric && spec.Kind != format.KindCategorical {
			return nil, fmt.Errorf("%w: column %q has unsupported kind %s", ErrInvalidInput, spec.Name, spec.Kind)
		}
		fieldIdx[i] = idx
	}

	numVals := make([][]float64, len(schema))
	catVals := make([][]string, len(schema))

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		for i, spec := range schema {
			cell := strings.TrimSpace(record[fieldIdx[i]])
			if spec.Kind == format.KindNumeric {
				v, perr := strconv.ParseFloat(cell, 64)
				if cell == "" || cell == "NA" || perr != nil {
					v = math.NaN()
				}
				numVals[i] = append(numVals[i], v)
			} else {
				if cell == "NA" {
					cell = ""
				}
				catVals[i] = append(catVals[i], cell)
			}
		}
	}

	cols := make([]Column, len(schema))
	for i, spec := range schema {
		if spec.Kind == format.KindNumeric {
			cols[i] = NewNumeric(spec.Name, numVals[i])
			continue
		}

		cat := NewCategorical(spec.Name, catVals[i])
		if spec.Reference != "" {
			withRef, err := cat.withReference(spec.Reference)
			if err != nil {
				return nil, err
			}
			cat = withRef
		}
		cols[i] = cat
	}

	return New(cols...)
}
