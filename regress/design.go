package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/fitwise/dataset"
	"github.com/arloliu/fitwise/format"
)

// predictorInfo records what a model needs to rebuild a design row for one
// predictor at prediction time.
type predictorInfo struct {
	name      string
	kind      format.ColumnKind
	levels    []string // full training level set, categorical only
	reference string   // categorical only
}

// designTerm is one column of the design matrix, excluding the intercept.
type designTerm struct {
	label     string // "runtime" or "genre=Drama"
	predictor string // source predictor name
	level     string // non-reference level, "" for numeric terms
}

// buildDesign expands the predictors into a design matrix with a leading
// intercept column. Each numeric predictor contributes one column; each
// categorical predictor contributes one indicator column per non-reference
// level, in level order.
func buildDesign(ds *dataset.Dataset, predictors []string) (*mat.Dense, []designTerm, []predictorInfo, error) {
	n := ds.NumRows()
	var terms []designTerm
	infos := make([]predictorInfo, 0, len(predictors))

	type columnSource struct {
		numeric *dataset.NumericColumn
		cat     *dataset.CategoricalColumn
		level   string
	}
	var sources []columnSource

	for _, name := range predictors {
		col, ok := ds.Column(name)
		if !ok {
			return nil, nil, nil, fmt.Errorf("%w: no predictor column %q", dataset.ErrInvalidInput, name)
		}
		if col.HasMissing() {
			return nil, nil, nil, fmt.Errorf("%w: predictor %q contains missing values", dataset.ErrInvalidInput, name)
		}

		switch c := col.(type) {
		case *dataset.NumericColumn:
			terms = append(terms, designTerm{label: name, predictor: name})
			sources = append(sources, columnSource{numeric: c})
			infos = append(infos, predictorInfo{name: name, kind: format.KindNumeric})
		case *dataset.CategoricalColumn:
			for _, lv := range c.NonReferenceLevels() {
				terms = append(terms, designTerm{
					label:     name + "=" + lv,
					predictor: name,
					level:     lv,
				})
				sources = append(sources, columnSource{cat: c, level: lv})
			}
			infos = append(infos, predictorInfo{
				name:      name,
				kind:      format.KindCategorical,
				levels:    c.Levels(),
				reference: c.Reference(),
			})
		default:
			return nil, nil, nil, fmt.Errorf("%w: predictor %q has unsupported kind %s",
				dataset.ErrInvalidInput, name, col.Kind())
		}
	}

	x := mat.NewDense(n, len(terms)+1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1) // intercept
		for j, src := range sources {
			switch {
			case src.numeric != nil:
				x.Set(i, j+1, src.numeric.At(i))
			case src.cat.At(i) == src.level:
				x.Set(i, j+1, 1)
			default:
				x.Set(i, j+1, 0)
			}
		}
	}

	return x, terms, infos, nil
}
