// Package contingency provides contingency tables and the chi-square test
// of independence between two categorical variables.
//
// A table can be built directly from labeled counts or cross-tabulated from
// two categorical dataset columns:
//
//	table, err := contingency.Crosstab(ds, "education", "opinion")
//	if err != nil {
//	    return err
//	}
//	result, err := table.ChiSquareTest()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result) // ChiSquare{X²: 12.3456, df: 4, p: 0.01496}
package contingency
