package data

import "fmt"

// Schema describes the columns of a dataset.
type Schema struct {
	FeatureNames []string
	Label        string // empty when the dataset has no label column
}

func defaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return names
}
