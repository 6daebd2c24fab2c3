package core

// DisplayAttr is one column of the per-generation progress line: a label,
// the value to print and the column width.
type DisplayAttr struct {
	Name  string
	Value interface{}
	Width int
}

// DisplayFunc produces the progress columns for one generation, or nil to
// suppress output for that generation.
type DisplayFunc func(problem Problem, evaluator Evaluator, state RunState, pf [][]float64) []DisplayAttr
