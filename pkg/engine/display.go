package engine

import (
	"fmt"
	"strings"

	"github.com/XiaoConstantine/moea-go/pkg/core"
)

const bannerWidth = 70

// renderDisplay writes one fixed-width progress line. The first rendered
// line of a run is preceded by an equals-sign banner and a header row.
func (e *Engine) renderDisplay(attrs []core.DisplayAttr) {
	if !e.headerPrinted {
		fmt.Fprintln(e.displayWriter, strings.Repeat("=", bannerWidth))
		cols := make([]string, len(attrs))
		for i, a := range attrs {
			cols[i] = pad(a.Name, a.Width)
		}
		fmt.Fprintln(e.displayWriter, strings.Join(cols, " | "))
		fmt.Fprintln(e.displayWriter, strings.Repeat("=", bannerWidth))
		e.headerPrinted = true
	}

	cols := make([]string, len(attrs))
	for i, a := range attrs {
		cols[i] = pad(fmt.Sprintf("%v", a.Value), a.Width)
	}
	fmt.Fprintln(e.displayWriter, strings.Join(cols, " | "))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// DefaultDisplay reports generation and evaluation counters plus the number
// of feasible individuals, a reasonable progress line for any problem.
func DefaultDisplay(problem core.Problem, evaluator core.Evaluator, state core.RunState, pf [][]float64) []core.DisplayAttr {
	feasible := 0
	if pop := state.Population(); pop != nil {
		feasible = len(pop.FeasibleIndices())
	}
	return []core.DisplayAttr{
		{Name: "n_gen", Value: state.Generation(), Width: 8},
		{Name: "n_eval", Value: state.Evaluations(), Width: 10},
		{Name: "n_feasible", Value: feasible, Width: 10},
	}
}
