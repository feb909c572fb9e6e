package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/tuneinsight/ghquad/quadrature"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleWarning.Render("! "+fmt.Sprintf(format, args...)))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatCSV:
		return nil
	default:
		return fmt.Errorf("unknown format %q, want %q, %q or %q", format, formatText, formatJSON, formatCSV)
	}
}

// writeRule writes r to w in the given format.
// The text format is followed by a summary of the rule.
func writeRule(w io.Writer, r quadrature.Rule, format string) error {

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)

	case formatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"node", "weight"}); err != nil {
			return err
		}
		for i := range r.Nodes {
			record := []string{
				strconv.FormatFloat(r.Nodes[i], 'g', -1, 64),
				strconv.FormatFloat(r.Weights[i], 'g', -1, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	case formatText:
		fmt.Fprintf(w, "%-26s %-26s\n", "node", "weight")
		for i := range r.Nodes {
			fmt.Fprintf(w, "%-26.17e %-26.17e\n", r.Nodes[i], r.Weights[i])
		}

		s := r.Summary()
		fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%d points", s.Points)))
		printDetail(w, "sum of weights  %.17g (sqrt(pi) %+.3e)", s.WeightSum, s.WeightSum-quadrature.HermiteMoment)
		printDetail(w, "nodes           [%.17g, %.17g]", s.MinNode, s.MaxNode)
		printDetail(w, "weights         [%.6e, %.6e]", s.MinWeight, s.MaxWeight)
		return nil

	default:
		return checkFormat(format)
	}
}
