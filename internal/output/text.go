// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"mitoseqfix/internal/pretty"
	"mitoseqfix/pkg/api"
)

// WriteText prints the repaired sequence on its own line.
func WriteText(w io.Writer, r Result) error {
	_, err := fmt.Fprintln(w, r.Repaired)
	return err
}

// WritePretty prints the input/repair alignment block.
func WritePretty(w io.Writer, r Result) error {
	name := r.Header
	if name == "" {
		name = r.ID
	}
	_, err := io.WriteString(w, pretty.Render(name, r.Input, r.Repaired, pretty.DefaultOptions))
	return err
}

// WriteReportText renders an evaluation report as an aligned table,
// accuracies as percentages.
func WriteReportText(w io.Writer, rep api.EvalReportV1) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "dataset:\t%s\n", rep.Dataset)
	fmt.Fprintf(tw, "samples:\t%d\n", rep.Samples)
	fmt.Fprintf(tw, "window:\t%d (overlap %d)\n\n", rep.WindowSize, rep.WindowOverlap)
	fmt.Fprintln(tw, "DAMAGE TYPE\tSAMPLES\tACCURACY")
	for _, row := range rep.ByDamageType {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", row.DamageType, row.Samples, row.Accuracy*100)
	}
	fmt.Fprintf(tw, "OVERALL\t%d\t%.1f%%\n", rep.Samples, rep.Overall*100)
	return tw.Flush()
}
