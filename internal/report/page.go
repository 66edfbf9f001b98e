package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"qfrbench/internal/evaluation"
	"qfrbench/internal/export"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2328}
table{border-collapse:collapse;margin-bottom:1.5rem}
th,td{border:1px solid #d0d7de;padding:.25rem .6rem;text-align:left}
th{background:#f6f8fa}
.warn{color:#9a6700}.fail{color:#cf222e}.ok{color:#1a7f37}`

// Page renders the full HTML report of one run.
func Page(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "qfrbench run " + doc.Report.RunID
		if _, err := fmt.Fprintf(w, "<!doctype html><html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body><h1>%s</h1>",
			templ.EscapeString(title), pageStyle, templ.EscapeString(title)); err != nil {
			return err
		}
		sections := []templ.Component{
			summarySection(doc.Report),
			resultsSection(export.Layout(doc.Results)),
			failuresSection(doc.Report),
			mismatchSection(doc.Report.Mismatches),
		}
		for _, section := range sections {
			if err := section.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func summarySection(r evaluation.Report) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		s := r.Summary
		status := `<span class="ok">complete</span>`
		if r.Cancelled {
			status = `<span class="fail">cancelled</span>`
		} else if r.Partial() {
			status = `<span class="warn">partial</span>`
		}
		rows := [][2]string{
			{"Benchmarks", templ.EscapeString(strings.Join(r.Config.Benchmarks, ", "))},
			{"Qubits", fmt.Sprintf("[%d, %d)", r.Config.Qubits.Start, r.Config.Qubits.Stop)},
			{"Abstraction level", templ.EscapeString(r.Config.Level)},
			{"Equality check", strconv.FormatBool(r.CheckEquality)},
			{"Started", formatTime(r.StartedAt)},
			{"Finished", formatTime(r.FinishedAt)},
			{"Status", status},
			{"Planned", strconv.Itoa(s.Planned)},
			{"Succeeded", fmt.Sprintf("%d (%s%%)", s.Succeeded, formatRate(s.Succeeded, s.Planned))},
			{"Construction failures", strconv.Itoa(s.ConstructionFailures)},
			{"Generation failures", strconv.Itoa(s.GenerationFailures)},
			{"Skipped", strconv.Itoa(s.Skipped)},
			{"Equality mismatches", strconv.Itoa(s.EqualityMismatches)},
		}
		var b strings.Builder
		b.WriteString("<h2>Summary</h2><table>")
		for _, row := range rows {
			fmt.Fprintf(&b, "<tr><th>%s</th><td>%s</td></tr>", row[0], row[1])
		}
		b.WriteString("</table>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func resultsSection(tables []export.Table) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Results</h2>")
		if len(tables) == 0 {
			b.WriteString("<p>No results.</p>")
		}
		for _, table := range tables {
			fmt.Fprintf(&b, "<h3>%s</h3><table><thead><tr>", templ.EscapeString(table.Label))
			for _, header := range table.Headers {
				fmt.Fprintf(&b, "<th>%s</th>", templ.EscapeString(header))
			}
			b.WriteString("</tr></thead><tbody>")
			for _, row := range table.Rows {
				b.WriteString("<tr>")
				for _, cell := range row {
					fmt.Fprintf(&b, "<td>%s</td>", templ.EscapeString(formatCell(cell)))
				}
				b.WriteString("</tr>")
			}
			b.WriteString("</tbody></table>")
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func failuresSection(r evaluation.Report) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		if len(r.GenerationFailures) > 0 {
			b.WriteString("<h2>Generation failures</h2><table><tr><th>Benchmark</th><th>Qubits</th><th>Error</th></tr>")
			for _, f := range r.GenerationFailures {
				fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td class=\"fail\">%s</td></tr>",
					templ.EscapeString(f.Benchmark), f.Qubits, templ.EscapeString(f.Error))
			}
			b.WriteString("</table>")
		}
		var failed []evaluation.Outcome
		for _, outcome := range r.Outcomes {
			if outcome.Kind == evaluation.OutcomeConstructionFailed {
				failed = append(failed, outcome)
			}
		}
		if len(failed) > 0 {
			b.WriteString("<h2>Construction failures</h2><table><tr><th>#</th><th>Benchmark</th><th>Qubits</th><th>Label</th><th>Error</th></tr>")
			for _, o := range failed {
				fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%d</td><td>%s</td><td class=\"fail\">%s</td></tr>",
					o.Index, templ.EscapeString(o.Benchmark), o.Qubits, templ.EscapeString(o.Label), templ.EscapeString(o.Error))
			}
			b.WriteString("</table>")
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func mismatchSection(mismatches []evaluation.EqualityMismatch) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(mismatches) == 0 {
			return nil
		}
		var b strings.Builder
		b.WriteString("<h2>Equality mismatches</h2><table><tr><th>Benchmark</th><th>Qubits</th><th>Distinct</th><th>Labels</th></tr>")
		for _, m := range mismatches {
			fmt.Fprintf(&b, "<tr class=\"warn\"><td>%s</td><td>%d</td><td>%d</td><td>%s</td></tr>",
				templ.EscapeString(m.Benchmark), m.Qubits, m.Distinct, templ.EscapeString(strings.Join(m.Labels, ", ")))
		}
		b.WriteString("</table>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}
