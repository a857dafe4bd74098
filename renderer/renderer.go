// Package renderer produces human readable reports of processed batches.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/capgains"
)

// Options holds configuration for rendering a batch report.
type Options struct {
	Currency string // Currency is the ISO code used to format amounts.
	Source   string // Source names the input, used in the title.
}

const batchTemplate = `# Capital Gains Tax{{with .Source}} for {{.}}{{end}}, line {{.Batch.Line}}

| # | Operation | Quantity | Unit Cost | Tax |
|---:|:---|---:|---:|---:|
{{- range $i, $op := .Batch.Operations}}
| {{inc $i}} | {{$op.Type}} | {{$op.Quantity}} | {{money $op.UnitCost}} | {{tax (index $.Batch.Results $i).Tax}} |
{{- end}}
| **Total** | | | | **{{money .Batch.TotalTax}}** |

## Final Position

| Quantity | Average Cost | Loss Carried Forward |
|---:|---:|---:|
| {{.Batch.Position.Quantity}} | {{money .Batch.Position.AverageCost}} | {{money .Batch.Position.LossCarryForward}} |
`

// BatchMarkdown renders a processed batch to a markdown string: every operation
// with its tax, the total tax, and the final position.
func BatchMarkdown(b *capgains.Batch, opts Options) string {
	funcs := template.FuncMap{
		"inc":   func(i int) int { return i + 1 },
		"money": func(m capgains.Money) string { return formatMoney(m, opts.Currency) },
		"tax":   func(m capgains.Money) string { return formatTax(m, opts.Currency) },
	}
	tmpl, err := template.New("batch").Funcs(funcs).Parse(batchTemplate)
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", "batch", err)
	}

	data := struct {
		Source string
		Batch  *capgains.Batch
	}{opts.Source, b}

	var s strings.Builder
	if err := tmpl.Execute(&s, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", "batch", err)
	}
	return s.String()
}

// SummaryMarkdown renders the total tax of several batches.
func SummaryMarkdown(batches []*capgains.Batch, opts Options) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Summary\n\n")
	fmt.Fprintln(&b, "| Line | Operations | Tax |")
	fmt.Fprintln(&b, "|---:|---:|---:|")

	var total capgains.Money
	for _, batch := range batches {
		fmt.Fprintf(&b, "| %d | %d | %s |\n", batch.Line, len(batch.Operations), formatTax(batch.TotalTax(), opts.Currency))
		total = total.Add(batch.TotalTax())
	}
	fmt.Fprintf(&b, "| **%s** | | **%s** |\n", "Total", formatMoney(total, opts.Currency))
	return b.String()
}
