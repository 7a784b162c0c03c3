package display

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Text renders the view as plain terminal output.
func (v View) Text() string {
	if v.Empty() {
		return ""
	}

	var b strings.Builder

	if v.Header != nil {
		fmt.Fprintf(&b, "Invoice %s\n", v.Header.InvoiceNumber)
		fmt.Fprintf(&b, "%s\n", v.Header.InvoiceDate)
		if v.Header.DueDate != "" {
			fmt.Fprintf(&b, "Due: %s\n", v.Header.DueDate)
		}
	}

	for _, card := range v.Parties {
		fmt.Fprintf(&b, "\n%s\n", card.Title)
		for _, line := range card.Lines {
			writeIndented(&b, "  ", line.Label, line.Value)
		}
	}

	if v.LineItems != nil {
		b.WriteString("\n")
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(v.LineItems.Columns, "\t"))
		for _, row := range v.LineItems.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Description, row.Quantity, row.UnitPrice, row.Total)
		}
		tw.Flush()
	}

	if len(v.Totals) > 0 {
		b.WriteString("\n")
		for _, row := range v.Totals {
			label := row.Label
			if row.Emphasis {
				label = strings.ToUpper(label)
			}
			writeIndented(&b, "", label, row.Value)
		}
	}

	if len(v.BankDetails) > 0 {
		b.WriteString("\nPayment Information\n")
		for _, row := range v.BankDetails {
			writeIndented(&b, "  ", row.Label, row.Value)
		}
	}

	if v.Integration != nil && v.Integration.Message != "" {
		fmt.Fprintf(&b, "\nZoho Books Integration\n  [%s] %s\n", v.Integration.Status, v.Integration.Message)
	}

	return b.String()
}

// writeIndented prints one labeled value, recursing into nested entries with
// deeper indentation.
func writeIndented(b *strings.Builder, indent, label string, value Rendered) {
	switch {
	case value.IsNested():
		if label != "" {
			fmt.Fprintf(b, "%s%s:\n", indent, label)
		}
		for _, entry := range value.Entries {
			writeIndented(b, indent+"  ", entry.Label, entry.Value)
		}
	case label != "":
		fmt.Fprintf(b, "%s%s: %s\n", indent, label, value.Text)
	default:
		fmt.Fprintf(b, "%s%s\n", indent, value.Text)
	}
}
