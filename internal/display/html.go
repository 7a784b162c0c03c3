package display

import (
	"html/template"
	"strings"
)

// viewTemplate lays the sections out in the same fixed order as Render.
// Styling is left to the embedding page.
var viewTemplate = template.Must(template.New("invoice").Parse(`{{define "value" -}}
{{if .IsNested}}<ul class="value-list">{{range .Entries}}<li>{{if .Label}}<strong>{{.Label}}:</strong> {{end}}{{template "value" .Value}}</li>{{end}}</ul>{{else}}{{.Text}}{{end}}
{{- end -}}
<div class="invoice-display">
{{- with .Header}}
  <div class="invoice-header">
    <h2>Invoice {{.InvoiceNumber}}</h2>
    <span class="invoice-date">{{.InvoiceDate}}</span>
    {{- if .DueDate}}
    <p><strong>Due:</strong> {{.DueDate}}</p>
    {{- end}}
  </div>
{{- end}}
{{- range .Parties}}
  <div class="entity-card">
    <h3>{{.Title}}</h3>
    {{- range .Lines}}
    <p>{{if .Label}}<strong>{{.Label}}:</strong> {{end}}{{template "value" .Value}}</p>
    {{- end}}
  </div>
{{- end}}
{{- with .LineItems}}
  <table class="invoice-table">
    <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{- range .Rows}}
      <tr><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.Total}}</td></tr>
    {{- end}}
    </tbody>
  </table>
{{- end}}
{{- if .Totals}}
  <div class="totals-section">
    {{- range .Totals}}
    <div class="total-row{{if .Emphasis}} grand-total{{end}}"><span>{{.Label}}</span> <span>{{template "value" .Value}}</span></div>
    {{- end}}
  </div>
{{- end}}
{{- if .BankDetails}}
  <div class="bank-details">
    <h3>Payment Information</h3>
    {{- range .BankDetails}}
    <div><span>{{.Label}}</span> <span>{{template "value" .Value}}</span></div>
    {{- end}}
  </div>
{{- end}}
{{- with .Integration}}
  <div class="zoho-integration">
    <h3>Zoho Books Integration</h3>
    {{- if .Message}}
    <p class="status-{{.Status}}">{{.Message}}</p>
    {{- end}}
  </div>
{{- end}}
</div>
`))

// HTML renders the view as an HTML fragment.
func (v View) HTML() (string, error) {
	if v.Empty() {
		return "", nil
	}
	var b strings.Builder
	if err := viewTemplate.Execute(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}
