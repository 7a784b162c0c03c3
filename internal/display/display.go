// Package display maps an extracted invoice document onto a presentational
// view model.
//
// Documents have no fixed schema, so every renderer here is a total function:
// missing fields, null values, unexpected nesting and unknown keys all render
// as nothing (or a fallback literal) rather than failing. Sections are gated
// individually on the presence of their top-level field and composed by
// Render in a fixed order.
package display

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Jobin12/invoice-extraction/internal/document"
)

// FormatKey converts a machine field name into a human-readable label:
// underscores become spaces and each word's first letter is upper-cased.
// "grand_total" -> "Grand Total".
func FormatKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Rendered is the display form of an arbitrary document value: either a leaf
// scalar or an ordered list of labeled entries for nested values.
type Rendered struct {
	Text    string
	Entries []Entry
}

// Entry is one labeled line of a nested value.
type Entry struct {
	Label string
	Value Rendered
}

// IsNested reports whether the value rendered as a label/value list.
func (r Rendered) IsNested() bool { return len(r.Entries) > 0 }

// RenderValue maps a value of unknown shape onto its display form. Mappings
// become ordered label/value entries with each value rendered recursively;
// sequences are treated the same way with indexes as labels; scalars pass
// through unchanged. Total for any JSON-representable input.
func RenderValue(v document.Value) Rendered {
	switch v.Kind() {
	case document.KindMapping:
		entries := make([]Entry, 0, v.Len())
		for _, f := range v.Fields() {
			entries = append(entries, Entry{Label: FormatKey(f.Key), Value: RenderValue(f.Value)})
		}
		return Rendered{Entries: entries}
	case document.KindSequence:
		entries := make([]Entry, 0, v.Len())
		for i, item := range v.Items() {
			entries = append(entries, Entry{Label: strconv.Itoa(i), Value: RenderValue(item)})
		}
		return Rendered{Entries: entries}
	default:
		return Rendered{Text: v.Text()}
	}
}

// Header is the invoice header fragment. InvoiceNumber and InvoiceDate carry
// fallback literals when the document omits them; DueDate is empty when the
// field is absent.
type Header struct {
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
}

// PartyCard is one seller or buyer fragment.
type PartyCard struct {
	Title string
	Lines []Line
}

// Line is one labeled line of a party card. Label may be empty (names render
// without one).
type Line struct {
	Label string
	Value Rendered
}

// Table is the line-items fragment. Row order follows the document; the row
// index is its identity.
type Table struct {
	Columns []string
	Rows    []ItemRow
}

// ItemRow is one billed line item.
type ItemRow struct {
	Index       int
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}

// Row is one entry of the totals or bank-details fragments.
type Row struct {
	Label    string
	Value    Rendered
	Emphasis bool
}

// IntegrationPanel is the bookkeeping-integration fragment attached below the
// document sections. It mirrors the integration workflow's visible state.
type IntegrationPanel struct {
	CustomerName   string
	Status         string
	Message        string
	SubmitDisabled bool
}

// View is the full display tree for one document.
type View struct {
	Header      *Header
	Parties     []PartyCard
	LineItems   *Table
	Totals      []Row
	BankDetails []Row
	Integration *IntegrationPanel
}

// Empty reports whether the view renders nothing, as produced for an absent
// document.
func (v View) Empty() bool {
	return v.Header == nil && len(v.Parties) == 0 && v.LineItems == nil &&
		len(v.Totals) == 0 && len(v.BankDetails) == 0 && v.Integration == nil
}

// Render composes all sections over one document in fixed order. An absent
// document yields the empty view.
func Render(doc document.Value, integration *IntegrationPanel) View {
	if doc.IsAbsent() {
		return View{}
	}
	return View{
		Header:      RenderHeader(doc),
		Parties:     RenderParties(doc),
		LineItems:   RenderLineItems(doc),
		Totals:      RenderTotals(doc),
		BankDetails: RenderBankDetails(doc),
		Integration: integration,
	}
}

// RenderHeader renders the invoice number, date and optional due date.
func RenderHeader(doc document.Value) *Header {
	h := &Header{InvoiceNumber: "N/A", InvoiceDate: "Date N/A"}
	if s := doc.Get("invoice_number").Text(); s != "" {
		h.InvoiceNumber = s
	}
	if s := doc.Get("invoice_date").Text(); s != "" {
		h.InvoiceDate = s
	}
	h.DueDate = doc.Get("due_date").Text()
	return h
}

// partyField describes one recognized party sub-field: the keys that can
// carry it (first present wins) and its display label.
type partyField struct {
	keys  []string
	label string
}

type partyLayout struct {
	key    string
	title  string
	fields []partyField
}

// Recognized party fields, in display order. Unrecognized keys inside a party
// are intentionally never rendered, unlike the generic totals and
// bank-details sections.
var partyLayouts = []partyLayout{
	{
		key:   "seller",
		title: "Seller Details",
		fields: []partyField{
			{keys: []string{"name_english", "name"}},
			{keys: []string{"name_arabic"}},
			{keys: []string{"address"}, label: "Address"},
			{keys: []string{"vat_number"}, label: "VAT"},
			{keys: []string{"cr_number"}, label: "CR"},
		},
	},
	{
		key:   "buyer",
		title: "Buyer Details",
		fields: []partyField{
			{keys: []string{"name"}},
			{keys: []string{"address"}, label: "Address"},
			{keys: []string{"vat_number"}, label: "VAT"},
		},
	},
}

// RenderParties renders the seller and buyer cards. A card is suppressed
// entirely when its document key is absent; within a card, each field is
// gated on its own presence.
func RenderParties(doc document.Value) []PartyCard {
	var cards []PartyCard
	for _, layout := range partyLayouts {
		party := doc.Get(layout.key)
		if !party.IsMapping() {
			continue
		}
		card := PartyCard{Title: layout.title}
		for _, field := range layout.fields {
			for _, key := range field.keys {
				val := party.Get(key)
				if val.IsAbsent() {
					continue
				}
				rendered := RenderValue(val)
				if rendered.Text == "" && !rendered.IsNested() {
					continue
				}
				card.Lines = append(card.Lines, Line{Label: field.label, Value: rendered})
				break
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// RenderLineItems renders the billed items table, or nil when line_items is
// absent or empty. Row order and identity follow the input sequence.
func RenderLineItems(doc document.Value) *Table {
	items := doc.Get("line_items")
	if !items.IsSequence() || items.Len() == 0 {
		return nil
	}
	table := &Table{Columns: []string{"Item Description", "Qty", "Unit Price", "Amount"}}
	for i, item := range items.Items() {
		table.Rows = append(table.Rows, ItemRow{
			Index:       i,
			Description: item.Get("description").Text(),
			Quantity:    item.Get("quantity").Text(),
			UnitPrice:   item.Get("unit_price").Text(),
			Total:       item.Get("total").Text(),
		})
	}
	return table
}

// RenderTotals renders one row per totals key in document order. The literal
// grand_total key is tagged for emphasis; all other keys render uniformly.
func RenderTotals(doc document.Value) []Row {
	return renderKeyValueSection(doc.Get("totals"), "grand_total")
}

// RenderBankDetails renders one row per bank_details key in document order,
// with no special-cased key.
func RenderBankDetails(doc document.Value) []Row {
	return renderKeyValueSection(doc.Get("bank_details"), "")
}

func renderKeyValueSection(section document.Value, emphasisKey string) []Row {
	if !section.IsMapping() {
		return nil
	}
	rows := make([]Row, 0, section.Len())
	for _, f := range section.Fields() {
		rows = append(rows, Row{
			Label:    FormatKey(f.Key),
			Value:    RenderValue(f.Value),
			Emphasis: emphasisKey != "" && f.Key == emphasisKey,
		})
	}
	return rows
}
