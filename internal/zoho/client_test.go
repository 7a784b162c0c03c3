package zoho

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jobin12/invoice-extraction/internal/document"
	"github.com/Jobin12/invoice-extraction/internal/remote"
)

func TestCreateInvoiceSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/zoho/create-invoice" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}

		var payload struct {
			CustomerName string          `json:"customer_name"`
			InvoiceData  json.RawMessage `json:"invoice_data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if payload.CustomerName != "Acme Trading" {
			t.Errorf("unexpected customer name %q", payload.CustomerName)
		}
		// The document must arrive with its key order intact.
		if got := string(payload.InvoiceData); got != `{"invoice_number":"INV-1","totals":{"subtotal":100,"grand_total":115}}` {
			t.Errorf("unexpected invoice_data %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"invoice": {"invoice_id": "INV-9", "status": "draft"}}`)
	}))
	defer server.Close()

	doc, err := document.Parse([]byte(`{"invoice_number":"INV-1","totals":{"subtotal":100,"grand_total":115}}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	client := NewClient(server.URL)
	invoiceID, err := client.CreateInvoice(context.Background(), "Acme Trading", doc)
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}
	if invoiceID != "INV-9" {
		t.Errorf("unexpected invoice id %q", invoiceID)
	}
}

func TestCreateInvoiceRejectionWithDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail": "Customer not found in Zoho Books"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateInvoice(context.Background(), "Nobody", document.Absent())

	var statusErr *remote.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *remote.StatusError, got %v", err)
	}
	if statusErr.Detail != "Customer not found in Zoho Books" {
		t.Errorf("unexpected detail %q", statusErr.Detail)
	}
}

func TestCreateInvoiceMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"unexpected": true}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateInvoice(context.Background(), "Acme", document.Absent())
	if err == nil {
		t.Fatal("expected error for response without invoice_id, got nil")
	}
}
