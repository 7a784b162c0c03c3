package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/Jobin12/invoice-extraction/internal/document"
	"github.com/Jobin12/invoice-extraction/internal/remote"
)

type fakeCreator struct {
	calls     int
	invoiceID string
	err       error

	gotCustomer string
	gotDoc      document.Value
}

func (f *fakeCreator) CreateInvoice(ctx context.Context, customerName string, doc document.Value) (string, error) {
	f.calls++
	f.gotCustomer = customerName
	f.gotDoc = doc
	if f.err != nil {
		return "", f.err
	}
	return f.invoiceID, nil
}

func TestIntegrationSubmitEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		creator := &fakeCreator{invoiceID: "INV-1"}
		w := NewIntegrationWorkflow(creator)
		w.SetCustomerName(name)

		state := w.Submit(context.Background(), document.Absent())

		if state.Status != StatusFailed {
			t.Errorf("name %q: expected status %q, got %q", name, StatusFailed, state.Status)
		}
		if state.Message != "Please enter a customer name." {
			t.Errorf("name %q: unexpected message %q", name, state.Message)
		}
		if creator.calls != 0 {
			t.Errorf("name %q: expected zero outbound requests, got %d", name, creator.calls)
		}
	}
}

func TestIntegrationSubmitSuccess(t *testing.T) {
	creator := &fakeCreator{invoiceID: "INV-9"}
	w := NewIntegrationWorkflow(creator)
	w.SetCustomerName("Acme Trading")

	doc, err := document.Parse([]byte(`{"invoice_number": "7"}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	state := w.Submit(context.Background(), doc)

	if state.Status != StatusSucceeded {
		t.Fatalf("expected status %q, got %q (message: %q)", StatusSucceeded, state.Status, state.Message)
	}
	if state.Message != "Invoice created successfully! ID: INV-9" {
		t.Errorf("unexpected message %q", state.Message)
	}
	if creator.calls != 1 {
		t.Errorf("expected exactly one outbound request, got %d", creator.calls)
	}
	if creator.gotCustomer != "Acme Trading" {
		t.Errorf("unexpected customer name %q", creator.gotCustomer)
	}
	if creator.gotDoc.Get("invoice_number").Text() != "7" {
		t.Error("document was not forwarded with the submission")
	}
}

func TestIntegrationSubmitFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server detail",
			err:  &remote.StatusError{StatusCode: 400, Detail: "customer not found"},
			want: "customer not found",
		},
		{
			name: "rejection without detail",
			err:  &remote.StatusError{StatusCode: 502},
			want: "Failed to create invoice",
		},
		{
			name: "transport fault",
			err:  errors.New("dial tcp: connection refused"),
			want: "dial tcp: connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewIntegrationWorkflow(&fakeCreator{err: tt.err})
			w.SetCustomerName("Acme")

			state := w.Submit(context.Background(), document.Absent())

			if state.Status != StatusFailed {
				t.Fatalf("expected status %q, got %q", StatusFailed, state.Status)
			}
			if state.Message != tt.want {
				t.Errorf("expected message %q, got %q", tt.want, state.Message)
			}
		})
	}
}

func TestIntegrationResubmitAfterFailure(t *testing.T) {
	creator := &fakeCreator{err: &remote.StatusError{StatusCode: 500, Detail: "boom"}}
	w := NewIntegrationWorkflow(creator)
	w.SetCustomerName("Acme")

	if state := w.Submit(context.Background(), document.Absent()); state.Status != StatusFailed {
		t.Fatalf("expected first submit to fail, got %q", state.Status)
	}

	// failed is not terminal; a new submission runs the full cycle again.
	creator.err = nil
	creator.invoiceID = "INV-2"
	state := w.Submit(context.Background(), document.Absent())
	if state.Status != StatusSucceeded {
		t.Fatalf("expected resubmit to succeed, got %q (message: %q)", state.Status, state.Message)
	}
	if creator.calls != 2 {
		t.Errorf("expected two outbound requests, got %d", creator.calls)
	}
}

func TestIntegrationNameEditsDoNotChangeStatus(t *testing.T) {
	w := NewIntegrationWorkflow(&fakeCreator{invoiceID: "INV-1"})
	w.SetCustomerName("first")
	w.SetCustomerName("second")

	state := w.State()
	if state.Status != StatusIdle {
		t.Errorf("expected status %q after edits, got %q", StatusIdle, state.Status)
	}
	if state.CustomerName != "second" {
		t.Errorf("expected held name %q, got %q", "second", state.CustomerName)
	}
}

func TestIntegrationPanelDisablesSubmitWhileSubmitting(t *testing.T) {
	state := IntegrationState{Status: StatusSubmitting, Message: "Creating invoice in Zoho Books."}
	panel := state.Panel()
	if !panel.SubmitDisabled {
		t.Error("panel must disable submit while a request is in flight")
	}

	state.Status = StatusIdle
	if state.Panel().SubmitDisabled {
		t.Error("panel must allow submit when idle")
	}
}
