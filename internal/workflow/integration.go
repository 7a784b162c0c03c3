// Package workflow holds the two request/response state machines driven by
// user actions: uploading a document for extraction, and submitting an
// extracted document to the bookkeeping service.
//
// Each workflow owns its state exclusively and is the error boundary for its
// operation: every failure mode resolves to a user-visible message, nothing
// propagates past the workflow. One submission performs at most one outbound
// call, with no retries and no cancellation of an in-flight request.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Jobin12/invoice-extraction/internal/display"
	"github.com/Jobin12/invoice-extraction/internal/document"
	"github.com/Jobin12/invoice-extraction/internal/logger"
	"github.com/Jobin12/invoice-extraction/internal/remote"
)

// IntegrationStatus is the lifecycle state of the integration workflow.
type IntegrationStatus string

const (
	StatusIdle       IntegrationStatus = "idle"
	StatusSubmitting IntegrationStatus = "submitting"
	StatusSucceeded  IntegrationStatus = "succeeded"
	StatusFailed     IntegrationStatus = "failed"
)

// IntegrationState is the visible state of one integration workflow
// instance. Failed and succeeded are not terminal: a new submission
// re-enters submitting.
type IntegrationState struct {
	CustomerName string
	Status       IntegrationStatus
	Message      string
}

// Panel maps the state onto its display fragment. Submission is disabled
// while a request is in flight; the machine itself relies on that gate
// rather than rejecting concurrent submits.
func (s IntegrationState) Panel() *display.IntegrationPanel {
	return &display.IntegrationPanel{
		CustomerName:   s.CustomerName,
		Status:         string(s.Status),
		Message:        s.Message,
		SubmitDisabled: s.Status == StatusSubmitting,
	}
}

// InvoiceCreator is the outbound dependency of the integration workflow.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, customerName string, doc document.Value) (string, error)
}

// IntegrationWorkflow drives the submission of one document to the
// bookkeeping service. Not safe for concurrent use; all events are expected
// to arrive from a single goroutine.
type IntegrationWorkflow struct {
	state   IntegrationState
	creator InvoiceCreator
	log     zerolog.Logger
}

// NewIntegrationWorkflow returns an idle workflow using creator for the
// outbound call.
func NewIntegrationWorkflow(creator InvoiceCreator) *IntegrationWorkflow {
	return &IntegrationWorkflow{
		state:   IntegrationState{Status: StatusIdle},
		creator: creator,
		log:     logger.WithComponent("integration-workflow"),
	}
}

// State returns the current workflow state.
func (w *IntegrationWorkflow) State() IntegrationState { return w.state }

// SetCustomerName updates the held customer-name input. Allowed in any
// state; does not change status.
func (w *IntegrationWorkflow) SetCustomerName(name string) {
	w.state.CustomerName = name
}

// Submit runs one submission attempt against the current document and
// returns the resulting state. An empty or whitespace-only customer name
// fails immediately with no outbound call. Otherwise exactly one request is
// issued and the workflow resolves to succeeded or failed.
func (w *IntegrationWorkflow) Submit(ctx context.Context, doc document.Value) IntegrationState {
	if strings.TrimSpace(w.state.CustomerName) == "" {
		w.state.Status = StatusFailed
		w.state.Message = "Please enter a customer name."
		return w.state
	}

	requestID := uuid.NewString()
	log := w.log.With().Str("request_id", requestID).Logger()

	w.state.Status = StatusSubmitting
	w.state.Message = "Creating invoice in Zoho Books."

	log.Info().
		Str("customer", w.state.CustomerName).
		Msg("Submitting invoice to Zoho Books")

	invoiceID, err := w.creator.CreateInvoice(ctx, w.state.CustomerName, doc)
	if err != nil {
		w.state.Status = StatusFailed
		w.state.Message = integrationFailureMessage(err)
		log.Error().Err(err).Msg("Invoice submission failed")
		return w.state
	}

	w.state.Status = StatusSucceeded
	w.state.Message = fmt.Sprintf("Invoice created successfully! ID: %s", invoiceID)
	log.Info().Str("invoice_id", invoiceID).Msg("Invoice submission succeeded")
	return w.state
}

// integrationFailureMessage resolves a submission error to its user-facing
// message: the server's detail when present, a generic description for a
// detail-less rejection, else the transport error's description.
func integrationFailureMessage(err error) string {
	var statusErr *remote.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Detail != "" {
			return statusErr.Detail
		}
		return "Failed to create invoice"
	}
	return err.Error()
}
