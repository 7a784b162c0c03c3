package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jobin12/invoice-extraction/internal/config"
	"github.com/Jobin12/invoice-extraction/internal/document"
	"github.com/Jobin12/invoice-extraction/internal/logger"
	"github.com/Jobin12/invoice-extraction/internal/workflow"
	"github.com/Jobin12/invoice-extraction/internal/zoho"
)

var zohoCmd = &cobra.Command{
	Use:   "zoho [document-json]",
	Short: "Create a Zoho Books invoice from an extracted document",
	Long: `Submit an extracted document (as saved by "extract -o") to the Zoho Books
integration endpoint under the given customer name.

One submission performs a single attempt; there are no automatic retries.`,
	Example: `  invoicectl zoho invoice.json --customer "Acme Trading LLC"`,
	Args: cobra.ExactArgs(1),
	RunE: runZoho,
}

func init() {
	rootCmd.AddCommand(zohoCmd)

	zohoCmd.Flags().String("customer", "", "Zoho Books customer name for the created invoice")
	zohoCmd.Flags().String("base-url", "", "Integration endpoint base URL (overrides ZOHO_BASE_URL)")
}

func runZoho(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("zoho")

	customer, _ := cmd.Flags().GetString("customer")
	baseURL, _ := cmd.Flags().GetString("base-url")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if baseURL == "" {
		baseURL = cfg.ZohoBaseURL
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document file: %w", err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cfg.HTTPTimeout)
	defer cancel()

	client := zoho.NewClient(baseURL)
	client.HTTPClient.Timeout = cfg.HTTPTimeout

	w := workflow.NewIntegrationWorkflow(client)
	w.SetCustomerName(customer)

	log.Info().
		Str("file", args[0]).
		Str("customer", customer).
		Msg("Submitting extracted document to Zoho Books")

	state := w.Submit(ctx, doc)
	if state.Status != workflow.StatusSucceeded {
		return errors.New(state.Message)
	}

	fmt.Println(state.Message)
	return nil
}
