package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jobin12/invoice-extraction/internal/config"
	"github.com/Jobin12/invoice-extraction/internal/display"
	"github.com/Jobin12/invoice-extraction/internal/extraction"
	"github.com/Jobin12/invoice-extraction/internal/logger"
	"github.com/Jobin12/invoice-extraction/internal/workflow"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdf-file]",
	Short: "Upload an invoice PDF to the extraction service and render the result",
	Long: `Upload an invoice PDF to the extraction service and render the extracted
document as a terminal view.

The extracted document has no fixed schema; whatever fields the service
returns are rendered, and missing fields are simply omitted.`,
	Example: `  # Extract and render an invoice
  invoicectl extract invoice.pdf

  # Keep the extracted document for later rendering or submission
  invoicectl extract invoice.pdf -o invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Write the extracted document JSON to this path")
	extractCmd.Flags().String("base-url", "", "Extraction service base URL (overrides EXTRACTION_BASE_URL)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")
	baseURL, _ := cmd.Flags().GetString("base-url")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if baseURL == "" {
		baseURL = cfg.ExtractionBaseURL
	}

	ctx, cancel := commandContext(cfg.HTTPTimeout)
	defer cancel()

	client := extraction.NewClient(baseURL)
	client.HTTPClient.Timeout = cfg.HTTPTimeout

	w := workflow.NewUploadWorkflow(client)
	w.SelectFile(args[0])

	log.Info().
		Str("file", args[0]).
		Str("base_url", baseURL).
		Msg("Starting invoice extraction")

	state := w.Upload(ctx)
	if state.Err != "" {
		return errors.New(state.Err)
	}

	if outputPath != "" {
		data, err := json.MarshalIndent(state.Result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding extracted document: %w", err)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("writing extracted document: %w", err)
		}
		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(data)).
			Msg("Extracted document written to file")
	}

	view := display.Render(state.Result, nil)
	fmt.Print(view.Text())
	return nil
}
