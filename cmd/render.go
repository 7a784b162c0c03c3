package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jobin12/invoice-extraction/internal/display"
	"github.com/Jobin12/invoice-extraction/internal/document"
)

var renderCmd = &cobra.Command{
	Use:   "render [document-json]",
	Short: "Render a previously extracted document",
	Long: `Render an extracted document (as saved by "extract -o") without calling
any external service.`,
	Example: `  # Terminal view
  invoicectl render invoice.json

  # HTML fragment, e.g. for embedding
  invoicectl render invoice.json --html`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().Bool("html", false, "Render as an HTML fragment instead of plain text")
}

func runRender(cmd *cobra.Command, args []string) error {
	asHTML, _ := cmd.Flags().GetBool("html")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document file: %w", err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}

	view := display.Render(doc, nil)
	if asHTML {
		html, err := view.HTML()
		if err != nil {
			return err
		}
		fmt.Print(html)
		return nil
	}
	fmt.Print(view.Text())
	return nil
}
