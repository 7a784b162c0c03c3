package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/Jobin12/invoice-extraction/internal/display"
	"github.com/Jobin12/invoice-extraction/internal/document"
	"github.com/Jobin12/invoice-extraction/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve [document-json]",
	Short: "Serve the rendered view of an extracted document over HTTP",
	Long: `Serve a small read-only viewer for an extracted document: the rendered
HTML view at / and the raw document JSON at /document.json.`,
	Example: `  invoicectl serve invoice.json --addr :8080`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	addr, _ := cmd.Flags().GetString("addr")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document file: %w", err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		view := display.Render(doc, nil)
		html, err := view.HTML()
		if err != nil {
			log.Error().Err(err).Msg("Rendering document failed")
			http.Error(w, "rendering failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>Invoice</title></head><body>%s</body></html>\n", html)
	}).Methods(http.MethodGet)
	router.HandleFunc("/document.json", func(w http.ResponseWriter, r *http.Request) {
		raw, err := doc.MarshalJSON()
		if err != nil {
			http.Error(w, "encoding failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	}).Methods(http.MethodGet)

	log.Info().
		Str("addr", addr).
		Str("file", args[0]).
		Msg("Serving document view")

	return http.ListenAndServe(addr, router)
}
