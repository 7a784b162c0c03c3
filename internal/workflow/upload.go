package workflow

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Jobin12/invoice-extraction/internal/document"
	"github.com/Jobin12/invoice-extraction/internal/extraction"
	"github.com/Jobin12/invoice-extraction/internal/logger"
	"github.com/Jobin12/invoice-extraction/internal/remote"
)

// UploadState is the visible state of one upload workflow instance. At most
// one of Result and Err is set at a time; Loading is true only while a
// request is in flight.
type UploadState struct {
	File    string
	Loading bool
	Result  document.Value
	Err     string
}

// Extractor is the outbound dependency of the upload workflow.
type Extractor interface {
	Extract(ctx context.Context, filename string, file io.Reader) (*extraction.Result, error)
}

// UploadWorkflow drives the upload of one selected file to the extraction
// service. Not safe for concurrent use. If Upload is invoked again before a
// previous response arrives, whichever response completes last wins; the
// machine does not guard against that race.
type UploadWorkflow struct {
	state     UploadState
	extractor Extractor
	open      func(string) (io.ReadCloser, error)
	log       zerolog.Logger
}

// NewUploadWorkflow returns an idle workflow using extractor for the
// outbound call.
func NewUploadWorkflow(extractor Extractor) *UploadWorkflow {
	return &UploadWorkflow{
		extractor: extractor,
		open:      func(path string) (io.ReadCloser, error) { return os.Open(path) },
		log:       logger.WithComponent("upload-workflow"),
	}
}

// State returns the current workflow state.
func (w *UploadWorkflow) State() UploadState { return w.state }

// SelectFile stores the new file reference and clears any prior result or
// error.
func (w *UploadWorkflow) SelectFile(path string) {
	w.state.File = path
	w.state.Err = ""
	w.state.Result = document.Absent()
}

// Upload runs one extraction attempt for the selected file and returns the
// resulting state. With no file selected it fails immediately with no
// outbound call. Otherwise exactly one request is issued; on success the
// response's extracted document becomes the result, on any failure the error
// message is set instead. Loading is cleared last in every path.
func (w *UploadWorkflow) Upload(ctx context.Context) (state UploadState) {
	if w.state.File == "" {
		w.state.Err = "Please select a file first."
		return w.state
	}

	w.state.Loading = true
	w.state.Err = ""
	w.state.Result = document.Absent()
	defer func() {
		w.state.Loading = false
		state = w.state
	}()

	w.log.Info().Str("file", w.state.File).Msg("Uploading file for extraction")

	file, err := w.open(w.state.File)
	if err != nil {
		w.state.Err = "Upload failed: " + err.Error()
		w.log.Error().Err(err).Msg("Could not open selected file")
		return w.state
	}
	defer file.Close()

	result, err := w.extractor.Extract(ctx, filepath.Base(w.state.File), file)
	if err != nil {
		w.state.Err = "Upload failed: " + uploadFailureDetail(err)
		w.log.Error().Err(err).Msg("Extraction upload failed")
		return w.state
	}

	w.state.Result = result.RawResponse
	w.log.Info().Str("file", w.state.File).Msg("Extraction upload succeeded")
	return w.state
}

// uploadFailureDetail resolves an upload error to its message part: the
// server's detail or message field when present, the HTTP status text for a
// bare rejection, else the transport error's description.
func uploadFailureDetail(err error) string {
	var statusErr *remote.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message()
	}
	return err.Error()
}
