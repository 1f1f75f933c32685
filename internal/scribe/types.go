package scribe

import (
	"fmt"

	"github.com/ragdeck/ragdeck/internal/confmap"
	"github.com/ragdeck/ragdeck/internal/logtail"
)

// Status sentinels used by every control-API response.
const (
	// StatusSuccess marks the happy path; anything else is handled as
	// an application error except StatusPartial on uploads.
	StatusSuccess = "success"
	// StatusPartial marks uploads where some files failed.
	StatusPartial = "partial_success"
)

// Envelope is the common wrapper around control-API responses.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// check converts a non-success envelope into an APIError.
func (e Envelope) check() error {
	if e.Status != StatusSuccess {
		return &APIError{Status: e.Status, Message: e.Message}
	}
	return nil
}

// APIError reports a well-formed response whose status field was not
// the success sentinel. Message carries the backend-supplied detail
// when present.
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend reported status %q", e.Status)
}

// ConfigResponse mirrors GET /api/config.
type ConfigResponse struct {
	Envelope
	Config confmap.Object `json:"config"`
}

// FileEntry is one ingested document row from GET /api/files. Size and
// Modified are display strings produced by the backend.
type FileEntry struct {
	Name           string `json:"name"`
	Size           string `json:"size"`
	Modified       string `json:"modified"`
	SplitterMethod string `json:"splitter_method"`
}

// SplitterLabel returns the operator-facing label for the entry's
// splitter method, mapping unrecognized values to "unknown".
func (f FileEntry) SplitterLabel() string {
	switch f.SplitterMethod {
	case "words", "sentences", "paragraphs":
		return f.SplitterMethod
	default:
		return "unknown"
	}
}

// FilesResponse mirrors GET /api/files.
type FilesResponse struct {
	Envelope
	Files []FileEntry `json:"files"`
}

// UploadFile is one local document staged for upload.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadError names one file that failed during a multi-file upload.
type UploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResult mirrors POST /api/files/upload, including the
// partial-success error list.
type UploadResult struct {
	Envelope
	Errors []UploadError `json:"errors,omitempty"`
}

// StatusResponse mirrors GET /api/app/status.
type StatusResponse struct {
	Running bool `json:"running"`
}

// LogsResponse mirrors GET /api/logs.
type LogsResponse struct {
	Envelope
	Logs []logtail.Record `json:"logs"`
}
