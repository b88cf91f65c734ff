// Package workflow holds the page-level state machines of the front end:
// resume upload, feedback and the login/signup forms. Each value is owned by
// one page of one session and is safe for concurrent requests.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	NoFileMessage       = "Please select a file to upload."
	UploadFailedMessage = "Failed to process the resume. Try again."
)

var (
	ErrNoFileSelected       = errors.New("no file selected")
	ErrSubmissionInProgress = errors.New("submission already in progress")
)

type Analyzer interface {
	Analyze(ctx context.Context, file *models.SelectedFile) (*models.AnalysisRecord, error)
}

type UploadState struct {
	SelectedFile *models.SelectedFile
	IsSubmitting bool
	Result       *models.AnalysisRecord
	ErrorMessage string
}

type UploadWorkflow struct {
	mu       sync.Mutex
	analyzer Analyzer
	state    UploadState
}

func NewUploadWorkflow(analyzer Analyzer) *UploadWorkflow {
	return &UploadWorkflow{analyzer: analyzer}
}

// SelectFile replaces the selected file and forgets the previous outcome.
func (w *UploadWorkflow) SelectFile(file *models.SelectedFile) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state.SelectedFile = file
	w.state.Result = nil
	w.state.ErrorMessage = ""
}

// Submit sends the selected file for analysis. At most one request per
// workflow is in flight; the outcome replaces Result or ErrorMessage, never
// both.
func (w *UploadWorkflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.state.IsSubmitting {
		w.mu.Unlock()
		return ErrSubmissionInProgress
	}

	file := w.state.SelectedFile
	if file == nil {
		w.state.ErrorMessage = NoFileMessage
		w.mu.Unlock()
		return ErrNoFileSelected
	}

	w.state.IsSubmitting = true
	w.state.ErrorMessage = ""
	w.mu.Unlock()

	var (
		record *models.AnalysisRecord
		err    error
	)
	defer func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		w.state.IsSubmitting = false
		if err != nil {
			w.state.Result = nil
			w.state.ErrorMessage = uploadErrorMessage(err)
			return
		}
		w.state.Result = record
		w.state.ErrorMessage = ""
	}()

	record, err = w.analyzer.Analyze(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	return nil
}

// State returns a snapshot of the workflow.
func (w *UploadWorkflow) State() UploadState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func uploadErrorMessage(err error) string {
	var backendErr *models.BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	return UploadFailedMessage
}
