package tasks

import (
	"fmt"

	"github.com/desertthunder/snapup/internal/formatter"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Uploading Phase = iota
	Uploaded
	UploadFailed
	WriteReport
)

func (p Phase) String() string {
	switch p {
	case Uploading:
		return "uploading"
	case Uploaded:
		return "uploaded"
	case UploadFailed:
		return "upload_failed"
	case WriteReport:
		return "write_report"
	default:
		return ""
	}
}

func uploadingUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Uploading,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Uploading %s...", step, total, path),
	}
}

func uploadedUpdate(step, total int, rec formatter.UploadRecord) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Uploaded,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s → %s (%s)", step, total, rec.Path, rec.Response.Result.StoredFilename, rec.HumanSize()),
		Data:    rec,
	}
}

func uploadFailedUpdate(step, total int, path, reason string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, path, reason),
	}
}

func reportUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteReport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Writing report to %s...", path),
	}
}
