// package tasks runs multi-file uploads against the backend.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/snapup/internal/formatter"
	"github.com/desertthunder/snapup/internal/forms"
	"github.com/desertthunder/snapup/internal/services"
	"github.com/desertthunder/snapup/internal/shared"
	"golang.org/x/time/rate"
)

// BatchOpts configures [UploadEngine.Run].
type BatchOpts struct {
	RateLimit  float64          // Uploads per second (default: 2)
	ReportPath string           // Optional file the records are written to
	Format     formatter.Format // Report format (default: text)
}

// BatchResult summarizes a batch upload.
type BatchResult struct {
	Records    []formatter.UploadRecord // One record per path, in input order
	Successful int
	Failed     int
	ReportPath string
}

// UploadEngine uploads local files one after another through an [forms.UploadForm] each.
type UploadEngine struct {
	backend services.Backend
}

// NewUploadEngine creates an UploadEngine that submits to backend.
func NewUploadEngine(backend services.Backend) *UploadEngine {
	return &UploadEngine{backend: backend}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *UploadEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run uploads each path in order, paced by a rate limiter.
//
// A file that fails is recorded and the batch continues; only context cancellation stops it early,
// in which case the records gathered so far are returned with the context's error.
func (e *UploadEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, paths []string, opts BatchOpts) (*BatchResult, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: backend not initialized", shared.ErrServiceUnavailable)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", shared.ErrMissingArgument)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}
	if opts.Format == "" {
		opts.Format = formatter.Text
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	result := &BatchResult{Records: make([]formatter.UploadRecord, 0, len(paths))}
	total := len(paths)

	for i, path := range paths {
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		e.sendProgress(progress, uploadingUpdate(i+1, total, path))

		rec := e.uploadOne(ctx, path)
		result.Records = append(result.Records, rec)

		if rec.OK() {
			result.Successful++
			e.sendProgress(progress, uploadedUpdate(i+1, total, rec))
		} else {
			result.Failed++
			e.sendProgress(progress, uploadFailedUpdate(i+1, total, path, rec.Error))
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}
	}

	if opts.ReportPath != "" {
		e.sendProgress(progress, reportUpdate(total, total, opts.ReportPath))
		if err := formatter.WriteReport(result.Records, opts.Format, opts.ReportPath); err != nil {
			return result, fmt.Errorf("uploads completed but failed to write report: %w", err)
		}
		result.ReportPath = opts.ReportPath
	}

	return result, nil
}

func (e *UploadEngine) uploadOne(ctx context.Context, path string) formatter.UploadRecord {
	rec := formatter.UploadRecord{Path: path}

	file, err := forms.FileFromPath(path)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	form := forms.NewUploadForm()
	form.Select(file)
	if err := form.Submit(ctx, e.backend); err != nil {
		rec.Error = form.Error()
		if rec.Error == "" {
			rec.Error = err.Error()
		}
		return rec
	}

	rec.Response = form.Result()
	rec.URL = e.backend.ImageURL(rec.Response.Result.StoredFilename)
	return rec
}
