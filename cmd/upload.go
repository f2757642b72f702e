package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/snapup/internal/formatter"
	"github.com/desertthunder/snapup/internal/shared"
	"github.com/desertthunder/snapup/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Upload sends each file argument through its own upload form.
//
// Progress goes to the logger so --json output on stdout stays parseable.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: %s", shared.ErrMissingArgument, shared.ErrNoFileSelected)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	rateLimit := cmd.Float("rate")
	if rateLimit <= 0 {
		rateLimit = r.config.Upload.RatePerSecond
	}

	progress := make(chan tasks.ProgressUpdate, len(paths)*2+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if update.Phase == tasks.UploadFailed {
				r.logger.Warn(update.Message)
			} else {
				r.logger.Info(update.Message)
			}
		}
	}()

	result, err := r.engine.Run(ctx, progress, paths, tasks.BatchOpts{
		RateLimit:  rateLimit,
		ReportPath: cmd.String("report"),
		Format:     format,
	})
	close(progress)
	<-done

	if result == nil {
		return err
	}

	if cmd.Bool("json") {
		if werr := r.writeJSON(result.Records, false); werr != nil {
			return werr
		}
	} else {
		text, xerr := formatter.ExportToText(result.Records)
		if xerr != nil {
			return xerr
		}
		r.output.Write(text)
		if result.ReportPath != "" {
			r.writePlain("Report written to %s\n", result.ReportPath)
		}
	}

	if err != nil {
		return err
	}

	r.afterUpload(result.Records, cmd.Bool("open"), cmd.Bool("copy"))

	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d uploads failed", shared.ErrAPIRequest, result.Failed, len(result.Records))
	}
	return nil
}

// afterUpload opens and copies the URLs of successful uploads.
// Failures here are logged and never fail the command.
func (r *Runner) afterUpload(records []formatter.UploadRecord, open, copyURL bool) {
	var last string
	for _, rec := range records {
		if !rec.OK() {
			continue
		}
		last = rec.URL
		if open {
			if err := r.openURL(rec.URL); err != nil {
				r.logger.Warn("failed to open browser", "url", rec.URL, "error", err)
			}
		}
	}

	if copyURL && last != "" {
		if err := r.copyText(last); err != nil {
			r.logger.Warn("failed to copy URL to clipboard", "error", err)
		} else {
			r.logger.Info("copied URL to clipboard", "url", last)
		}
	}
}

// Images lists the images the backend has recorded.
func (r *Runner) Images(ctx context.Context, cmd *cli.Command) error {
	resp, err := r.api.Get(ctx, "/post/images")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp.JSONData, false)
	}

	items, _ := resp.JSONData.([]any)
	r.writePlainHeader(fmt.Sprintf("Images (%d)", len(items)))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		stored, _ := entry["stored_filename"].(string)
		original, _ := entry["original_filename"].(string)
		r.writePlain("%s  (%s)\n  %s\n", stored, original, r.api.ImageURL(stored))
	}
	return nil
}

// Fetch downloads a stored image to disk.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	stored := cmd.StringArg("stored")
	if stored == "" {
		return fmt.Errorf("%w: stored filename is required", shared.ErrMissingArgument)
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = filepath.Base(stored)
	}

	url := r.api.ImageURL(stored)
	r.logger.Info("downloading image", "url", url)

	data, err := formatter.DownloadImage(ctx, r.httpClient, url)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	r.writePlain("✓ Saved %s (%d bytes)\n", outputPath, len(data))
	return nil
}
