// package formatter renders upload outcomes to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/dustin/go-humanize"
)

// Format names an output format.
type Format string

const (
	Text     Format = "text"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// Formats lists every supported [Format].
var Formats = []Format{Text, CSV, Markdown, JSON}

// ParseFormat resolves a format name, accepting "md" and "txt" as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// UploadRecord is the outcome of uploading one local file.
type UploadRecord struct {
	Path     string                 `json:"path"`
	Response *models.UploadResponse `json:"response,omitempty"`
	URL      string                 `json:"url,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// OK reports whether the upload succeeded.
func (r UploadRecord) OK() bool { return r.Error == "" && r.Response != nil }

// HumanSize returns the stored file's size as e.g. "12 kB", or "" when the upload failed.
func (r UploadRecord) HumanSize() string {
	if r.Response == nil {
		return ""
	}
	return humanize.Bytes(uint64(r.Response.Result.FileSize))
}

// ExportToCSV converts upload records to CSV format with columns: Path, Stored Filename, Original Filename, Size, URL, Error
func ExportToCSV(records []UploadRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Path", "Stored Filename", "Original Filename", "Size", "URL", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range records {
		var stored, original, size string
		if rec.Response != nil {
			stored = rec.Response.Result.StoredFilename
			original = rec.Response.Result.OriginalFilename
			size = strconv.FormatInt(rec.Response.Result.FileSize, 10)
		}
		if err := writer.Write([]string{rec.Path, stored, original, size, rec.URL, rec.Error}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts upload records to a Markdown report that embeds each stored image
func ExportToMarkdown(records []UploadRecord) ([]byte, error) {
	var buf bytes.Buffer

	ok := 0
	for _, rec := range records {
		if rec.OK() {
			ok++
		}
	}

	buf.WriteString("# Uploads\n\n")
	buf.WriteString(fmt.Sprintf("**Uploaded**: %d of %d\n\n", ok, len(records)))

	for i, rec := range records {
		if !rec.OK() {
			buf.WriteString(fmt.Sprintf("%d. `%s` failed: %s\n", i+1, rec.Path, rec.Error))
			continue
		}
		res := rec.Response.Result
		buf.WriteString(fmt.Sprintf("%d. %s → `%s` [%s]\n", i+1, res.OriginalFilename, res.StoredFilename, rec.HumanSize()))
		if rec.URL != "" {
			buf.WriteString(fmt.Sprintf("\n   ![%s](%s)\n\n", res.OriginalFilename, rec.URL))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts upload records to plain text, one block per file
func ExportToText(records []UploadRecord) ([]byte, error) {
	var buf bytes.Buffer

	for i, rec := range records {
		if i > 0 {
			buf.WriteString("\n")
		}
		if !rec.OK() {
			buf.WriteString(fmt.Sprintf("%s: %s\n", rec.Path, rec.Error))
			continue
		}
		res := rec.Response.Result
		buf.WriteString(fmt.Sprintf("%s\n", rec.Response.Message))
		buf.WriteString(fmt.Sprintf("  stored as:     %s\n", res.StoredFilename))
		buf.WriteString(fmt.Sprintf("  original name: %s\n", res.OriginalFilename))
		buf.WriteString(fmt.Sprintf("  size:          %s\n", rec.HumanSize()))
		if rec.URL != "" {
			buf.WriteString(fmt.Sprintf("  url:           %s\n", rec.URL))
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts upload records to indented JSON
func ExportToJSON(records []UploadRecord) ([]byte, error) {
	if records == nil {
		records = []UploadRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders records in the given format.
func Export(records []UploadRecord, format Format) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(records)
	case Markdown:
		return ExportToMarkdown(records)
	case JSON:
		return ExportToJSON(records)
	case Text:
		return ExportToText(records)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// WriteReport renders records in format and writes them to path.
func WriteReport(records []UploadRecord, format Format, path string) error {
	data, err := Export(records, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// DownloadImage fetches a stored image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}
