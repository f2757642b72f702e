// Package tasks orchestrates multi-file uploads with real-time progress reporting.
//
// # Batch Uploads
//
// [UploadEngine.Run] takes a list of local paths and, for each one in order:
//   - waits on a rate limiter so the backend sees a steady pace
//   - submits the file through a fresh [forms.UploadForm]
//   - records the stored filename, size, and image URL, or the form's error message
//
// A failed file never aborts the batch. Cancelling the context does, returning what was gathered.
// When a report path is set the records are written with the formatter package.
//
// # Progress Reporting
//
// Progress updates are sent on an optional channel with select/default so reporting never blocks an upload.
// The [ProgressUpdate] struct contains phase, step counters, a display message, and optional data.
package tasks
