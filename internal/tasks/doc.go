// Package tasks orchestrates catalog download and export operations with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines three operations:
//
//  1. [Engine.DownloadSong] : Single track download
//     - Fetches song details from the catalog
//     - Downloads the audio file at the requested quality
//     - Records the download in the local library
//
//  2. [Engine.DownloadAlbum] : Concurrent album download
//     - Fetches the album's track listing
//     - Downloads tracks through a rate-limited worker pool
//     - Handles partial failures and writes a manifest summarizing the run
//
//  3. [Engine.ExportAlbum] : Track listing export
//     - Writes the album listing as CSV, Markdown, plain text, or JSON
//     - Markdown exports include the album cover when available
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Library Recording
//
// The optional [DownloadRecorder] interface enables automatic persistence of completed downloads
//
// Downloads are recorded silently (errors ignored) to avoid disrupting the run.
//
// # Implementation
//
// [MediaEngine] implements [Engine] with dependencies on:
//   - [services.Catalog] : catalog API client
//   - [download.Resolver] : audio file downloader
//   - [DownloadRecorder] : Optional persistence layer (library.DownloadRepository)
package tasks
