// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the five-view TUI workflow using server-side rendering
// with HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. Home Feed: Server-rendered grid of trending releases with hx-get for track preview
//  2. Track Preview: HTMX partial swap showing tracks + download button
//  3. Download Confirm: Modal confirmation with quality picker and hx-post trigger
//  4. Progress Monitor: SSE (Server-Sent Events) streaming progress updates
//  5. Results Display: Final status with downloaded/failed tracks breakdown
//
// Core Components
//
//   - HTTP Server: net/http server with html/template rendering
//   - Service Integration: Uses same services.Catalog and tasks.MediaEngine as TUI
//   - Session Management: Cookie-based sessions for sign-in state and user tracking
//   - SSE Handler: Streams real-time progress during downloads
//
// Routes
//
//	GET  /                          → Home feed view
//	GET  /auth/{provider}           → Sign-in initiation (google, github)
//	GET  /auth/{provider}/callback  → Sign-in completion
//	GET  /albums/{id}/tracks        → HTMX partial: track list
//	POST /download                  → Start download, return SSE endpoint
//	GET  /download/{id}/stream      → SSE progress stream
//	GET  /download/{id}/result      → Final result view
//
// Templates
//
//   - base.html: Layout with navigation, sign-in status
//   - home.html: Card grid with hx-get on entries
//   - tracks.html: Partial template for track preview
//   - progress.html: SSE consumer with progress bar
//   - results.html: Success/failure breakdown
//
// # State Management
//
// Unlike the TUI's in-memory state, the web app persists state in:
//   - Session cookies: Sign-in tokens, user ID
//   - Download records: Library rows persisting completed downloads
//   - In-memory channels: SSE connections for active downloads
//
// # Progress Streaming
//
// Download progress uses Server-Sent Events:
//  1. POST /download starts a MediaEngine run, returns run ID
//  2. Client opens SSE connection to /download/{id}/stream
//  3. Handler launches goroutine running MediaEngine.DownloadAlbum
//  4. Progress channel updates stream as SSE events
//  5. On completion, send "done" event with redirect URL
//
// Authentication Flow
//
//  1. User clicks sign-in, chooses google or github
//  2. OAuth dance stores the session on completion
//  3. Session middleware attaches the profile on subsequent requests
//  4. Expired tokens trigger a fresh sign-in
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - net/http: HTTP server and SSE
//   - gorilla/sessions or similar: Cookie management
//
// Implementation Tasks
//
//  1. HTTP server setup reusing server.BasicRouter
//  2. Template structure with HTMX integration
//  3. Session middleware for sign-in state
//  4. Home feed handler backed by cache.HomeStore
//  5. Track preview handler (HTMX partial)
//  6. Download endpoint starting a MediaEngine run
//  7. SSE handler streaming progress updates
//  8. Result handler displaying the run outcome
//  9. Sign-in handlers wrapping the existing auth package
//  10. Error handling and validation
//
// # Testing Strategy
//
// Use httptest:
//   - Mock services.Catalog for home/track data
//   - Mock tasks.Engine for downloads
//   - Validate HTMX headers and response structure
//   - Test SSE stream formatting
package web
