// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing and downloading:
//  1. [HomeListView] : Browse trending releases and new albums
//  2. [TrackListView] : Preview an item's tracks before downloading
//  3. [ConfirmView] : Confirm the download and quality tier
//  4. [DownloadView] : Monitor real-time progress updates
//  5. [ResultView] : Display download counts and failed tracks
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the MediaEngine, providing non-blocking status reporting during downloads.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
