// Package server provides the demo HTTP host for a monthpicker instance.
//
// This package is internal to monthpicker and handles all HTTP concerns:
//
//   - Demo page: Serves the embedded HTML/CSS/JS page at "/"
//   - REST API: JSON endpoints under "/api/" that drive one [monthpicker.Picker]
//   - Server-Sent Events: Selection updates at "/api/sse"
//
// The page plays the role of the host element: it renders the grid the API
// returns, posts clicks and typed text back, and asks the server where to
// place the popup.
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
