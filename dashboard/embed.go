// Package dashboard provides the embedded demo page for the monthpicker
// HTTP host.
//
// This package uses Go's embed directive to include the page HTML, CSS,
// and JavaScript at compile time. This enables single-binary deployment
// without external asset files.
//
// The embedded assets are served by the server package at the root path ("/").
// Users of the monthpicker library should not need to interact with this
// package directly.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the demo web UI.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Demo page with inline CSS and JavaScript
//
//go:embed assets/*
var Assets embed.FS
