// Package web holds the embedded static assets.
package web

import "embed"

//go:embed static
var Static embed.FS
