// Package web holds the embedded HTML template surface.
package web

import "embed"

//go:embed templates
var Templates embed.FS
