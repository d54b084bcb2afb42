// Package assets embeds static files shipped with the binary.
package assets

import "embed"

//go:embed templates
var FS embed.FS
