// Package frontend embeds the HTML templates and static assets served by the web server.
package frontend

import "embed"

// Assets holds templates/ and static/.
//
//go:embed templates static
var Assets embed.FS
