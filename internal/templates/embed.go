// Package templates holds the server-rendered pages.
package templates

import "embed"

//go:embed *.html
var Files embed.FS
