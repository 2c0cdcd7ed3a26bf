// Package gamedata holds the embedded start locations and color theme.
package gamedata

import "embed"

// dataFS carries locations.json and theme.json inside the binary.
//
//go:embed locations.json theme.json
var dataFS embed.FS
