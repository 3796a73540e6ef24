// Package scaffold provides the embedded file tree the inkwell CLI copies
// when scaffolding a new site: a starter configuration, a theme override
// file, and seed content.
package scaffold

import "embed"

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS
