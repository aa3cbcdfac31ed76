package assets

import "embed"

// AssetsFS holds the stylesheet. Regenerate css/output.css with
// "go run ./cmd/do gen" after changing classes in internal/ui.
//
//go:embed css
var AssetsFS embed.FS
