package csvtojs

import _ "embed"

// Version is the release version of csvtojs.
//
//go:embed VERSION
var Version string
