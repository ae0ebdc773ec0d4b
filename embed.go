package agrisite

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// placeholder.svg, shown when an entity has no cover image.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
