// Package appfs embeds the static assets shipped with the binaries:
// the mock fixtures seeding the in-memory stores and the email templates.
package appfs

import "embed"

//go:embed fixtures templates/email/*
var FS embed.FS
