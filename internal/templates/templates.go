package templates

import "embed"

//go:embed scripts
var Scripts embed.FS

const (
	PrepareScriptTemplatePath  = "scripts/deploy/prepare.hbs"
	ExtractScriptTemplatePath  = "scripts/deploy/extract.hbs"
	RelocateScriptTemplatePath = "scripts/deploy/relocate.hbs"
)
