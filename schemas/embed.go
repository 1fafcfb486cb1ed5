// Package schemas embeds the JSON Schemas of the documents the studio
// persists and accepts.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	TemplateConfig = "template_config.schema.json"
	ResumeData     = "resume_data.schema.json"
)
