// Package schemas embeds the JSON Schemas describing truthweaver's input and output documents.
package schemas

import "embed"

// Schema file names.
const (
	AnalysisResult = "analysis_result.schema.json"
	Sessions       = "sessions.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
