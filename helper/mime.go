package helper

import (
	"mime"
	"path/filepath"
	"strings"
)

// Types of the artifacts the server writes, independent of the mime tables of the host.
var knownMimeTypes = map[string]string{
	".csv":  "text/csv;charset=utf-8",
	".json": "application/json",
}

// GetMimeType returns the MIME type for a file based on its extension
func GetMimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mimeType, ok := knownMimeTypes[ext]; ok {
		return mimeType
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}
