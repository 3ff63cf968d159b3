package validation

import (
	"mime"
	"path/filepath"
	"strings"
)

const (
	MsgDatasetNameRequired = "Please enter a dataset name"
	MsgCSVRequired         = "Please upload a CSV file"
	MsgDatasetRequired     = "Please select a dataset first"
	MsgQueryRequired       = "Please enter a question"
)

// IsCSVFile accepts a file whose name ends in .csv or whose content type is text/csv.
// Content types may carry parameters ("text/csv; charset=utf-8").
func IsCSVFile(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(strings.TrimSpace(filename)), ".csv") {
		return true
	}
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	}
	return strings.EqualFold(mediaType, "text/csv")
}

// DatasetName returns the trimmed name and whether it is usable.
func DatasetName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	return trimmed, trimmed != ""
}

// QueryText returns the trimmed question and whether it is usable.
func QueryText(query string) (string, bool) {
	trimmed := strings.TrimSpace(query)
	return trimmed, trimmed != ""
}

// SafeFilename strips directory components so a client-supplied name cannot escape a
// target directory.
func SafeFilename(name string) (string, bool) {
	base := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(name, "\\", "/")))
	if base == "/" || base == "." || base == ".." || base != name {
		return "", false
	}
	return base, true
}
