package workflow

import (
	"strings"

	"github.com/SaiNageswarS/report-boot/schema"
)

const (
	MsgNothingToIngest = "Please upload files or enter URLs"
	MsgEmptyQuery      = "Please enter a question"
)

// CanIngest reports whether there is anything to submit for ingestion.
func CanIngest(files []schema.UploadedFile, urlText string) bool {
	return len(files) > 0 || strings.TrimSpace(urlText) != ""
}

// CanQuery reports whether the query has any non-blank content.
func CanQuery(query string) bool {
	return strings.TrimSpace(query) != ""
}
