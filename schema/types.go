package schema

import "strings"

// UploadedFile is a document selected for ingestion. Its identity is its
// position in the pending list.
type UploadedFile struct {
	Name string
	Size int64
	Data []byte
}

func NewUploadedFile(name string, data []byte) UploadedFile {
	return UploadedFile{Name: name, Size: int64(len(data)), Data: data}
}

// SourceSnippet is an excerpt backing a generated report.
type SourceSnippet struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// ChartReference points at a chart asset hosted by the report service.
// The zero value means no chart.
type ChartReference string

func (c ChartReference) IsZero() bool {
	return strings.TrimSpace(string(c)) == ""
}

type QueryResult struct {
	Report  string
	Sources []SourceSnippet
	Chart   ChartReference
}

type ExportFormat string

const (
	FormatHTML ExportFormat = "html"
	FormatPDF  ExportFormat = "pdf"
)

// FileName is the name an exported artifact is saved under.
func (f ExportFormat) FileName() string {
	return "report." + string(f)
}

// Valid reports whether the format can be used as a single path segment.
func (f ExportFormat) Valid() bool {
	s := string(f)
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\?#`) && strings.TrimSpace(s) == s
}

// BinaryArtifact is a rendered report as returned by the report service.
type BinaryArtifact struct {
	Name        string
	Format      ExportFormat
	ContentType string
	Data        []byte
}
