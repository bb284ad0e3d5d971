package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SaiNageswarS/report-boot/schema"
	"github.com/SaiNageswarS/report-boot/workflow"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	processErr error
	queryErr   error
	result     *schema.QueryResult
	processed  []schema.UploadedFile
	urlText    string
}

func (s *stubService) Process(ctx context.Context, files []schema.UploadedFile, urlText string) error {
	s.processed = files
	s.urlText = urlText
	return s.processErr
}

func (s *stubService) Query(ctx context.Context, query string) (*schema.QueryResult, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.result, nil
}

func (s *stubService) RenderReport(ctx context.Context, format schema.ExportFormat, report string, chart schema.ChartReference) (*schema.BinaryArtifact, error) {
	return &schema.BinaryArtifact{Name: format.FileName(), Format: format, Data: []byte(report)}, nil
}

type stubSaver struct{}

func (stubSaver) Save(ctx context.Context, artifact *schema.BinaryArtifact) (string, error) {
	return "/exports/" + artifact.Name, nil
}

type stubCharts struct{}

func (stubCharts) ChartURL(chart schema.ChartReference) string {
	if chart.IsZero() {
		return ""
	}
	return "http://svc" + string(chart)
}

func newHandler(svc *stubService) *WorkflowHandler {
	return ProvideWorkflowHandler(workflow.NewSession(svc, stubSaver{}), stubCharts{})
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHandleProcessUploadsFilesAndURLs(t *testing.T) {
	svc := &stubService{}
	h := newHandler(svc)
	path := writeFile(t, "notes.txt", "hello")

	result, err := h.HandleProcess(context.Background(), call(map[string]any{
		"files": []any{path},
		"urls":  "https://example.com/a",
	}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "Documents processed.")
	assert.Contains(t, textOf(t, result), "Ingestion: idle")
	require.Len(t, svc.processed, 1)
	assert.Equal(t, "notes.txt", svc.processed[0].Name)
	assert.Equal(t, "https://example.com/a", svc.urlText)
}

func TestHandleProcessWithNothingToIngest(t *testing.T) {
	h := newHandler(&stubService{})

	result, err := h.HandleProcess(context.Background(), call(map[string]any{}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, workflow.MsgNothingToIngest, textOf(t, result))
}

func TestHandleProcessReportsServiceMessage(t *testing.T) {
	svc := &stubService{processErr: &schema.RemoteError{Op: "process", StatusCode: 500, Message: "bad pdf"}}
	h := newHandler(svc)

	result, err := h.HandleProcess(context.Background(), call(map[string]any{"urls": "https://example.com"}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "bad pdf", textOf(t, result))
}

func TestHandleProcessRejectsUnsupportedFile(t *testing.T) {
	h := newHandler(&stubService{})
	path := writeFile(t, "image.png", "png")

	result, err := h.HandleProcess(context.Background(), call(map[string]any{"files": []any{path}}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "unsupported file type")
}

func TestHandleRemoveFile(t *testing.T) {
	h := newHandler(&stubService{})
	h.session.State.AddFiles(schema.NewUploadedFile("a.txt", []byte("a")), schema.NewUploadedFile("b.txt", []byte("b")))

	result, err := h.HandleRemoveFile(context.Background(), call(map[string]any{"index": float64(0)}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "[0] b.txt")

	result, err = h.HandleRemoveFile(context.Background(), call(map[string]any{"index": float64(5)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleQueryRendersReport(t *testing.T) {
	svc := &stubService{result: &schema.QueryResult{
		Report:  "# Findings",
		Sources: []schema.SourceSnippet{{Source: "doc1.pdf", Text: "revenue grew"}},
		Chart:   "/static/chart1.png",
	}}
	h := newHandler(svc)

	result, err := h.HandleQuery(context.Background(), call(map[string]any{"query": "How did revenue change?"}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	text := textOf(t, result)
	assert.Contains(t, text, "![Analysis Graph](http://svc/static/chart1.png)")
	assert.Contains(t, text, "# Findings")
	assert.Contains(t, text, "_1 sources hidden_")

	result, err = h.HandleToggleSources(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Contains(t, textOf(t, result), "1. Source: doc1.pdf")
}

func TestHandleQueryBlankQuestion(t *testing.T) {
	h := newHandler(&stubService{})

	result, err := h.HandleQuery(context.Background(), call(map[string]any{"query": "   "}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, workflow.MsgEmptyQuery, textOf(t, result))
}

func TestHandleQueryServiceError(t *testing.T) {
	svc := &stubService{queryErr: &schema.RemoteError{Op: "query", StatusCode: 200, Message: "Index not built"}}
	h := newHandler(svc)

	result, err := h.HandleQuery(context.Background(), call(map[string]any{"query": "anything"}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Index not built", textOf(t, result))
}

func TestHandleToggleSourcesWithoutReport(t *testing.T) {
	h := newHandler(&stubService{})

	result, err := h.HandleToggleSources(context.Background(), call(nil))

	require.NoError(t, err)
	assert.Contains(t, textOf(t, result), "No report yet.")
	assert.True(t, h.session.State.Snapshot().ShowSources)
}

func TestHandleExport(t *testing.T) {
	svc := &stubService{result: &schema.QueryResult{Report: "# Findings", Sources: []schema.SourceSnippet{}}}
	h := newHandler(svc)

	result, err := h.HandleExport(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "Nothing to export: generate a report first.", textOf(t, result))

	_, err = h.HandleQuery(context.Background(), call(map[string]any{"query": "q"}))
	require.NoError(t, err)

	result, err = h.HandleExport(context.Background(), call(map[string]any{"format": "pdf"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Saved report.pdf to /exports/report.pdf", textOf(t, result))

	result, err = h.HandleExport(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "Saved report.html to /exports/report.html", textOf(t, result))
}

func TestHandleStatus(t *testing.T) {
	h := newHandler(&stubService{})
	h.session.State.SetURLText("https://a\nhttps://b")

	result, err := h.HandleStatus(context.Background(), call(nil))

	require.NoError(t, err)
	text := textOf(t, result)
	assert.Contains(t, text, "Ingestion: idle | Query: idle | Export: idle")
	assert.Contains(t, text, "Pending URLs: 2")
}
