package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/SaiNageswarS/report-boot/artifact"
	"github.com/SaiNageswarS/report-boot/remote"
	"github.com/SaiNageswarS/report-boot/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	processed   int
	queryError  string
	lastExport  map[string]any
	lastFormat  string
	uploadNames []string
}

func (f *fakeService) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/process", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.processed++
		for _, fh := range r.MultipartForm.File["files"] {
			f.uploadNames = append(f.uploadNames, fh.Filename)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	r.Post("/query", func(w http.ResponseWriter, r *http.Request) {
		if f.queryError != "" {
			json.NewEncoder(w).Encode(map[string]string{"error": f.queryError})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"report":    "# Q1 Report\nRevenue grew 12%.",
			"sources":   []map[string]string{{"source": "q1.pdf", "text": "Revenue: $1.2M"}},
			"plot_path": "/static/chart1.png",
		})
	})
	r.Post("/report/{format}", func(w http.ResponseWriter, r *http.Request) {
		f.lastFormat = chi.URLParam(r, "format")
		json.NewDecoder(r.Body).Decode(&f.lastExport)
		w.Write([]byte("<html>exported</html>"))
	})
	r.Get("/static/chart1.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png"))
	})
	return r
}

func newCLISession(t *testing.T, svc *fakeService, exportDir string) (*workflow.Session, *remote.Client) {
	t.Helper()
	server := httptest.NewServer(svc.router())
	t.Cleanup(server.Close)

	client := remote.NewClient(server.URL)
	return workflow.NewSession(client, artifact.NewFanout(artifact.NewLocalSink(exportDir))), client
}

func TestRunFullPass(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "q1.pdf")
	urlsFile := filepath.Join(dir, "urls.txt")
	chartOut := filepath.Join(dir, "chart.png")
	exportDir := filepath.Join(dir, "exports")
	require.NoError(t, os.WriteFile(doc, []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.WriteFile(urlsFile, []byte("https://example.com/q1\n"), 0o644))

	svc := &fakeService{}
	session, client := newCLISession(t, svc, exportDir)
	var out bytes.Buffer

	err := run(context.Background(), cliOptions{
		files:       doc,
		urlsFile:    urlsFile,
		query:       "What are Q1 revenue trends?",
		export:      "html",
		showSources: true,
		chartOut:    chartOut,
	}, session, client, &out)

	require.NoError(t, err)
	assert.Equal(t, 1, svc.processed)
	assert.Equal(t, []string{"q1.pdf"}, svc.uploadNames)

	text := out.String()
	assert.Contains(t, text, "Processed 1 file(s) and 1 URL line(s)")
	assert.Contains(t, text, "# Q1 Report")
	assert.Contains(t, text, "Source: q1.pdf")
	assert.Contains(t, text, "/static/chart1.png")
	assert.Contains(t, text, "Exported report.html")
	assert.Contains(t, text, "Ingestion: idle | Query: idle | Export: idle")

	assert.Equal(t, "html", svc.lastFormat)
	assert.Equal(t, "# Q1 Report\nRevenue grew 12%.", svc.lastExport["report"])
	assert.Equal(t, "/static/chart1.png", svc.lastExport["plotPath"])

	exported, err := os.ReadFile(filepath.Join(exportDir, "report.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>exported</html>", string(exported))

	chart, err := os.ReadFile(chartOut)
	require.NoError(t, err)
	assert.Equal(t, "png", string(chart))
}

func TestRunReportsServiceMessage(t *testing.T) {
	svc := &fakeService{queryError: "corpus not ready"}
	session, client := newCLISession(t, svc, t.TempDir())
	var out bytes.Buffer

	err := run(context.Background(), cliOptions{query: "anything", export: "html"}, session, client, &out)

	require.EqualError(t, err, "corpus not ready")
	assert.Zero(t, svc.processed)
	assert.Empty(t, svc.lastFormat)
	assert.Empty(t, session.State.Snapshot().Report)
}

func TestRunExportWithoutReport(t *testing.T) {
	svc := &fakeService{}
	session, client := newCLISession(t, svc, t.TempDir())
	var out bytes.Buffer

	err := run(context.Background(), cliOptions{export: "html"}, session, client, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Nothing to export")
	assert.Empty(t, svc.lastFormat)
}

func TestRunRejectsUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "tool.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ"), 0o644))

	svc := &fakeService{}
	session, client := newCLISession(t, svc, dir)

	err := run(context.Background(), cliOptions{files: exe}, session, client, &bytes.Buffer{})

	assert.ErrorContains(t, err, "unsupported file type")
	assert.Zero(t, svc.processed)
}
