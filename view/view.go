package view

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/SaiNageswarS/report-boot/schema"
	"github.com/SaiNageswarS/report-boot/workflow"
)

//go:embed templates/*
var templatesFS embed.FS

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"size": func(n int64) string {
		switch {
		case n >= 1<<20:
			return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
		case n >= 1<<10:
			return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
		default:
			return fmt.Sprintf("%d B", n)
		}
	},
	"lines": func(text string) int {
		count := 0
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) != "" {
				count++
			}
		}
		return count
	},
}

// RenderStatus renders the operation families, error message and pending
// inputs of a snapshot.
func RenderStatus(snapshot workflow.Snapshot) (string, error) {
	return render("templates/status.md", snapshot)
}

// RenderReport renders the report with its chart link and, when visible,
// its sources. It returns "" when there is no report.
func RenderReport(snapshot workflow.Snapshot, chartURL string) (string, error) {
	if snapshot.Report == "" {
		return "", nil
	}

	data := struct {
		Report      string
		ChartURL    string
		Sources     []schema.SourceSnippet
		ShowSources bool
	}{
		Report:      snapshot.Report,
		ChartURL:    chartURL,
		Sources:     snapshot.Sources,
		ShowSources: snapshot.ShowSources,
	}
	return render("templates/report.md", data)
}

func render(name string, data any) (string, error) {
	content, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
