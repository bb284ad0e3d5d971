// Command report-boot drives one ingest → query → export pass against the
// report service and prints the resulting state.
//
// Usage:
//
//	report-boot -files q1.pdf,sales.csv -urls-file urls.txt
//	report-boot -query "What are Q1 revenue trends?" -show-sources
//	report-boot -files q1.pdf -query "Summarise Q1" -export html -chart-out chart.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/report-boot/appconfig"
	"github.com/SaiNageswarS/report-boot/artifact"
	"github.com/SaiNageswarS/report-boot/remote"
	"github.com/SaiNageswarS/report-boot/schema"
	"github.com/SaiNageswarS/report-boot/view"
	"github.com/SaiNageswarS/report-boot/workflow"
	"go.uber.org/zap"
)

type cliOptions struct {
	files       string
	urls        string
	urlsFile    string
	query       string
	export      string
	showSources bool
	chartOut    string
}

func main() {
	dotenv.LoadEnv()

	configPath := flag.String("config", "config.ini", "path to config.ini")
	opts := cliOptions{}
	flag.StringVar(&opts.files, "files", "", "comma separated documents to ingest (txt, pdf, docx, json, xlsx, csv)")
	flag.StringVar(&opts.urls, "urls", "", "URLs to ingest, newline separated")
	flag.StringVar(&opts.urlsFile, "urls-file", "", "file with one URL per line to ingest")
	flag.StringVar(&opts.query, "query", "", "question to generate a report for")
	flag.StringVar(&opts.export, "export", "", "export the report in this format (html, pdf)")
	flag.BoolVar(&opts.showSources, "show-sources", false, "print the source snippets with the report")
	flag.StringVar(&opts.chartOut, "chart-out", "", "download the report chart to this path")
	flag.Parse()

	cfg, err := appconfig.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := remote.NewClient(cfg.ServiceURL, remote.WithTimeout(cfg.RequestTimeout()))
	sinks, err := artifact.LoadFromConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to set up export sinks", zap.Error(err))
	}

	session := workflow.NewSession(client, sinks, workflow.WithObserver(&workflow.LoggingObserver{}))
	if err := run(ctx, opts, session, client, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run performs the steps requested by opts in workflow order and writes
// the rendered state to out. It stops at the first failed step.
func run(ctx context.Context, opts cliOptions, session *workflow.Session, client *remote.Client, out io.Writer) error {
	urlText, err := collectURLs(opts)
	if err != nil {
		return err
	}

	paths, err := appconfig.SplitList(ctx, opts.files)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		if err := session.Ingestion.SelectFiles(ctx, workflow.DiskFiles{Paths: paths}); err != nil {
			return err
		}
	}
	session.State.SetURLText(urlText)

	if len(paths) > 0 || urlText != "" {
		if _, err := async.Await(session.Ingestion.SubmitPending(ctx)); err != nil {
			return stepError(session, err)
		}
		fmt.Fprintf(out, "Processed %d file(s) and %d URL line(s)\n", len(paths), countLines(urlText))
	}

	if opts.query != "" {
		session.State.SetQuery(opts.query)
		if _, err := async.Await(session.Query.SubmitCurrent(ctx)); err != nil {
			return stepError(session, err)
		}
		if opts.showSources {
			session.State.ToggleSources()
		}

		snapshot := session.State.Snapshot()
		rendered, err := view.RenderReport(snapshot, client.ChartURL(snapshot.Chart))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)

		if opts.chartOut != "" && !snapshot.Chart.IsZero() {
			data, err := client.FetchChart(ctx, snapshot.Chart)
			if err != nil {
				return err
			}
			if err := os.WriteFile(opts.chartOut, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(out, "Chart saved to %s\n", opts.chartOut)
		}
	}

	if opts.export != "" {
		result, err := async.Await(session.Export.ExportCurrent(ctx, schema.ExportFormat(opts.export)))
		if err != nil {
			return stepError(session, err)
		}
		if result == nil {
			fmt.Fprintln(out, "Nothing to export: no report has been generated")
		} else {
			fmt.Fprintf(out, "Exported %s to %s\n", result.Artifact.Name, result.Location)
		}
	}

	status, err := view.RenderStatus(session.State.Snapshot())
	if err != nil {
		return err
	}
	fmt.Fprint(out, status)
	return nil
}

func collectURLs(opts cliOptions) (string, error) {
	parts := []string{}
	if strings.TrimSpace(opts.urls) != "" {
		parts = append(parts, opts.urls)
	}
	if opts.urlsFile != "" {
		data, err := os.ReadFile(opts.urlsFile)
		if err != nil {
			return "", fmt.Errorf("error reading urls file: %w", err)
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n"), nil
}

// stepError prefers the message shown to the user over the raw error.
func stepError(session *workflow.Session, err error) error {
	if errors.Is(err, workflow.ErrOperationInProgress) {
		return err
	}
	if msg := session.State.Snapshot().ErrorMessage; msg != "" {
		return errors.New(msg)
	}
	return err
}

func countLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
