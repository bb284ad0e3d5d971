package main

import (
	"context"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/report-boot/appconfig"
	"github.com/SaiNageswarS/report-boot/artifact"
	"github.com/SaiNageswarS/report-boot/mcp-agent/handlers"
	"github.com/SaiNageswarS/report-boot/remote"
	"github.com/SaiNageswarS/report-boot/workflow"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	configPath := os.Getenv("REPORT_BOOT_CONFIG")
	if configPath == "" {
		configPath = "config.ini"
	}

	cfg, err := appconfig.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	client := remote.NewClient(cfg.ServiceURL, remote.WithTimeout(cfg.RequestTimeout()))
	sinks, err := artifact.LoadFromConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to set up export sinks", zap.Error(err))
	}

	session := workflow.NewSession(client, sinks, workflow.WithObserver(&workflow.LoggingObserver{}))
	handler := handlers.ProvideWorkflowHandler(session, client)

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	s := server.NewMCPServer(
		"report-boot-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	processTool := mcp.NewTool(
		"process_documents",
		mcp.WithDescription("Uploads local documents and/or URLs to the report service for indexing. Files stay pending and are resubmitted on later calls until removed with remove_file."),
		mcp.WithArray("files",
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("Local paths of documents to upload (txt, pdf, docx, json, xlsx, csv)"),
		),
		mcp.WithString("urls",
			mcp.Description("URLs to ingest, one per line"),
		),
	)

	removeFileTool := mcp.NewTool(
		"remove_file",
		mcp.WithDescription("Removes a pending file by its index as shown by workflow_status."),
		mcp.WithNumber("index",
			mcp.Description("Zero-based index of the pending file"),
			mcp.Required(),
		),
	)

	queryTool := mcp.NewTool(
		"generate_report",
		mcp.WithDescription("Generates a markdown report answering the question from the ingested documents. Returns the report, an optional chart link and the supporting sources when visible."),
		mcp.WithString("query",
			mcp.Description("Natural-language question"),
			mcp.Required(),
		),
	)

	toggleSourcesTool := mcp.NewTool(
		"toggle_sources",
		mcp.WithDescription("Shows or hides the source snippets of the current report."),
	)

	exportTool := mcp.NewTool(
		"export_report",
		mcp.WithDescription("Renders the current report through the report service and saves it as report.<format>."),
		mcp.WithString("format",
			mcp.Description("Export format, e.g. html or pdf"),
			mcp.DefaultString("html"),
		),
	)

	statusTool := mcp.NewTool(
		"workflow_status",
		mcp.WithDescription("Shows the state of ingestion, report generation and export, the last error and the pending inputs."),
	)

	s.AddTool(processTool, handler.HandleProcess)
	s.AddTool(removeFileTool, handler.HandleRemoveFile)
	s.AddTool(queryTool, handler.HandleQuery)
	s.AddTool(toggleSourcesTool, handler.HandleToggleSources)
	s.AddTool(exportTool, handler.HandleExport)
	s.AddTool(statusTool, handler.HandleStatus)

	if err := server.ServeStdio(s); err != nil {
		logger.Fatal("Failed to serve MCP", zap.Error(err))
	}
}
