package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/report-boot/schema"
	"github.com/SaiNageswarS/report-boot/view"
	"github.com/SaiNageswarS/report-boot/workflow"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// ChartResolver turns a chart reference into a fetchable URL.
type ChartResolver interface {
	ChartURL(chart schema.ChartReference) string
}

// WorkflowHandler exposes one workflow session as MCP tools.
type WorkflowHandler struct {
	session *workflow.Session
	charts  ChartResolver
}

func ProvideWorkflowHandler(session *workflow.Session, charts ChartResolver) *WorkflowHandler {
	return &WorkflowHandler{session: session, charts: charts}
}

func (h *WorkflowHandler) HandleProcess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := req.GetStringSlice("files", nil)
	urls := req.GetString("urls", "")

	if len(paths) > 0 {
		if err := h.session.Ingestion.SelectFiles(ctx, workflow.DiskFiles{Paths: paths}); err != nil {
			logger.Error("Failed to read files for ingestion", zap.Strings("files", paths), zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	h.session.State.SetURLText(urls)

	if _, err := async.Await(h.session.Ingestion.SubmitPending(ctx)); err != nil {
		return h.toolError("Document processing", err), nil
	}

	return h.statusResult("Documents processed.")
}

func (h *WorkflowHandler) HandleRemoveFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index := req.GetInt("index", -1)
	if !h.session.State.RemoveFile(index) {
		return mcp.NewToolResultError(fmt.Sprintf("No pending file at index %d", index)), nil
	}
	return h.statusResult(fmt.Sprintf("Removed pending file %d.", index))
}

func (h *WorkflowHandler) HandleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.session.State.SetQuery(req.GetString("query", ""))

	if _, err := async.Await(h.session.Query.SubmitCurrent(ctx)); err != nil {
		return h.toolError("Report generation", err), nil
	}

	return h.reportResult()
}

func (h *WorkflowHandler) HandleToggleSources(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.session.State.ToggleSources()
	if h.session.State.Snapshot().Report == "" {
		return h.statusResult("No report yet.")
	}
	return h.reportResult()
}

func (h *WorkflowHandler) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := schema.ExportFormat(req.GetString("format", string(schema.FormatHTML)))

	result, err := async.Await(h.session.Export.ExportCurrent(ctx, format))
	if err != nil {
		return h.toolError("Export", err), nil
	}
	if result == nil {
		return mcp.NewToolResultText("Nothing to export: generate a report first."), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Saved %s to %s", result.Artifact.Name, result.Location)), nil
}

func (h *WorkflowHandler) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.statusResult("")
}

func (h *WorkflowHandler) reportResult() (*mcp.CallToolResult, error) {
	snapshot := h.session.State.Snapshot()
	text, err := view.RenderReport(snapshot, h.charts.ChartURL(snapshot.Chart))
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func (h *WorkflowHandler) statusResult(headline string) (*mcp.CallToolResult, error) {
	status, err := view.RenderStatus(h.session.State.Snapshot())
	if err != nil {
		return nil, err
	}
	if headline != "" {
		status = headline + "\n" + status
	}
	return mcp.NewToolResultText(status), nil
}

// toolError reports the message the workflow put in front of the user.
func (h *WorkflowHandler) toolError(step string, err error) *mcp.CallToolResult {
	if errors.Is(err, workflow.ErrOperationInProgress) {
		return mcp.NewToolResultError(step + " is already in progress")
	}
	if msg := h.session.State.Snapshot().ErrorMessage; msg != "" {
		return mcp.NewToolResultError(msg)
	}
	return mcp.NewToolResultError(err.Error())
}
