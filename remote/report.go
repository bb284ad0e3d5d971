package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SaiNageswarS/report-boot/schema"
)

const opReport = "report"

type reportRequest struct {
	Report   string  `json:"report"`
	PlotPath *string `json:"plotPath"`
}

type errorBody struct {
	Error string `json:"error,omitempty"`
}

// RenderReport asks the report service to render the report in the given
// format and returns the raw artifact. An absent chart is sent as null.
func (c *Client) RenderReport(ctx context.Context, format schema.ExportFormat, report string, chart schema.ChartReference) (*schema.BinaryArtifact, error) {
	if !format.Valid() {
		return nil, &schema.TransportError{Op: opReport, Err: fmt.Errorf("invalid export format %q", format)}
	}

	payload := reportRequest{Report: report}
	if !chart.IsZero() {
		plotPath := string(chart)
		payload.PlotPath = &plotPath
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, &schema.TransportError{Op: opReport, Err: fmt.Errorf("error marshaling request: %w", err)}
	}

	path := "/report/" + url.PathEscape(string(format))
	resp, err := c.send(ctx, opReport, http.MethodPost, c.endpoint(path), "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		var out errorBody
		_ = json.Unmarshal(resp.body, &out)
		return nil, &schema.RemoteError{Op: opReport, StatusCode: resp.status, Message: out.Error}
	}

	return &schema.BinaryArtifact{
		Name:        format.FileName(),
		Format:      format,
		ContentType: resp.contentType,
		Data:        resp.body,
	}, nil
}
