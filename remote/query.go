package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SaiNageswarS/report-boot/schema"
)

const opQuery = "query"

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Report   string                 `json:"report"`
	Sources  []schema.SourceSnippet `json:"sources,omitempty"`
	PlotPath string                 `json:"plot_path,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// Query asks the report service to generate a report for the question.
// A missing sources field yields an empty, non-nil slice.
func (c *Client) Query(ctx context.Context, query string) (*schema.QueryResult, error) {
	jsonData, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return nil, &schema.TransportError{Op: opQuery, Err: fmt.Errorf("error marshaling request: %w", err)}
	}

	resp, err := c.send(ctx, opQuery, http.MethodPost, c.endpoint("/query"), "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}

	var out queryResponse
	decodeErr := json.Unmarshal(resp.body, &out)

	if !resp.ok() {
		return nil, &schema.RemoteError{Op: opQuery, StatusCode: resp.status, Message: out.Error}
	}
	if decodeErr != nil {
		return nil, &schema.TransportError{Op: opQuery, Err: fmt.Errorf("error unmarshaling response: %w", decodeErr)}
	}
	if out.Error != "" {
		return nil, &schema.RemoteError{Op: opQuery, StatusCode: resp.status, Message: out.Error}
	}

	sources := out.Sources
	if sources == nil {
		sources = []schema.SourceSnippet{}
	}

	return &schema.QueryResult{
		Report:  out.Report,
		Sources: sources,
		Chart:   schema.ChartReference(out.PlotPath),
	}, nil
}
