package remote

import (
	"context"
	"net/http"
	"strings"

	"github.com/SaiNageswarS/report-boot/schema"
)

const opChart = "chart"

// ChartURL resolves a chart reference against the service base address.
// Absolute URLs are returned unchanged; an absent chart yields "".
func (c *Client) ChartURL(chart schema.ChartReference) string {
	if chart.IsZero() {
		return ""
	}

	ref := string(chart)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.endpoint(ref)
}

// FetchChart downloads the chart image behind the reference.
func (c *Client) FetchChart(ctx context.Context, chart schema.ChartReference) ([]byte, error) {
	if chart.IsZero() {
		return nil, nil
	}

	resp, err := c.send(ctx, opChart, http.MethodGet, c.ChartURL(chart), "", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &schema.RemoteError{Op: opChart, StatusCode: resp.status}
	}
	return resp.body, nil
}
