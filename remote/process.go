package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/SaiNageswarS/report-boot/schema"
)

const opProcess = "process"

type processResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Process submits files and the raw URL text as one multipart request.
// Files go under the repeated "files" field, the URL text under "urls"
// (always present, possibly empty).
func (c *Client) Process(ctx context.Context, files []schema.UploadedFile, urlText string) error {
	body, contentType, err := encodeProcessForm(files, urlText)
	if err != nil {
		return &schema.TransportError{Op: opProcess, Err: err}
	}

	resp, err := c.send(ctx, opProcess, http.MethodPost, c.endpoint("/process"), contentType, body)
	if err != nil {
		return err
	}

	var out processResponse
	decodeErr := json.Unmarshal(resp.body, &out)

	if !resp.ok() {
		return &schema.RemoteError{Op: opProcess, StatusCode: resp.status, Message: out.Error}
	}
	if decodeErr != nil {
		return &schema.TransportError{Op: opProcess, Err: fmt.Errorf("error unmarshaling response: %w", decodeErr)}
	}
	if out.Error != "" {
		return &schema.RemoteError{Op: opProcess, StatusCode: resp.status, Message: out.Error}
	}

	return nil
}

func encodeProcessForm(files []schema.UploadedFile, urlText string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("error creating file part %q: %w", f.Name, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("error writing file part %q: %w", f.Name, err)
		}
	}

	if err := w.WriteField("urls", urlText); err != nil {
		return nil, "", fmt.Errorf("error writing urls field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("error closing multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
