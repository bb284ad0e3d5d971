package workflow

import (
	"context"
	"errors"

	"github.com/SaiNageswarS/report-boot/metrics"
	"github.com/SaiNageswarS/report-boot/schema"
)

// Collaborator is the remote report service as seen by the controllers.
// *remote.Client implements it.
type Collaborator interface {
	Process(ctx context.Context, files []schema.UploadedFile, urlText string) error
	Query(ctx context.Context, query string) (*schema.QueryResult, error)
	RenderReport(ctx context.Context, format schema.ExportFormat, report string, chart schema.ChartReference) (*schema.BinaryArtifact, error)
}

// ArtifactSaver stores an exported artifact and returns where it went.
// *artifact.Fanout and every artifact.Sink implement it.
type ArtifactSaver interface {
	Save(ctx context.Context, artifact *schema.BinaryArtifact) (string, error)
}

// failureMessage prefers the message sent by the service and falls back to
// a fixed text for everything else.
func failureMessage(err error, fallback string) string {
	var remoteErr *schema.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	return fallback
}

func completionStatus(err error) string {
	var remoteErr *schema.RemoteError
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.As(err, &remoteErr):
		return metrics.StatusRemoteError
	default:
		return metrics.StatusTransportError
	}
}
