package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/report-boot/metrics"
	"github.com/SaiNageswarS/report-boot/schema"
	"go.uber.org/zap"
)

// ExportResult describes a saved artifact.
type ExportResult struct {
	Artifact *schema.BinaryArtifact
	Location string
}

// ExportController renders the current report through the report service
// and saves the artifact as report.<format>.
type ExportController struct {
	state  *State
	remote Collaborator
	saver  ArtifactSaver
}

func NewExportController(state *State, remote Collaborator, saver ArtifactSaver) *ExportController {
	return &ExportController{state: state, remote: remote, saver: saver}
}

// ExportCurrent exports the report and chart currently held by the state.
func (c *ExportController) ExportCurrent(ctx context.Context, format schema.ExportFormat) <-chan async.Result[*ExportResult] {
	snapshot := c.state.Snapshot()
	return c.Export(ctx, format, snapshot.Report, snapshot.Chart)
}

// Export renders report in the given format and saves the result.
//
// An empty report means there is nothing to export: the task resolves with
// a nil result and no error, and the state is left alone. Failures only set
// the error message and the export family; the report and the other
// families are never touched.
func (c *ExportController) Export(ctx context.Context, format schema.ExportFormat, report string, chart schema.ChartReference) <-chan async.Result[*ExportResult] {
	if report == "" {
		metrics.OperationsRejected.WithLabelValues(metrics.Export, metrics.ReasonEmpty).Inc()
		return async.Go(func() (*ExportResult, error) { return nil, nil })
	}

	applied := c.state.update(func(s *Snapshot) bool {
		if s.ExportStatus == StateBusy {
			return false
		}
		s.ExportStatus = StateBusy
		s.ErrorMessage = ""
		return true
	})
	if !applied {
		metrics.OperationsRejected.WithLabelValues(metrics.Export, metrics.ReasonBusy).Inc()
		return resolved[*ExportResult](ErrOperationInProgress)
	}

	metrics.OperationsStarted.WithLabelValues(metrics.Export).Inc()

	return async.Go(func() (*ExportResult, error) {
		start := time.Now()
		artifact, err := c.remote.RenderReport(ctx, format, report, chart)
		metrics.OperationDuration.WithLabelValues(metrics.Export).Observe(time.Since(start).Seconds())
		if err == nil && artifact == nil {
			err = &schema.TransportError{Op: metrics.Export, Err: errors.New("empty artifact")}
		}
		if err != nil {
			metrics.OperationsCompleted.WithLabelValues(metrics.Export, completionStatus(err)).Inc()
			return nil, c.fail(format, err)
		}

		// Saved as report.<format> whatever name the service suggested.
		artifact.Name = format.FileName()
		artifact.Format = format
		location, err := c.saver.Save(ctx, artifact)
		if err != nil {
			metrics.OperationsCompleted.WithLabelValues(metrics.Export, metrics.StatusSaveError).Inc()
			return nil, c.fail(format, err)
		}

		metrics.OperationsCompleted.WithLabelValues(metrics.Export, metrics.StatusSuccess).Inc()
		logger.Info("Report exported", zap.String("format", string(format)), zap.String("location", location))
		c.state.update(func(s *Snapshot) bool {
			s.ExportStatus = StateIdle
			return true
		})

		return &ExportResult{Artifact: artifact, Location: location}, nil
	})
}

func (c *ExportController) fail(format schema.ExportFormat, cause error) error {
	logger.Error("Report export failed", zap.String("format", string(format)), zap.Error(cause))
	c.state.update(func(s *Snapshot) bool {
		s.ExportStatus = StateError
		s.ErrorMessage = fmt.Sprintf("Error exporting %s report", format)
		return true
	})
	return &schema.ExportError{Format: format, Err: cause}
}
