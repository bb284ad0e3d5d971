package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/report-boot/metrics"
	"github.com/SaiNageswarS/report-boot/schema"
	"go.uber.org/zap"
)

const msgIngestionFailed = "Failed to process documents"

// IngestionController submits pending files and URLs to the report service.
type IngestionController struct {
	state  *State
	remote Collaborator
}

func NewIngestionController(state *State, remote Collaborator) *IngestionController {
	return &IngestionController{state: state, remote: remote}
}

// SelectFiles acquires files from source and appends them to the pending
// list. The source is only used for the duration of this call.
func (c *IngestionController) SelectFiles(ctx context.Context, source FileSource) error {
	files, err := source.Select(ctx)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		c.state.AddFiles(files...)
	}
	return nil
}

// SubmitPending submits the files and URL text currently held by the state.
func (c *IngestionController) SubmitPending(ctx context.Context) <-chan async.Result[struct{}] {
	snapshot := c.state.Snapshot()
	return c.Submit(ctx, snapshot.Files, snapshot.URLText)
}

// Submit packages files and urlText into a single processing request.
//
// The gate runs synchronously: a call made while ingestion is busy resolves
// with ErrOperationInProgress and changes nothing, and a call with nothing
// to ingest sets the error message and resolves with a ValidationError.
// Neither makes a remote call.
func (c *IngestionController) Submit(ctx context.Context, files []schema.UploadedFile, urlText string) <-chan async.Result[struct{}] {
	var gateErr error
	c.state.update(func(s *Snapshot) bool {
		switch {
		case s.IngestionStatus == StateBusy:
			gateErr = ErrOperationInProgress
			return false
		case !CanIngest(files, urlText):
			gateErr = &schema.ValidationError{Op: metrics.Ingestion, Message: MsgNothingToIngest}
			s.ErrorMessage = MsgNothingToIngest
			return true
		}
		s.IngestionStatus = StateBusy
		s.ErrorMessage = ""
		return true
	})

	if gateErr != nil {
		metrics.OperationsRejected.WithLabelValues(metrics.Ingestion, rejectionReason(gateErr)).Inc()
		return resolved[struct{}](gateErr)
	}

	metrics.OperationsStarted.WithLabelValues(metrics.Ingestion).Inc()
	files = append([]schema.UploadedFile(nil), files...)

	return async.Go(func() (struct{}, error) {
		start := time.Now()
		err := c.remote.Process(ctx, files, urlText)
		metrics.OperationDuration.WithLabelValues(metrics.Ingestion).Observe(time.Since(start).Seconds())
		metrics.OperationsCompleted.WithLabelValues(metrics.Ingestion, completionStatus(err)).Inc()

		if err != nil {
			logger.Error("Document processing failed", zap.Int("files", len(files)), zap.Error(err))
			c.state.update(func(s *Snapshot) bool {
				s.IngestionStatus = StateError
				s.ErrorMessage = failureMessage(err, msgIngestionFailed)
				return true
			})
			return struct{}{}, err
		}

		logger.Info("Documents processed", zap.Int("files", len(files)))
		c.state.update(func(s *Snapshot) bool {
			s.IngestionStatus = StateIdle
			return true
		})
		return struct{}{}, nil
	})
}

// resolved returns a task that has already failed with err.
func resolved[T any](err error) <-chan async.Result[T] {
	return async.Go(func() (T, error) {
		var zero T
		return zero, err
	})
}

func rejectionReason(err error) string {
	if errors.Is(err, ErrOperationInProgress) {
		return metrics.ReasonBusy
	}
	return metrics.ReasonValidation
}
