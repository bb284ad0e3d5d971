package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/report-boot/metrics"
	"github.com/SaiNageswarS/report-boot/schema"
	"go.uber.org/zap"
)

const msgQueryFailed = "Failed to generate report"

// QueryController asks the report service for a report and owns the
// report, sources and chart held by the state.
type QueryController struct {
	state  *State
	remote Collaborator
}

func NewQueryController(state *State, remote Collaborator) *QueryController {
	return &QueryController{state: state, remote: remote}
}

// SubmitCurrent submits the query text currently held by the state.
func (c *QueryController) SubmitCurrent(ctx context.Context) <-chan async.Result[*schema.QueryResult] {
	return c.Submit(ctx, c.state.Snapshot().Query)
}

// Submit sends the trimmed query to the report service.
//
// When the gate passes, the error message and the previous report, sources
// and chart are cleared in the same transition that marks the query family
// busy. A failed query leaves them cleared.
func (c *QueryController) Submit(ctx context.Context, query string) <-chan async.Result[*schema.QueryResult] {
	trimmed := strings.TrimSpace(query)

	var gateErr error
	c.state.update(func(s *Snapshot) bool {
		switch {
		case s.QueryStatus == StateBusy:
			gateErr = ErrOperationInProgress
			return false
		case !CanQuery(trimmed):
			gateErr = &schema.ValidationError{Op: metrics.Query, Message: MsgEmptyQuery}
			s.ErrorMessage = MsgEmptyQuery
			return true
		}
		s.ErrorMessage = ""
		s.Report = ""
		s.Sources = nil
		s.Chart = ""
		s.QueryStatus = StateBusy
		return true
	})

	if gateErr != nil {
		metrics.OperationsRejected.WithLabelValues(metrics.Query, rejectionReason(gateErr)).Inc()
		return resolved[*schema.QueryResult](gateErr)
	}

	metrics.OperationsStarted.WithLabelValues(metrics.Query).Inc()

	return async.Go(func() (*schema.QueryResult, error) {
		start := time.Now()
		result, err := c.remote.Query(ctx, trimmed)
		metrics.OperationDuration.WithLabelValues(metrics.Query).Observe(time.Since(start).Seconds())
		metrics.OperationsCompleted.WithLabelValues(metrics.Query, completionStatus(err)).Inc()

		if err != nil {
			logger.Error("Report generation failed", zap.String("query", trimmed), zap.Error(err))
			c.state.update(func(s *Snapshot) bool {
				s.QueryStatus = StateError
				s.ErrorMessage = failureMessage(err, msgQueryFailed)
				return true
			})
			return nil, err
		}

		sources := result.Sources
		if sources == nil {
			sources = []schema.SourceSnippet{}
		}

		c.state.update(func(s *Snapshot) bool {
			s.Report = result.Report
			s.Sources = sources
			s.Chart = result.Chart
			s.QueryStatus = StateIdle
			return true
		})

		return &schema.QueryResult{Report: result.Report, Sources: sources, Chart: result.Chart}, nil
	})
}
