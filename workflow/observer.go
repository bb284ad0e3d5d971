package workflow

import (
	"sync"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// Observer receives a copy of the state after every applied transition.
// Notifications from concurrently running families may arrive in any
// order relative to each other.
type Observer interface {
	OnStateChange(snapshot Snapshot)
}

// NoOpObserver ignores all notifications.
type NoOpObserver struct{}

func (o *NoOpObserver) OnStateChange(snapshot Snapshot) {}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(snapshot Snapshot)

func (f ObserverFunc) OnStateChange(snapshot Snapshot) {
	f(snapshot)
}

// LoggingObserver logs the operation families and error message whenever
// they change.
type LoggingObserver struct {
	mu   sync.Mutex
	last Snapshot
	seen bool
}

func (o *LoggingObserver) OnStateChange(snapshot Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.seen &&
		o.last.IngestionStatus == snapshot.IngestionStatus &&
		o.last.QueryStatus == snapshot.QueryStatus &&
		o.last.ExportStatus == snapshot.ExportStatus &&
		o.last.ErrorMessage == snapshot.ErrorMessage {
		return
	}
	o.last, o.seen = snapshot, true

	logger.Info("Workflow state changed",
		zap.String("ingestion", snapshot.IngestionStatus.String()),
		zap.String("query", snapshot.QueryStatus.String()),
		zap.String("export", snapshot.ExportStatus.String()),
		zap.String("error", snapshot.ErrorMessage))
}

// fanoutObserver notifies several observers in order.
type fanoutObserver []Observer

func (f fanoutObserver) OnStateChange(snapshot Snapshot) {
	for _, o := range f {
		o.OnStateChange(snapshot)
	}
}
