package workflow

import (
	"errors"
	"sync"

	"github.com/SaiNageswarS/report-boot/schema"
)

// OperationState is the status of one operation family.
type OperationState int

const (
	StateIdle OperationState = iota
	StateBusy
	StateError
)

func (s OperationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBusy:
		return "busy"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrOperationInProgress is returned when an operation is triggered while
// the same family is still busy. The trigger has no effect.
var ErrOperationInProgress = errors.New("operation already in progress")

// Snapshot is a point-in-time copy of the workflow state. Values handed out
// by State never alias its internal slices.
type Snapshot struct {
	// Pending inputs.
	Files   []schema.UploadedFile
	URLText string
	Query   string

	IngestionStatus OperationState
	QueryStatus     OperationState
	ExportStatus    OperationState

	ErrorMessage string

	// Result of the last successful query.
	Report  string
	Sources []schema.SourceSnippet
	Chart   schema.ChartReference

	ShowSources bool
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.Files != nil {
		out.Files = append([]schema.UploadedFile(nil), s.Files...)
	}
	if s.Sources != nil {
		out.Sources = append([]schema.SourceSnippet{}, s.Sources...)
	}
	return out
}

// State is the container shared by the controllers of one session. All
// mutations go through update so observers see every applied transition,
// in the order the transitions were applied. Observers must not mutate the
// state from OnStateChange.
type State struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	current  Snapshot
	observer Observer
}

func NewState(observer Observer) *State {
	if observer == nil {
		observer = &NoOpObserver{}
	}
	return &State{observer: observer}
}

// Snapshot returns a copy of the current state.
func (st *State) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current.clone()
}

// update applies fn atomically. fn returns false to leave the state
// untouched, in which case observers are not notified.
//
// notifyMu is taken before mu is released, so a later transition cannot
// be delivered ahead of an earlier one. Reads through Snapshot stay
// available while an observer runs.
func (st *State) update(fn func(s *Snapshot) bool) bool {
	st.mu.Lock()
	next := st.current.clone()
	if !fn(&next) {
		st.mu.Unlock()
		return false
	}
	st.current = next
	snap := next.clone()
	observer := st.observer
	st.notifyMu.Lock()
	st.mu.Unlock()

	defer st.notifyMu.Unlock()
	observer.OnStateChange(snap)
	return true
}

// AddFiles appends files to the pending list and clears the error message.
func (st *State) AddFiles(files ...schema.UploadedFile) {
	st.update(func(s *Snapshot) bool {
		s.Files = append(s.Files, files...)
		s.ErrorMessage = ""
		return true
	})
}

// RemoveFile drops the pending file at index. It reports false when the
// index is out of range.
func (st *State) RemoveFile(index int) bool {
	return st.update(func(s *Snapshot) bool {
		if index < 0 || index >= len(s.Files) {
			return false
		}
		s.Files = append(s.Files[:index], s.Files[index+1:]...)
		return true
	})
}

func (st *State) SetURLText(text string) {
	st.update(func(s *Snapshot) bool {
		s.URLText = text
		return true
	})
}

func (st *State) SetQuery(query string) {
	st.update(func(s *Snapshot) bool {
		s.Query = query
		return true
	})
}

// ToggleSources flips source visibility and returns the new value.
func (st *State) ToggleSources() bool {
	var shown bool
	st.update(func(s *Snapshot) bool {
		s.ShowSources = !s.ShowSources
		shown = s.ShowSources
		return true
	})
	return shown
}
