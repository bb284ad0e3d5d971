package workflow

// Session bundles the state of one user session with the controllers that
// drive it. The controllers only share the state.
type Session struct {
	State     *State
	Ingestion *IngestionController
	Query     *QueryController
	Export    *ExportController
}

type sessionSettings struct {
	observers []Observer
}

type SessionOption func(*sessionSettings)

// WithObserver registers an observer for every state transition. May be
// given more than once.
func WithObserver(observer Observer) SessionOption {
	return func(s *sessionSettings) { s.observers = append(s.observers, observer) }
}

func NewSession(remote Collaborator, saver ArtifactSaver, opts ...SessionOption) *Session {
	settings := sessionSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	var observer Observer
	switch len(settings.observers) {
	case 0:
		observer = &NoOpObserver{}
	case 1:
		observer = settings.observers[0]
	default:
		observer = fanoutObserver(settings.observers)
	}

	state := NewState(observer)
	return &Session{
		State:     state,
		Ingestion: NewIngestionController(state, remote),
		Query:     NewQueryController(state, remote),
		Export:    NewExportController(state, remote, saver),
	}
}
