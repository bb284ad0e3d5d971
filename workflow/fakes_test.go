package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/SaiNageswarS/report-boot/schema"
)

type processCall struct {
	files   []schema.UploadedFile
	urlText string
}

type renderCall struct {
	format schema.ExportFormat
	report string
	chart  schema.ChartReference
}

// fakeCollaborator records every call. When block is set each call waits
// for it to be closed before answering.
type fakeCollaborator struct {
	mu           sync.Mutex
	block        chan struct{}
	processCalls []processCall
	queryCalls   []string
	renderCalls  []renderCall

	processErr   error
	queryResult  *schema.QueryResult
	queryErr     error
	renderResult *schema.BinaryArtifact
	renderErr    error
}

func (f *fakeCollaborator) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return &schema.TransportError{Op: "fake", Err: ctx.Err()}
	}
}

func (f *fakeCollaborator) Process(ctx context.Context, files []schema.UploadedFile, urlText string) error {
	f.mu.Lock()
	f.processCalls = append(f.processCalls, processCall{files: files, urlText: urlText})
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return err
	}
	return f.processErr
}

func (f *fakeCollaborator) Query(ctx context.Context, query string) (*schema.QueryResult, error) {
	f.mu.Lock()
	f.queryCalls = append(f.queryCalls, query)
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.queryResult == nil {
		return &schema.QueryResult{Report: "# Report"}, nil
	}
	return f.queryResult, nil
}

func (f *fakeCollaborator) RenderReport(ctx context.Context, format schema.ExportFormat, report string, chart schema.ChartReference) (*schema.BinaryArtifact, error) {
	f.mu.Lock()
	f.renderCalls = append(f.renderCalls, renderCall{format: format, report: report, chart: chart})
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	if f.renderResult != nil {
		return f.renderResult, nil
	}
	return &schema.BinaryArtifact{Name: format.FileName(), Format: format, Data: []byte("artifact")}, nil
}

func (f *fakeCollaborator) calls() (process, query, render int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.processCalls), len(f.queryCalls), len(f.renderCalls)
}

type fakeSaver struct {
	mu    sync.Mutex
	saved []*schema.BinaryArtifact
	err   error
}

func (s *fakeSaver) Save(ctx context.Context, artifact *schema.BinaryArtifact) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, artifact)
	return "/tmp/" + artifact.Name, nil
}

type recordingObserver struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (o *recordingObserver) OnStateChange(snapshot Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snapshots = append(o.snapshots, snapshot)
}

func (o *recordingObserver) all() []Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Snapshot(nil), o.snapshots...)
}

var errConnectionRefused = errors.New("connection refused")

func newTestSession(remote *fakeCollaborator, saver *fakeSaver, observer Observer) *Session {
	if saver == nil {
		saver = &fakeSaver{}
	}
	if observer == nil {
		return NewSession(remote, saver)
	}
	return NewSession(remote, saver, WithObserver(observer))
}
