package notes

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gravitrone/treenotes/internal/api"
)

type recordedUpdate struct {
	note api.Note
	at   time.Time
}

// fakeGateway records calls and lets tests script each remote outcome.
type fakeGateway struct {
	mu sync.Mutex

	list      []api.Note
	listErr   error
	listGate  chan struct{}
	listCalls int

	createStatus map[string]int
	createErr    error
	createGate   chan struct{}
	createCalls  int

	updateErr error
	updates   []recordedUpdate
}

func newFakeGateway(list ...api.Note) *fakeGateway {
	return &fakeGateway{list: list, createStatus: map[string]int{}}
}

func (f *fakeGateway) ListNotes() ([]api.Note, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]api.Note(nil), f.list...), nil
}

func (f *fakeGateway) CreateNote(note api.Note) (int, error) {
	f.mu.Lock()
	f.createCalls++
	gate := f.createGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	if status, ok := f.createStatus[note.URI]; ok {
		return status, nil
	}
	return http.StatusCreated, nil
}

func (f *fakeGateway) UpdateNote(note api.Note) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, recordedUpdate{note: note, at: time.Now()})
	if f.updateErr != nil {
		return "", f.updateErr
	}
	return "ok", nil
}

func (f *fakeGateway) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeGateway) CreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

func (f *fakeGateway) Updates() []recordedUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedUpdate(nil), f.updates...)
}

func (f *fakeGateway) setListErr(err error) {
	f.mu.Lock()
	f.listErr = err
	f.mu.Unlock()
}

var errOffline = errors.New("connection refused")
