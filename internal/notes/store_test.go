package notes

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/treenotes/internal/api"
)

func TestCourseLabel(t *testing.T) {
	assert.Equal(t, "Algorithms and...", CourseLabel("Algorithms and Data Structures"))
	assert.Equal(t, "Math...", CourseLabel("Math"))
	assert.Equal(t, "...", CourseLabel(""))
	assert.Equal(t, "Exactly14Chars...", CourseLabel("Exactly14Chars"))
	assert.Equal(t, "Übungsblätter ...", CourseLabel("Übungsblätter für Analysis"))
}

func TestEnsureLoadedFetchesOnceSequentially(t *testing.T) {
	gw := newFakeGateway(api.Note{URI: "n1", Course: "C1...", Body: "hello"})
	store := NewStore(gw, nil, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.EnsureLoaded())
	}
	assert.Equal(t, 1, gw.ListCalls())
	assert.True(t, store.Loaded())

	note, ok := store.Find("n1")
	require.True(t, ok)
	assert.Equal(t, "hello", note.Body)
}

func TestEnsureLoadedConcurrentCallersShareOneFetch(t *testing.T) {
	gw := newFakeGateway(api.Note{URI: "n1"})
	gw.listGate = make(chan struct{})
	store := NewStore(gw, nil, nil)

	const callers = 20
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.EnsureLoaded()
		}()
	}

	require.Eventually(t, func() bool { return gw.ListCalls() == 1 }, time.Second, 5*time.Millisecond)
	close(gw.listGate)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, gw.ListCalls())
	assert.Equal(t, 1, store.Len())
}

func TestEnsureLoadedFailureStoresNothing(t *testing.T) {
	gw := newFakeGateway(api.Note{URI: "n1"})
	gw.setListErr(errOffline)
	store := NewStore(gw, nil, nil)

	err := store.EnsureLoaded()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailed))
	assert.True(t, errors.Is(err, errOffline))
	assert.False(t, store.Loaded())
	assert.Equal(t, 0, store.Len())

	gw.setListErr(nil)
	require.NoError(t, store.EnsureLoaded())
	assert.Equal(t, 2, gw.ListCalls())
	assert.Equal(t, 1, store.Len())
}

func TestCreateInsertsOnCreatedStatus(t *testing.T) {
	gw := newFakeGateway()
	store := NewStore(gw, nil, nil)
	require.NoError(t, store.EnsureLoaded())

	note, err := store.Create("il_crs_42", "Introduction to Databases", "")
	require.NoError(t, err)
	assert.Equal(t, "Introduction t...", note.Course)
	assert.Equal(t, "", note.Body)

	found, ok := store.Find("il_crs_42")
	require.True(t, ok)
	assert.Equal(t, note, found)
}

func TestCreateRejectedStatusDiscardsCandidate(t *testing.T) {
	gw := newFakeGateway()
	gw.createStatus["il_crs_42"] = http.StatusConflict
	store := NewStore(gw, nil, nil)
	require.NoError(t, store.EnsureLoaded())

	_, err := store.Create("il_crs_42", "Databases", "typed text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCreateRejected))
	assert.Contains(t, err.Error(), "409")

	_, ok := store.Find("il_crs_42")
	assert.False(t, ok)
}

func TestCreateTransportErrorIsNotARejection(t *testing.T) {
	gw := newFakeGateway()
	gw.createErr = errOffline
	store := NewStore(gw, nil, nil)

	_, err := store.Create("n1", "Title", "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCreateRejected))
	assert.True(t, errors.Is(err, errOffline))
	assert.Equal(t, 0, store.Len())
}

func TestConcurrentCreatesForOneURIShareOneRequest(t *testing.T) {
	gw := newFakeGateway()
	gw.createGate = make(chan struct{})
	store := NewStore(gw, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create("n1", "Title", "")
			assert.NoError(t, err)
		}()
	}
	require.Eventually(t, func() bool { return gw.CreateCalls() == 1 }, time.Second, 5*time.Millisecond)
	close(gw.createGate)
	wg.Wait()

	assert.Equal(t, 1, gw.CreateCalls())
	assert.Equal(t, 1, store.Len())
}

func TestSetBodyUnknownURI(t *testing.T) {
	store := NewStore(newFakeGateway(), nil, nil)
	err := store.SetBody("missing", "text")
	assert.True(t, errors.Is(err, ErrNoteNotFound))
}

func TestSetBodyRecordsMutation(t *testing.T) {
	gw := newFakeGateway(api.Note{URI: "n1", Course: "C...", Body: "old"})
	coalescer := NewCoalescer(gw, time.Hour, nil)
	store := NewStore(gw, coalescer, nil)
	require.NoError(t, store.EnsureLoaded())

	require.NoError(t, store.SetBody("n1", "new"))

	note, _ := store.Find("n1")
	assert.Equal(t, "new", note.Body)
	pending, ok := coalescer.Pending()
	require.True(t, ok)
	assert.Equal(t, api.Note{URI: "n1", Course: "C...", Body: "new"}, pending)
	coalescer.Stop()
}

func TestConcurrentSetBodyQueuesLatestBody(t *testing.T) {
	for round := 0; round < 200; round++ {
		gw := newFakeGateway(api.Note{URI: "n1"})
		coalescer := NewCoalescer(gw, time.Hour, nil)
		store := NewStore(gw, coalescer, nil)
		require.NoError(t, store.EnsureLoaded())

		var wg sync.WaitGroup
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					assert.NoError(t, store.SetBody("n1", fmt.Sprintf("w%d-%d", w, i)))
				}
			}(w)
		}
		wg.Wait()

		note, ok := store.Find("n1")
		require.True(t, ok)
		pending, ok := coalescer.Pending()
		require.True(t, ok)
		require.Equal(t, note.Body, pending.Body, "round %d", round)
		coalescer.Stop()
	}
}

func TestNotesKeepsInsertionOrder(t *testing.T) {
	gw := newFakeGateway(api.Note{URI: "b"}, api.Note{URI: "a"})
	store := NewStore(gw, nil, nil)
	require.NoError(t, store.EnsureLoaded())
	_, err := store.Create("c", "C", "")
	require.NoError(t, err)

	var uris []string
	for _, n := range store.Notes() {
		uris = append(uris, n.URI)
	}
	assert.Equal(t, []string{"b", "a", "c"}, uris)
}
