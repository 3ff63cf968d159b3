package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightiq/cache"
	"insightiq/models"
)

func newBackendWorkspace(fb *fakeBackend, store Store, rec Recorder) *Workspace {
	opts := Options{ID: "s1", Backend: fb, HistoryLimit: 2, Recorder: rec}
	if store != nil {
		opts.Store = store
	}
	return New(opts)
}

func TestWorkspace_Modes(t *testing.T) {
	demo := New(Options{ID: "d", Demo: &fakeBackend{}})
	assert.Equal(t, ModeDemo, demo.Mode())

	ds, err := demo.RefreshDatasets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds)

	_, err = demo.UploadFile(context.Background(), "x", "", csvFile("a.csv"))
	assert.ErrorIs(t, err, ErrUploadUnavailable)

	live := newBackendWorkspace(&fakeBackend{}, nil, nil)
	assert.Equal(t, ModeBackend, live.Mode())
}

func TestWorkspace_DemoQueryNeedsNoDataset(t *testing.T) {
	fb := &fakeBackend{answer: func(req models.QueryRequest) queryCall {
		return queryCall{resp: okResponse(req.Query, "line", models.NewRow("month", "Jan", "churn", 0.1))}
	}}
	w := New(Options{ID: "d", Demo: fb})

	st, err := w.Ask(context.Background(), "churn")
	require.NoError(t, err)
	assert.Equal(t, StatusResult, st.Status)
	assert.Nil(t, fb.queries[0].DatasetID)
}

func TestWorkspace_SelectAndDelete(t *testing.T) {
	fb := &fakeBackend{datasets: []models.Dataset{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	store := newMemStore()
	w := newBackendWorkspace(fb, store, nil)

	list, err := w.RefreshDatasets(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = w.Select(99)
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	ds, err := w.Select(2)
	require.NoError(t, err)
	assert.Equal(t, "b", ds.Name)
	assert.Equal(t, int64(2), store.selection["s1"])

	require.NoError(t, w.DeleteDataset(context.Background(), 2))
	assert.Nil(t, w.Query.Active())
	assert.Len(t, w.Datasets(), 1)
	assert.Equal(t, []int64{2}, fb.deleted)
	_, persisted := store.selection["s1"]
	assert.False(t, persisted)
}

func TestWorkspace_RestoresPersistedSelection(t *testing.T) {
	fb := &fakeBackend{datasets: []models.Dataset{{ID: 1, Name: "a"}, {ID: 3, Name: "c"}}}
	store := newMemStore()
	store.selection["s1"] = 3
	w := newBackendWorkspace(fb, store, nil)

	_, err := w.RefreshDatasets(context.Background())
	require.NoError(t, err)
	require.NotNil(t, w.Query.Active())
	assert.Equal(t, int64(3), w.Query.Active().ID)
}

func TestWorkspace_UploadSelectsNewDataset(t *testing.T) {
	fb := &fakeBackend{upload: uploadOK}
	rec := &countingRecorder{}
	w := newBackendWorkspace(fb, nil, rec)

	form, err := w.UploadFile(context.Background(), "Sales", "", csvFile("s.csv"))
	require.NoError(t, err)
	assert.Equal(t, UploadSuccess, form.Status)
	require.NotNil(t, w.Query.Active())
	assert.Equal(t, int64(42), w.Query.Active().ID)
	assert.Equal(t, "Sales", w.Datasets()[0].Name)
	assert.Equal(t, []string{"success"}, rec.uploads)
}

func TestWorkspace_HistoryBounded(t *testing.T) {
	fb := &fakeBackend{
		datasets: []models.Dataset{{ID: 1, Name: "a"}},
		answer: func(req models.QueryRequest) queryCall {
			return queryCall{resp: okResponse(req.Query, "bar", models.NewRow("x", 1))}
		},
	}
	store := newMemStore()
	rec := &countingRecorder{}
	w := newBackendWorkspace(fb, store, rec)
	_, _ = w.RefreshDatasets(context.Background())
	_, err := w.Select(1)
	require.NoError(t, err)

	for _, q := range []string{"one", "two", "three"} {
		_, err := w.Ask(context.Background(), q)
		require.NoError(t, err)
	}
	_, err = w.Ask(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	h := w.History()
	require.Len(t, h, 2)
	assert.Equal(t, "three", h[0].Query)
	assert.Equal(t, "bar", h[0].VisualizationType)
	require.NotNil(t, h[0].DatasetID)
	assert.Len(t, store.history["s1"], 3)
	assert.Equal(t, []string{"backend:success", "backend:success", "backend:success", "backend:invalid"}, rec.queries)

	// a new workspace for the same session starts from stored history
	again := newBackendWorkspace(fb, store, nil)
	assert.Len(t, again.History(), 2)
}

func TestWorkspace_Snapshot(t *testing.T) {
	w := New(Options{ID: "d", Demo: &fakeBackend{}})
	snap := w.Snapshot()
	assert.Equal(t, "d", snap.Session)
	assert.Equal(t, ModeDemo, snap.Mode)
	assert.Equal(t, StatusIdle, snap.Query.Status)
	assert.Equal(t, UploadIdle, snap.Upload.Status)
}

func TestRegistry_GetCreatesOnce(t *testing.T) {
	created := 0
	var counts []int
	r := NewRegistry(cache.New(time.Minute, time.Minute), func(id string) *Workspace {
		created++
		return New(Options{ID: id, Demo: &fakeBackend{}})
	}, func(n int) { counts = append(counts, n) })

	a := r.Get("x")
	b := r.Get("x")
	assert.Same(t, a, b)
	assert.Equal(t, 1, created)

	r.Get("y")
	assert.Equal(t, 2, r.Len())

	r.Drop("x")
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []int{1, 2, 1}, counts)
	assert.Equal(t, "x", r.Get("x").ID())
}
