package workspace

import (
	"context"
	"io"
	"sync"

	"insightiq/models"
)

type queryCall struct {
	req  models.QueryRequest
	resp *models.QueryResponse
	err  error
	// release, when set, blocks the call until closed.
	release chan struct{}
}

type fakeBackend struct {
	mu       sync.Mutex
	queries  []models.QueryRequest
	answer   func(req models.QueryRequest) queryCall
	datasets []models.Dataset
	listErr  error
	deleted  []int64
	uploads  []string
	upload   func(name string) (*models.UploadResponse, error)
}

func (f *fakeBackend) ProcessQuery(ctx context.Context, req models.QueryRequest) (*models.QueryResponse, error) {
	f.mu.Lock()
	f.queries = append(f.queries, req)
	f.mu.Unlock()
	call := f.answer(req)
	if call.release != nil {
		select {
		case <-call.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return call.resp, call.err
}

func (f *fakeBackend) UploadCSV(ctx context.Context, file io.Reader, filename, datasetName, description string) (*models.UploadResponse, error) {
	if _, err := io.ReadAll(file); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, filename+"|"+datasetName+"|"+description)
	f.mu.Unlock()
	return f.upload(datasetName)
}

func (f *fakeBackend) ListDatasets(ctx context.Context) (*models.DatasetList, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &models.DatasetList{Success: true, Datasets: f.datasets}, nil
}

func (f *fakeBackend) DeleteDataset(ctx context.Context, id int64) (*models.MessageResponse, error) {
	f.deleted = append(f.deleted, id)
	return &models.MessageResponse{Success: true, Message: "deleted"}, nil
}

func (f *fakeBackend) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeBackend) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

type memStore struct {
	history   map[string][]models.HistoryEntry
	selection map[string]int64
}

func newMemStore() *memStore {
	return &memStore{history: map[string][]models.HistoryEntry{}, selection: map[string]int64{}}
}

func (m *memStore) AppendHistory(id string, e models.HistoryEntry) error {
	m.history[id] = append([]models.HistoryEntry{e}, m.history[id]...)
	return nil
}

func (m *memStore) RecentHistory(id string, limit int) ([]models.HistoryEntry, error) {
	h := m.history[id]
	if len(h) > limit {
		h = h[:limit]
	}
	return h, nil
}

func (m *memStore) SaveSelection(id string, ds int64) error {
	m.selection[id] = ds
	return nil
}

func (m *memStore) LoadSelection(id string) (int64, bool, error) {
	ds, ok := m.selection[id]
	return ds, ok, nil
}

func (m *memStore) ClearSelection(id string) error {
	delete(m.selection, id)
	return nil
}

type countingRecorder struct {
	queries []string
	uploads []string
}

func (r *countingRecorder) ObserveQuery(mode, outcome string) {
	r.queries = append(r.queries, mode+":"+outcome)
}

func (r *countingRecorder) ObserveUpload(outcome string) {
	r.uploads = append(r.uploads, outcome)
}

func okResponse(query, vis string, rows ...models.Row) *models.QueryResponse {
	return &models.QueryResponse{
		Success:           true,
		Query:             query,
		Data:              rows,
		VisualizationType: vis,
		Confidence:        0.9,
	}
}
