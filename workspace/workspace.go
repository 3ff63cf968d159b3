package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"insightiq/models"
)

type Mode string

const (
	ModeBackend Mode = "backend"
	ModeDemo    Mode = "demo"
)

// DatasetService lists and deletes datasets on the backend.
type DatasetService interface {
	ListDatasets(ctx context.Context) (*models.DatasetList, error)
	DeleteDataset(ctx context.Context, id int64) (*models.MessageResponse, error)
}

// Backend is everything a backend-connected workspace needs.
type Backend interface {
	Querier
	Uploader
	DatasetService
}

// Store persists per-session history and dataset selection.
type Store interface {
	AppendHistory(sessionID string, entry models.HistoryEntry) error
	RecentHistory(sessionID string, limit int) ([]models.HistoryEntry, error)
	SaveSelection(sessionID string, datasetID int64) error
	LoadSelection(sessionID string) (int64, bool, error)
	ClearSelection(sessionID string) error
}

// Recorder receives query and upload outcomes.
type Recorder interface {
	ObserveQuery(mode, outcome string)
	ObserveUpload(outcome string)
}

type Options struct {
	ID string
	// Backend selects ModeBackend. When nil the workspace runs in ModeDemo on Demo.
	Backend      Backend
	Demo         Querier
	Store        Store
	Recorder     Recorder
	Logger       *zap.Logger
	HistoryLimit int
}

// Workspace is one user's view of the dashboard: the dataset list, the upload form,
// the query flow and recent history. The same type serves both modes; demo mode has
// no dataset list and rejects uploads.
type Workspace struct {
	id       string
	mode     Mode
	datasets DatasetService
	store    Store
	recorder Recorder
	logger   *zap.Logger

	Query  *QueryFlow
	Upload *UploadFlow

	mu           sync.Mutex
	list         []models.Dataset
	loaded       bool
	history      []models.HistoryEntry
	historyLimit int
}

func New(opts Options) *Workspace {
	w := &Workspace{
		id:           opts.ID,
		store:        opts.Store,
		recorder:     opts.Recorder,
		logger:       opts.Logger,
		historyLimit: opts.HistoryLimit,
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if w.historyLimit <= 0 {
		w.historyLimit = 10
	}

	if opts.Backend != nil {
		w.mode = ModeBackend
		w.datasets = opts.Backend
		w.Query = NewQueryFlow(opts.Backend, true)
		w.Upload = NewUploadFlow(opts.Backend, w.uploaded)
	} else {
		w.mode = ModeDemo
		w.Query = NewQueryFlow(opts.Demo, false)
		w.Upload = NewUploadFlow(nil, nil)
	}

	if w.store != nil {
		entries, err := w.store.RecentHistory(w.id, w.historyLimit)
		if err != nil {
			w.logger.Warn("failed to load history", zap.String("session", w.id), zap.Error(err))
		}
		w.history = entries
	}
	return w
}

func (w *Workspace) ID() string { return w.id }

func (w *Workspace) Mode() Mode { return w.mode }

// RefreshDatasets reloads the dataset list from the backend. A selection that no
// longer exists is cleared; a persisted selection is restored when nothing is active.
func (w *Workspace) RefreshDatasets(ctx context.Context) ([]models.Dataset, error) {
	if w.mode == ModeDemo {
		return nil, nil
	}
	resp, err := w.datasets.ListDatasets(ctx)
	if err != nil {
		return w.Datasets(), err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.list = append([]models.Dataset(nil), resp.Datasets...)
	w.loaded = true

	if active := w.Query.Active(); active != nil {
		if ds, ok := w.find(active.ID); ok {
			w.Query.Select(&ds)
		} else {
			w.Query.Select(nil)
			w.clearSelection()
		}
		return w.copyList(), nil
	}

	if w.store != nil {
		id, ok, err := w.store.LoadSelection(w.id)
		if err != nil {
			w.logger.Warn("failed to load selection", zap.String("session", w.id), zap.Error(err))
		} else if ok {
			if ds, found := w.find(id); found {
				w.Query.Select(&ds)
			}
		}
	}
	return w.copyList(), nil
}

// Datasets returns the last loaded dataset list.
func (w *Workspace) Datasets() []models.Dataset {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copyList()
}

// Loaded reports whether the dataset list has been fetched at least once.
func (w *Workspace) Loaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loaded
}

// Select makes the dataset with the given id active.
func (w *Workspace) Select(id int64) (models.Dataset, error) {
	if w.mode == ModeDemo {
		return models.Dataset{}, ErrDatasetNotFound
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	ds, ok := w.find(id)
	if !ok {
		return models.Dataset{}, ErrDatasetNotFound
	}
	w.Query.Select(&ds)
	if w.store != nil {
		if err := w.store.SaveSelection(w.id, id); err != nil {
			w.logger.Warn("failed to save selection", zap.String("session", w.id), zap.Error(err))
		}
	}
	return ds, nil
}

// DeleteDataset removes a dataset on the backend and drops it locally.
func (w *Workspace) DeleteDataset(ctx context.Context, id int64) error {
	if w.mode == ModeDemo {
		return ErrDatasetNotFound
	}
	if _, err := w.datasets.DeleteDataset(ctx, id); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for i, ds := range w.list {
		if ds.ID == id {
			w.list = append(w.list[:i], w.list[i+1:]...)
			break
		}
	}
	if active := w.Query.Active(); active != nil && active.ID == id {
		w.Query.Select(nil)
		w.clearSelection()
	}
	return nil
}

// Ask submits a question through the query flow and records it in history.
func (w *Workspace) Ask(ctx context.Context, text string) (QueryState, error) {
	state, err := w.Query.Submit(ctx, text)

	outcome := "success"
	switch {
	case errors.Is(err, ErrEmptyQuery):
		w.observeQuery("invalid")
		return state, err
	case errors.Is(err, ErrSuperseded):
		w.observeQuery("superseded")
		return state, err
	case IsValidation(err):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	w.observeQuery(outcome)
	w.record(state)
	return state, err
}

// UploadFile fills the upload form and uploads a picked file.
func (w *Workspace) UploadFile(ctx context.Context, name, description string, file File) (UploadForm, error) {
	w.Upload.SetFields(name, description)
	form, err := w.Upload.Select(ctx, file)
	w.observeUpload(err)
	return form, err
}

// DropFiles fills the upload form and uploads the first CSV among dropped files.
func (w *Workspace) DropFiles(ctx context.Context, name, description string, files []File) (UploadForm, error) {
	w.Upload.SetFields(name, description)
	form, err := w.Upload.Drop(ctx, files)
	w.observeUpload(err)
	return form, err
}

// History returns the most recent entries, newest first.
func (w *Workspace) History() []models.HistoryEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.HistoryEntry(nil), w.history...)
}

type Snapshot struct {
	Session  string                `json:"session"`
	Mode     Mode                  `json:"mode"`
	Datasets []models.Dataset      `json:"datasets"`
	Active   *models.Dataset       `json:"active_dataset,omitempty"`
	Query    QueryState            `json:"query"`
	Upload   UploadForm            `json:"upload"`
	History  []models.HistoryEntry `json:"history"`
}

func (w *Workspace) Snapshot() Snapshot {
	return Snapshot{
		Session:  w.id,
		Mode:     w.mode,
		Datasets: w.Datasets(),
		Active:   w.Query.Active(),
		Query:    w.Query.State(),
		Upload:   w.Upload.Form(),
		History:  w.History(),
	}
}

// uploaded puts a new dataset at the top of the list and selects it.
func (w *Workspace) uploaded(ds models.Dataset) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.list = append([]models.Dataset{ds}, w.list...)
	w.Query.Select(&ds)
	if w.store != nil {
		if err := w.store.SaveSelection(w.id, ds.ID); err != nil {
			w.logger.Warn("failed to save selection", zap.String("session", w.id), zap.Error(err))
		}
	}
	w.logger.Info("dataset uploaded",
		zap.String("session", w.id),
		zap.Int64("dataset_id", ds.ID),
		zap.String("name", ds.Name))
}

func (w *Workspace) record(state QueryState) {
	entry := models.HistoryEntry{
		Query:     state.Query,
		Status:    string(state.Status),
		Error:     state.Error,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if state.Result != nil {
		entry.VisualizationType = state.Result.VisualizationType
	}
	if active := w.Query.Active(); active != nil {
		id := active.ID
		entry.DatasetID = &id
	}

	w.mu.Lock()
	w.history = append([]models.HistoryEntry{entry}, w.history...)
	if len(w.history) > w.historyLimit {
		w.history = w.history[:w.historyLimit]
	}
	w.mu.Unlock()

	if w.store != nil {
		if err := w.store.AppendHistory(w.id, entry); err != nil {
			w.logger.Warn("failed to store history", zap.String("session", w.id), zap.Error(err))
		}
	}
}

func (w *Workspace) observeQuery(outcome string) {
	if w.recorder != nil {
		w.recorder.ObserveQuery(string(w.mode), outcome)
	}
}

func (w *Workspace) observeUpload(err error) {
	if w.recorder == nil {
		return
	}
	outcome := "success"
	switch {
	case errors.Is(err, ErrSuperseded):
		outcome = "superseded"
	case errors.Is(err, ErrUploadUnavailable):
		outcome = "unavailable"
	case IsValidation(err):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	w.recorder.ObserveUpload(outcome)
}

func (w *Workspace) find(id int64) (models.Dataset, bool) {
	for _, ds := range w.list {
		if ds.ID == id {
			return ds, true
		}
	}
	return models.Dataset{}, false
}

func (w *Workspace) copyList() []models.Dataset {
	return append([]models.Dataset(nil), w.list...)
}

func (w *Workspace) clearSelection() {
	if w.store == nil {
		return
	}
	if err := w.store.ClearSelection(w.id); err != nil {
		w.logger.Warn("failed to clear selection", zap.String("session", w.id), zap.Error(err))
	}
}
