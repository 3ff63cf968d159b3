package workspace

import (
	"context"
	"fmt"
	"sync"

	"insightiq/models"
	"insightiq/render"
	"insightiq/validation"
)

type Querier interface {
	ProcessQuery(ctx context.Context, req models.QueryRequest) (*models.QueryResponse, error)
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusResult  Status = "result"
	StatusError   Status = "error"
)

// QueryState is what the result area shows. Query is always the text that produced
// the result or the error.
type QueryState struct {
	Status   Status                `json:"status"`
	Query    string                `json:"query,omitempty"`
	Result   *models.QueryResponse `json:"result,omitempty"`
	ViewKind render.Kind           `json:"view_kind,omitempty"`
	View     render.View           `json:"view,omitempty"`
	Error    string                `json:"error,omitempty"`
	Token    uint64                `json:"token"`
}

// QueryFlow owns the active dataset and the state of the latest submitted question.
// Every submission takes a new token; a response is applied only while its token is
// still the newest.
type QueryFlow struct {
	mu             sync.Mutex
	querier        Querier
	requireDataset bool
	active         *models.Dataset
	token          uint64
	state          QueryState
}

func NewQueryFlow(q Querier, requireDataset bool) *QueryFlow {
	return &QueryFlow{
		querier:        q,
		requireDataset: requireDataset,
		state:          QueryState{Status: StatusIdle},
	}
}

// Select makes ds the active dataset. nil clears the selection.
func (f *QueryFlow) Select(ds *models.Dataset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ds == nil {
		f.active = nil
		return
	}
	cp := *ds
	f.active = &cp
}

func (f *QueryFlow) Active() *models.Dataset {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		return nil
	}
	cp := *f.active
	return &cp
}

func (f *QueryFlow) State() QueryState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Reset returns to the idle state and drops any response still in flight.
func (f *QueryFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token++
	f.state = QueryState{Status: StatusIdle, Token: f.token}
}

// Submit runs one question. The prior result and error are cleared before the call.
// The returned state is the flow's state after this submission, or the newer state
// when ErrSuperseded is returned.
func (f *QueryFlow) Submit(ctx context.Context, text string) (QueryState, error) {
	query, ok := validation.QueryText(text)
	if !ok {
		return f.State(), ErrEmptyQuery
	}

	f.mu.Lock()
	f.token++
	token := f.token
	if f.requireDataset && f.active == nil {
		f.state = QueryState{Status: StatusError, Query: query, Error: ErrNoDataset.Error(), Token: token}
		st := f.state
		f.mu.Unlock()
		return st, ErrNoDataset
	}
	req := models.QueryRequest{Query: query}
	if f.active != nil {
		id := f.active.ID
		req.DatasetID = &id
	}
	f.state = QueryState{Status: StatusLoading, Query: query, Token: token}
	f.mu.Unlock()

	resp, err := f.querier.ProcessQuery(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.token {
		return f.state, ErrSuperseded
	}

	next := QueryState{Query: query, Token: token}
	switch {
	case err != nil:
		next.Status = StatusError
		next.Error = err.Error()
	case resp == nil || !resp.Success:
		msg := "Query failed"
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		next.Status = StatusError
		next.Error = msg
		err = fmt.Errorf("%w: %s", ErrQueryFailed, msg)
	default:
		view := render.Build(resp)
		next.Status = StatusResult
		next.Result = resp
		next.View = view
		next.ViewKind = view.Kind()
	}
	f.state = next
	return next, err
}
