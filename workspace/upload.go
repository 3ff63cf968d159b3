package workspace

import (
	"context"
	"io"
	"sync"

	"insightiq/models"
	"insightiq/validation"
)

type Uploader interface {
	UploadCSV(ctx context.Context, file io.Reader, filename, datasetName, description string) (*models.UploadResponse, error)
}

type UploadStatus string

const (
	UploadIdle      UploadStatus = "idle"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
)

// File is one candidate upload, from a file picker or a drop.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type UploadForm struct {
	Name        string          `json:"dataset_name"`
	Description string          `json:"description"`
	DragOver    bool            `json:"drag_over"`
	Status      UploadStatus    `json:"status"`
	Error       string          `json:"error,omitempty"`
	Filename    string          `json:"filename,omitempty"`
	Dataset     *models.Dataset `json:"dataset,omitempty"`
}

// UploadFlow holds the upload form and runs uploads. A nil uploader disables uploads.
type UploadFlow struct {
	mu         sync.Mutex
	uploader   Uploader
	onUploaded func(models.Dataset)
	token      uint64
	form       UploadForm
}

func NewUploadFlow(u Uploader, onUploaded func(models.Dataset)) *UploadFlow {
	return &UploadFlow{
		uploader:   u,
		onUploaded: onUploaded,
		form:       UploadForm{Status: UploadIdle},
	}
}

func (f *UploadFlow) Form() UploadForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

func (f *UploadFlow) SetFields(name, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.Name = name
	f.form.Description = description
}

func (f *UploadFlow) SetDragOver(over bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.DragOver = over
}

// Select uploads a file chosen with the file picker.
func (f *UploadFlow) Select(ctx context.Context, file File) (UploadForm, error) {
	return f.Upload(ctx, file)
}

// Drop uploads the first CSV file among files.
func (f *UploadFlow) Drop(ctx context.Context, files []File) (UploadForm, error) {
	f.SetDragOver(false)
	for _, file := range files {
		if validation.IsCSVFile(file.Name, file.ContentType) {
			return f.Upload(ctx, file)
		}
	}
	return f.fail(ErrNotCSV)
}

func (f *UploadFlow) fail(err error) (UploadForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token++
	f.form.Status = UploadError
	f.form.Error = err.Error()
	f.form.Dataset = nil
	return f.form, err
}

// Upload validates the form and file locally, then sends the file to the backend.
func (f *UploadFlow) Upload(ctx context.Context, file File) (UploadForm, error) {
	if f.uploader == nil {
		return f.fail(ErrUploadUnavailable)
	}

	f.mu.Lock()
	name, ok := validation.DatasetName(f.form.Name)
	f.mu.Unlock()
	if !ok {
		return f.fail(ErrDatasetNameRequired)
	}
	if !validation.IsCSVFile(file.Name, file.ContentType) {
		return f.fail(ErrNotCSV)
	}

	f.mu.Lock()
	f.token++
	token := f.token
	description := f.form.Description
	f.form.Status = UploadUploading
	f.form.Error = ""
	f.form.Dataset = nil
	f.form.Filename = file.Name
	f.mu.Unlock()

	resp, err := f.uploader.UploadCSV(ctx, file.Content, file.Name, name, description)

	f.mu.Lock()
	if token != f.token {
		form := f.form
		f.mu.Unlock()
		return form, ErrSuperseded
	}
	if err == nil && (resp == nil || !resp.Success) {
		err = ErrUploadFailed
	}
	if err != nil {
		f.form.Status = UploadError
		f.form.Error = err.Error()
		form := f.form
		f.mu.Unlock()
		return form, err
	}

	ds := resp.Dataset
	f.form = UploadForm{Status: UploadSuccess, Filename: file.Name, Dataset: &ds}
	form := f.form
	f.mu.Unlock()

	if f.onUploaded != nil {
		f.onUploaded(ds)
	}
	return form, nil
}
