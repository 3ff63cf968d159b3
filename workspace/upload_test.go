package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightiq/models"
)

func csvFile(name string) File {
	return File{Name: name, ContentType: "text/csv", Content: strings.NewReader("a,b\n1,2\n")}
}

func uploadOK(name string) (*models.UploadResponse, error) {
	return &models.UploadResponse{Success: true, Dataset: models.Dataset{ID: 42, Name: name}}, nil
}

func TestUploadFlow_RequiresName(t *testing.T) {
	fb := &fakeBackend{upload: uploadOK}
	f := NewUploadFlow(fb, nil)

	form, err := f.Select(context.Background(), csvFile("x.csv"))
	assert.ErrorIs(t, err, ErrDatasetNameRequired)
	assert.Equal(t, UploadError, form.Status)
	assert.Equal(t, "Please enter a dataset name", form.Error)
	assert.Empty(t, fb.uploads)
}

func TestUploadFlow_RejectsNonCSV(t *testing.T) {
	fb := &fakeBackend{upload: uploadOK}
	f := NewUploadFlow(fb, nil)
	f.SetFields("Sales", "")

	form, err := f.Select(context.Background(), File{Name: "x.xlsx", Content: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrNotCSV)
	assert.Equal(t, "Please upload a CSV file", form.Error)
	assert.Empty(t, fb.uploads)
}

func TestUploadFlow_SuccessClearsFields(t *testing.T) {
	fb := &fakeBackend{upload: uploadOK}
	var got models.Dataset
	f := NewUploadFlow(fb, func(ds models.Dataset) { got = ds })
	f.SetFields("Sales", "Q3 numbers")

	form, err := f.Select(context.Background(), csvFile("sales.csv"))
	require.NoError(t, err)
	assert.Equal(t, UploadSuccess, form.Status)
	assert.Empty(t, form.Name)
	assert.Empty(t, form.Description)
	require.NotNil(t, form.Dataset)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, []string{"sales.csv|Sales|Q3 numbers"}, fb.uploads)
}

func TestUploadFlow_FailureKeepsFields(t *testing.T) {
	fb := &fakeBackend{upload: func(string) (*models.UploadResponse, error) {
		return nil, errors.New("Invalid CSV")
	}}
	f := NewUploadFlow(fb, nil)
	f.SetFields("Sales", "desc")

	form, err := f.Select(context.Background(), csvFile("sales.csv"))
	require.Error(t, err)
	assert.Equal(t, UploadError, form.Status)
	assert.Equal(t, "Invalid CSV", form.Error)
	assert.Equal(t, "Sales", form.Name)
	assert.Equal(t, "desc", form.Description)
}

func TestUploadFlow_UnsuccessfulResponse(t *testing.T) {
	fb := &fakeBackend{upload: func(string) (*models.UploadResponse, error) {
		return &models.UploadResponse{Success: false}, nil
	}}
	f := NewUploadFlow(fb, nil)
	f.SetFields("Sales", "")

	form, err := f.Select(context.Background(), csvFile("sales.csv"))
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, "Upload failed", form.Error)
}

func TestUploadFlow_DropPicksFirstCSV(t *testing.T) {
	fb := &fakeBackend{upload: uploadOK}
	f := NewUploadFlow(fb, nil)
	f.SetFields("Sales", "")
	f.SetDragOver(true)

	form, err := f.Drop(context.Background(), []File{
		{Name: "notes.txt", Content: strings.NewReader("x")},
		csvFile("one.csv"),
		csvFile("two.csv"),
	})
	require.NoError(t, err)
	assert.False(t, form.DragOver)
	assert.Equal(t, []string{"one.csv|Sales|"}, fb.uploads)
}

func TestUploadFlow_DropWithoutCSV(t *testing.T) {
	fb := &fakeBackend{upload: uploadOK}
	f := NewUploadFlow(fb, nil)
	f.SetFields("Sales", "")

	form, err := f.Drop(context.Background(), []File{{Name: "a.png", Content: strings.NewReader("")}})
	assert.ErrorIs(t, err, ErrNotCSV)
	assert.Equal(t, UploadError, form.Status)
	assert.Empty(t, fb.uploads)
}

func TestUploadFlow_Unavailable(t *testing.T) {
	f := NewUploadFlow(nil, nil)
	f.SetFields("Sales", "")

	_, err := f.Select(context.Background(), csvFile("a.csv"))
	assert.ErrorIs(t, err, ErrUploadUnavailable)
}

func TestUploadFlow_StaleCompletionDiscarded(t *testing.T) {
	slow := make(chan struct{})
	fb := &fakeBackend{upload: func(name string) (*models.UploadResponse, error) {
		if name == "Old" {
			<-slow
			return &models.UploadResponse{Success: true, Dataset: models.Dataset{ID: 1, Name: name}}, nil
		}
		return &models.UploadResponse{Success: true, Dataset: models.Dataset{ID: 2, Name: name}}, nil
	}}
	var uploaded []int64
	f := NewUploadFlow(fb, func(ds models.Dataset) { uploaded = append(uploaded, ds.ID) })

	f.SetFields("Old", "")
	errCh := make(chan error, 1)
	go func() {
		_, err := f.Select(context.Background(), csvFile("old.csv"))
		errCh <- err
	}()
	require.Eventually(t, func() bool { return fb.uploadCount() == 1 }, time.Second, 5*time.Millisecond)

	f.SetFields("New", "")
	form, err := f.Select(context.Background(), csvFile("new.csv"))
	require.NoError(t, err)
	require.NotNil(t, form.Dataset)
	assert.Equal(t, int64(2), form.Dataset.ID)

	close(slow)
	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	final := f.Form()
	assert.Equal(t, UploadSuccess, final.Status)
	assert.Equal(t, "new.csv", final.Filename)
	require.NotNil(t, final.Dataset)
	assert.Equal(t, int64(2), final.Dataset.ID)
	assert.Equal(t, []int64{2}, uploaded)
}
