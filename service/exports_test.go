package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightiq/models"
)

func newTestStorage(t *testing.T) *ExportStorage {
	t.Helper()
	s, err := NewExportStorage(filepath.Join(t.TempDir(), "exports"))
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}
	return s
}

func sampleResponse() *models.QueryResponse {
	return &models.QueryResponse{
		Success:           true,
		Query:             "revenue by month",
		VisualizationType: "bar",
		Data: []models.Row{
			models.NewRow("month", "Jan", "revenue", 4000.5),
			models.NewRow("month", "Feb", "revenue", 3000),
		},
	}
}

func TestSave_JSON(t *testing.T) {
	s := newTestStorage(t)

	info, err := s.Save(sampleResponse(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", info.Format)
	assert.Greater(t, info.Size, int64(0))

	got, err := s.Get(info.Filename)
	require.NoError(t, err)
	assert.Equal(t, "revenue by month", got.Query)
	assert.Equal(t, []string{"month", "revenue"}, got.Columns)
	assert.Equal(t, 2, got.RowCount)
	assert.Equal(t, "Jan", got.Rows[0][0])
}

func TestSave_CSV(t *testing.T) {
	s := newTestStorage(t)

	info, err := s.Save(sampleResponse(), "CSV")
	require.NoError(t, err)
	assert.Equal(t, "csv", info.Format)

	data, err := os.ReadFile(filepath.Join(s.exportsDir, info.Filename))
	require.NoError(t, err)
	assert.Equal(t, "month,revenue\nJan,4000.5\nFeb,3000\n", string(data))

	got, err := s.Get(info.Filename)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RowCount)
}

func TestSave_XLSX(t *testing.T) {
	s := newTestStorage(t)

	info, err := s.Save(sampleResponse(), "xlsx")
	require.NoError(t, err)

	got, err := s.Get(info.Filename)
	require.NoError(t, err)
	assert.Equal(t, []string{"month", "revenue"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Feb", got.Rows[1][0])
}

func TestSave_Errors(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Save(nil, "json")
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = s.Save(sampleResponse(), "pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestList(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Save(sampleResponse(), "json")
	require.NoError(t, err)
	_, err = s.Save(sampleResponse(), "csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.exportsDir, "notes.txt"), []byte("x"), 0644))

	files, err := s.List()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestPath_RejectsTraversal(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Path("../secret.json")
	assert.ErrorIs(t, err, ErrInvalidFilename)

	_, err = s.Path("report.exe")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	p, err := s.Path("report.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.exportsDir, "report.csv"), p)
}
