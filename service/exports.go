package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"insightiq/models"
	"insightiq/render"
	"insightiq/validation"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	sheetName = "Result"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidFilename   = errors.New("invalid filename")
	ErrNoResult          = errors.New("no query result to export")
)

// ExportStorage writes query results to files in a single directory.
type ExportStorage struct {
	exportsDir string
	now        func() time.Time
}

func NewExportStorage(exportsDir string) (*ExportStorage, error) {
	if err := os.MkdirAll(exportsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}

	return &ExportStorage{exportsDir: exportsDir, now: time.Now}, nil
}

// GenerateFileName creates a unique filename with timestamp
func (s *ExportStorage) GenerateFileName(format string) string {
	now := s.now()
	return fmt.Sprintf("report_%s_%d.%s", now.Format("20060102_150405"), now.UnixNano(), format)
}

// Save writes resp in the given format and returns the new file's info.
func (s *ExportStorage) Save(resp *models.QueryResponse, format string) (models.ExportFileInfo, error) {
	if resp == nil {
		return models.ExportFileInfo{}, ErrNoResult
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}

	var (
		filename string
		err      error
	)
	switch format {
	case FormatJSON:
		filename, err = s.SaveJSON(resp)
	case FormatCSV:
		filename, err = s.SaveCSV(resp)
	case FormatXLSX:
		filename, err = s.SaveXLSX(resp)
	default:
		return models.ExportFileInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return models.ExportFileInfo{}, err
	}

	info, err := os.Stat(filepath.Join(s.exportsDir, filename))
	if err != nil {
		return models.ExportFileInfo{}, err
	}
	return fileInfo(filename, info), nil
}

func rowsOf(resp *models.QueryResponse) [][]interface{} {
	rows := make([][]interface{}, len(resp.Data))
	for i, r := range resp.Data {
		rows[i] = r.Values()
	}
	return rows
}

func (s *ExportStorage) SaveJSON(resp *models.QueryResponse) (string, error) {
	filename := s.GenerateFileName(FormatJSON)
	rows := rowsOf(resp)

	file := models.ExportFile{
		Filename:          filename,
		Query:             resp.Query,
		VisualizationType: resp.VisualizationType,
		Timestamp:         s.now().Format(time.RFC3339),
		Columns:           resp.Columns(),
		Rows:              rows,
		RowCount:          len(rows),
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.exportsDir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return filename, nil
}

func (s *ExportStorage) SaveCSV(resp *models.QueryResponse) (string, error) {
	filename := s.GenerateFileName(FormatCSV)

	f, err := os.Create(filepath.Join(s.exportsDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resp.Columns()); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rowsOf(resp) {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = render.Stringify(v)
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return filename, nil
}

func (s *ExportStorage) SaveXLSX(resp *models.QueryResponse) (string, error) {
	filename := s.GenerateFileName(FormatXLSX)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{render.Palette[0]}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	columns := resp.Columns()
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return "", err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return "", err
		}
	}

	for r, row := range rowsOf(resp) {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(v)); err != nil {
				return "", err
			}
		}
	}

	if n := len(columns); n > 0 {
		last, _ := excelize.ColumnNumberToName(n)
		if err := f.SetColWidth(sheetName, "A", last, 18); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(filepath.Join(s.exportsDir, filename)); err != nil {
		return "", fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return filename, nil
}

// cellValue keeps numbers numeric in the sheet.
func cellValue(v interface{}) interface{} {
	if n, ok := render.Number(v); ok {
		return n
	}
	if v == nil {
		return ""
	}
	return render.Stringify(v)
}

// Get reads an export file back.
func (s *ExportStorage) Get(filename string) (*models.ExportFile, error) {
	path, err := s.Path(filename)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(filename) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		var file models.ExportFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
		return &file, nil

	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		return s.fromRecords(filename, path, records)

	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open XLSX file: %w", err)
		}
		defer f.Close()

		records, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, fmt.Errorf("failed to read rows: %w", err)
		}
		return s.fromRecords(filename, path, records)
	}

	return nil, ErrUnsupportedFormat
}

// fromRecords treats the first record as the header.
func (s *ExportStorage) fromRecords(filename, path string, records [][]string) (*models.ExportFile, error) {
	file := &models.ExportFile{
		Filename: filename,
		Columns:  []string{},
		Rows:     [][]interface{}{},
	}
	if info, err := os.Stat(path); err == nil {
		file.Timestamp = info.ModTime().Format(time.RFC3339)
	}
	if len(records) == 0 {
		return file, nil
	}

	file.Columns = records[0]
	for _, record := range records[1:] {
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = v
		}
		file.Rows = append(file.Rows, row)
	}
	file.RowCount = len(file.Rows)
	return file, nil
}

// List returns all export files
func (s *ExportStorage) List() ([]models.ExportFileInfo, error) {
	entries, err := os.ReadDir(s.exportsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read exports directory: %w", err)
	}

	files := []models.ExportFileInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo(entry.Name(), info))
	}
	return files, nil
}

// Path resolves filename inside the exports directory.
func (s *ExportStorage) Path(filename string) (string, error) {
	name, ok := validation.SafeFilename(filename)
	if !ok {
		return "", ErrInvalidFilename
	}
	if !supported(name) {
		return "", ErrUnsupportedFormat
	}
	return filepath.Join(s.exportsDir, name), nil
}

func supported(name string) bool {
	switch filepath.Ext(name) {
	case ".json", ".csv", ".xlsx":
		return true
	}
	return false
}

func fileInfo(name string, info os.FileInfo) models.ExportFileInfo {
	return models.ExportFileInfo{
		Filename: name,
		Size:     info.Size(),
		Modified: info.ModTime().Format(time.RFC3339),
		Format:   strings.TrimPrefix(filepath.Ext(name), "."),
	}
}
