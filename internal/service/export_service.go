package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// ExportFormat - формат выгрузки статистики
type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"

	exportSheet = "Performance"
)

var exportHeader = []string{"Word", "Definition", "Correct", "Incorrect", "Total", "Accuracy %"}

// ExportFile - готовый к отдаче файл
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService выгружает персональную статистику в xlsx или csv
type ExportService struct {
	perfService *PerformanceService
}

// NewExportService создает сервис выгрузки
func NewExportService(perfService *PerformanceService) *ExportService {
	return &ExportService{perfService: perfService}
}

// ExportUserStats формирует файл со статистикой пользователя по всем словам
func (s *ExportService) ExportUserStats(ctx context.Context, userID uint, format ExportFormat) (*ExportFile, error) {
	if format == "" {
		format = ExportXLSX
	}
	if format != ExportXLSX && format != ExportCSV {
		return nil, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, format)
	}

	stats, err := s.perfService.WordStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("vocab-performance-%d.%s", userID, format)
	if format == ExportCSV {
		data, err := statsToCSV(stats)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Filename: filename, ContentType: "text/csv", Data: data}, nil
	}

	data, err := statsToXLSX(stats)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename:    filename,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

func statsRow(ws entity.WordStat) []string {
	return []string{
		ws.Word,
		ws.Definition,
		strconv.Itoa(ws.Correct),
		strconv.Itoa(ws.Incorrect),
		strconv.Itoa(ws.Total),
		strconv.Itoa(ws.Accuracy),
	}
}

func statsToCSV(stats []entity.WordStat) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, ws := range stats {
		if err := w.Write(statsRow(ws)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func statsToXLSX(stats []entity.WordStat) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, ws := range stats {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{ws.Word, ws.Definition, ws.Correct, ws.Incorrect, ws.Total, ws.Accuracy}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
