package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"boxtrack/internal/models"
)

const (
	exportSheetName  = "IoT Boxes"
	exportTimeFormat = "2006-01-02 15:04:05"
)

var exportHeader = []any{
	"ID", "MAC Address", "IP Address", "Main Equipment", "Location",
	"Process", "Manager", "Note", "Created At", "Updated At",
}

// handleExportExcel streams the filtered, unpaginated result set as a
// spreadsheet attachment, newest first, matching the list ordering.
func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	process := r.URL.Query().Get("process")

	boxes, err := s.repo.ListFiltered(r.Context(), search, process)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	f, err := buildWorkbook(boxes)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("iot_boxes_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(w); err != nil {
		s.logger.Error("writing spreadsheet response", "error", err)
	}
}

// buildWorkbook renders boxes into a single-sheet workbook. Null
// optional fields become empty cells.
func buildWorkbook(boxes []models.Box) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming export sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheetName, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing export header: %w", err)
	}

	for i, b := range boxes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("locating export row: %w", err)
		}
		row := []any{
			b.ID,
			b.MACAddress,
			deref(b.IPAddress),
			deref(b.MainEquipment),
			deref(b.Location),
			b.Process,
			deref(b.Manager),
			deref(b.Note),
			b.CreatedAt.Format(exportTimeFormat),
			b.UpdatedAt.Format(exportTimeFormat),
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing export row: %w", err)
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
