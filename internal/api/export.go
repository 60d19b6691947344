package api

import (
	"encoding/csv" // CSV writer
	"io"           // Output stream
	"strconv"      // Integer formatting
	"strings"      // Format normalisation

	"service_reporting/internal/apperr"   // Error kinds
	"service_reporting/internal/services" // Export rows

	"github.com/xuri/excelize/v2" // Excel workbook writer
)

// Supported export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

const exportSheet = "Reports" // Worksheet name in the xlsx export

var exportHeader = []string{"Department", "Month", "Year", "Service Count"}

// exporter describes how one format is written and served
type exporter struct {
	contentType string
	filename    string
	write       func(w io.Writer, rows []services.ExportRow) error
}

var exporters = map[string]exporter{
	FormatCSV: {
		contentType: "text/csv",
		filename:    "reports.csv",
		write:       writeCSV,
	},
	FormatExcel: {
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		filename:    "reports.xlsx",
		write:       writeExcel,
	},
}

// exporterFor resolves a case-insensitive format name, defaulting to csv
func exporterFor(format string) (exporter, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	e, ok := exporters[format]
	if !ok {
		return exporter{}, apperr.Validation("Invalid format")
	}
	return e, nil
}

func writeCSV(w io.Writer, rows []services.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.Department, strconv.Itoa(r.Month), strconv.Itoa(r.Year), strconv.Itoa(r.ServiceCount)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeExcel(w io.Writer, rows []services.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	for i, header := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return err
		}
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &[]any{r.Department, r.Month, r.Year, r.ServiceCount}); err != nil {
			return err
		}
	}
	return f.Write(w)
}
