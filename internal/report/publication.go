package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hernandezlab/toolrep/internal/domain"
	"github.com/hernandezlab/toolrep/internal/stats"
)

// WritePublication writes the publication-ready result set: summary
// statistics as JSON, the flattened results table as CSV and XLSX, the
// comprehensive text report, and the full analysis results as JSON. It
// returns a map of artifact names to written paths.
func (w *Writer) WritePublication(t *domain.Table, rep *stats.Report) (map[string]string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	now := time.Now()
	paths := map[string]string{}

	summaryPath := filepath.Join(w.outDir, "summary_statistics.json")
	if err := writeJSON(summaryPath, BuildSummary(t)); err != nil {
		return nil, err
	}
	paths["summary_statistics"] = summaryPath

	rows := BuildResultsTable(rep)
	csvPath := filepath.Join(w.outDir, "results_table.csv")
	if err := writeResultsCSV(csvPath, rows); err != nil {
		return nil, err
	}
	paths["results_table_csv"] = csvPath

	xlsxPath := filepath.Join(w.outDir, "results_table.xlsx")
	if err := writeResultsXLSX(xlsxPath, rows); err != nil {
		return nil, err
	}
	paths["results_table_xlsx"] = xlsxPath

	textPath := filepath.Join(w.outDir, "comprehensive_report.txt")
	if err := os.WriteFile(textPath, []byte(RenderText(rep, w.runID, now)), 0o644); err != nil {
		return nil, fmt.Errorf("write text report: %w", err)
	}
	paths["comprehensive_report"] = textPath

	resultsPath := filepath.Join(w.outDir, "analysis_results.json")
	if err := writeJSON(resultsPath, rep); err != nil {
		return nil, err
	}
	paths["analysis_results"] = resultsPath

	w.logger.Info("wrote publication outputs",
		zap.String("dir", w.outDir),
		zap.Int("results_rows", len(rows)))
	return paths, nil
}

// WriteHTML renders the analysis report as a standalone HTML page.
func (w *Writer) WriteHTML(t *domain.Table, rep *stats.Report) (string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.outDir, "analysis_report.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create html report: %w", err)
	}
	defer f.Close()

	page := ReportPage(BuildSummary(t), rep, BuildResultsTable(rep), w.runID, time.Now())
	if err := page.Render(context.Background(), f); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close html report: %w", err)
	}
	w.logger.Info("wrote html report", zap.String("path", path))
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeResultsCSV(path string, rows []ResultsRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(ResultsHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Fields()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush results csv: %w", err)
	}
	return f.Close()
}

func writeResultsXLSX(path string, rows []ResultsRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Statistical Results"
	f.SetSheetName("Sheet1", sheet)
	for col, name := range ResultsHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for row, r := range rows {
		for col, val := range r.Fields() {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, val)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save results xlsx: %w", err)
	}
	return nil
}
