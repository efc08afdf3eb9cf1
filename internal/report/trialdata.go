package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hernandezlab/toolrep/internal/domain"
)

var trialHeader = []string{
	"participant_id", "condition", "stimulus_type", "trial_number",
	"run_number", "run_label", "trial_timestamp", "image_file", "stimulus_name",
	"stimulus_onset", "stimulus_offset", "stimulus_duration",
	"scan_start", "relative_onset", "condition_duration",
}

// Writer persists processed trial tables and reports to an output directory.
type Writer struct {
	outDir string
	logger *zap.Logger
	runID  string
}

// NewWriter creates a report writer rooted at outDir.
func NewWriter(outDir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{outDir: outDir, logger: logger}
}

// WithRunID stamps written reports with a pipeline run identifier.
func (w *Writer) WithRunID(id string) *Writer {
	w.runID = id
	return w
}

// OutDir returns the output directory the writer targets.
func (w *Writer) OutDir() string { return w.outDir }

// WriteTrialData writes the trial table as trial_data.csv and
// trial_data.xlsx, plus a data_quality_report.txt derived from the table.
// It returns the paths of the files written.
func (w *Writer) WriteTrialData(t *domain.Table) ([]string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	csvPath := filepath.Join(w.outDir, "trial_data.csv")
	if err := writeTrialCSV(csvPath, t); err != nil {
		return nil, err
	}
	w.logger.Info("wrote trial data", zap.String("path", csvPath), zap.Int("trials", t.Len()))

	xlsxPath := filepath.Join(w.outDir, "trial_data.xlsx")
	if err := writeTrialXLSX(xlsxPath, t); err != nil {
		return nil, err
	}

	qualityPath := filepath.Join(w.outDir, "data_quality_report.txt")
	quality := RenderQuality(domain.ValidateTiming(t), w.runID, time.Now())
	if err := os.WriteFile(qualityPath, []byte(quality), 0o644); err != nil {
		return nil, fmt.Errorf("write quality report: %w", err)
	}

	return []string{csvPath, xlsxPath, qualityPath}, nil
}

func writeTrialCSV(path string, t *domain.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trial csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(trialHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range t.Trials {
		if err := cw.Write(trialFields(&t.Trials[i])); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush trial csv: %w", err)
	}
	return f.Close()
}

func writeTrialXLSX(path string, t *domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Trial Data"
	f.SetSheetName("Sheet1", sheet)
	for col, name := range trialHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for row := range t.Trials {
		for col, val := range trialFields(&t.Trials[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, val)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save trial xlsx: %w", err)
	}
	return nil
}

func trialFields(tr *domain.Trial) []string {
	return []string{
		tr.ParticipantID,
		tr.Condition,
		tr.StimulusType,
		strconv.Itoa(tr.TrialNumber),
		strconv.Itoa(tr.RunNumber),
		tr.RunLabel,
		formatFloat(tr.TrialTimestamp),
		tr.ImageFile,
		tr.StimulusName,
		formatOptional(tr.StimulusOnset),
		formatOptional(tr.StimulusOffset),
		formatOptional(tr.StimulusDuration()),
		formatOptional(tr.ScanStart),
		formatOptional(tr.RelativeOnset()),
		formatOptional(tr.ConditionDuration),
	}
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
