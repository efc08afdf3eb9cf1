// Package plot renders behavioral analysis figures as PNG files.
package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/hernandezlab/toolrep/internal/domain"
)

// Renderer draws figures for a trial table into an output directory.
type Renderer struct {
	outDir string
	logger *zap.Logger
	width  vg.Length
	height vg.Length
}

// NewRenderer creates a figure renderer rooted at outDir with the default
// 8x5 inch figure size.
func NewRenderer(outDir string, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		outDir: outDir,
		logger: logger,
		width:  8 * vg.Inch,
		height: 5 * vg.Inch,
	}
}

// WithSize overrides the figure dimensions, given in inches.
func (r *Renderer) WithSize(width, height float64) *Renderer {
	if width > 0 {
		r.width = vg.Length(width) * vg.Inch
	}
	if height > 0 {
		r.height = vg.Length(height) * vg.Inch
	}
	return r
}

// RenderAll renders every figure the table supports and returns the written
// paths. Figures with no usable data are skipped, not treated as errors.
func (r *Renderer) RenderAll(t *domain.Table) ([]string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create figure dir: %w", err)
	}

	var paths []string
	renderers := []struct {
		name string
		fn   func(*domain.Table, string) error
	}{
		{"behavioral_results.png", r.OnsetsByCategory},
		{"onsets_by_condition.png", r.OnsetsByCondition},
		{"timing_distribution.png", r.TimingHistogram},
		{"trials_per_condition.png", r.TrialCounts},
	}
	for _, rd := range renderers {
		path := filepath.Join(r.outDir, rd.name)
		if err := rd.fn(t, path); err != nil {
			r.logger.Warn("figure skipped", zap.String("figure", rd.name), zap.Error(err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// OnsetsByCategory draws box plots of stimulus onsets for tool and shape
// trials.
func (r *Renderer) OnsetsByCategory(t *domain.Table, path string) error {
	groups := []struct {
		label  string
		onsets []float64
	}{
		{"Tools", t.Tools().Onsets()},
		{"Shapes", t.Shapes().Onsets()},
	}

	p := plot.New()
	p.Title.Text = "Stimulus Onsets by Category"
	p.Y.Label.Text = "Onset (s)"

	var labels []string
	var loc float64
	for _, g := range groups {
		if len(g.onsets) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), loc, plotter.Values(g.onsets))
		if err != nil {
			return fmt.Errorf("box plot %s: %w", g.label, err)
		}
		p.Add(box)
		labels = append(labels, g.label)
		loc++
	}
	if len(labels) == 0 {
		return fmt.Errorf("no onset data for category plot")
	}
	p.NominalX(labels...)
	return r.savePlot(p, path)
}

// OnsetsByCondition draws box plots of stimulus onsets per task condition.
func (r *Renderer) OnsetsByCondition(t *domain.Table, path string) error {
	conditions := t.Conditions()

	p := plot.New()
	p.Title.Text = "Stimulus Onsets by Condition"
	p.Y.Label.Text = "Onset (s)"

	var labels []string
	var loc float64
	for _, c := range conditions {
		onsets := t.ByCondition(c).Onsets()
		if len(onsets) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(25), loc, plotter.Values(onsets))
		if err != nil {
			return fmt.Errorf("box plot %s: %w", c, err)
		}
		p.Add(box)
		labels = append(labels, c)
		loc++
	}
	if len(labels) == 0 {
		return fmt.Errorf("no onset data for condition plot")
	}
	p.NominalX(labels...)
	return r.savePlot(p, path)
}

// TimingHistogram draws the distribution of stimulus onset times.
func (r *Renderer) TimingHistogram(t *domain.Table, path string) error {
	onsets := t.Onsets()
	if len(onsets) == 0 {
		return fmt.Errorf("no onset data for histogram")
	}

	p := plot.New()
	p.Title.Text = "Stimulus Onset Distribution"
	p.X.Label.Text = "Onset (s)"
	p.Y.Label.Text = "Trials"

	hist, err := plotter.NewHist(plotter.Values(onsets), 20)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	p.Add(hist)
	return r.savePlot(p, path)
}

// TrialCounts draws a bar chart of trial counts per condition.
func (r *Renderer) TrialCounts(t *domain.Table, path string) error {
	conditions := t.Conditions()
	if len(conditions) == 0 {
		return fmt.Errorf("no conditions for trial count plot")
	}
	sort.Strings(conditions)

	counts := make(plotter.Values, len(conditions))
	for i, c := range conditions {
		counts[i] = float64(t.ByCondition(c).Len())
	}

	p := plot.New()
	p.Title.Text = "Trials per Condition"
	p.Y.Label.Text = "Trials"

	bars, err := plotter.NewBarChart(counts, vg.Points(30))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(conditions...)
	return r.savePlot(p, path)
}

func (r *Renderer) savePlot(p *plot.Plot, path string) error {
	if err := p.Save(r.width, r.height, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}
