// Package atlas catalogues AFNI brain-activation screenshots: it maps
// experimental conditions to anatomical regions, MNI coordinates and
// cluster statistics, and exports the images and tables as flat files.
package atlas

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Coord is an MNI atlas coordinate.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Region is one activation cluster within a contrast.
type Region struct {
	Name      string  `json:"region" yaml:"region"`
	MNI       Coord   `json:"mni" yaml:"mni"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	P         float64 `json:"p_value" yaml:"p"`
	Q         float64 `json:"q_value" yaml:"q"`
}

// Activation maps one experimental condition or contrast to its source
// screenshot and activation clusters.
type Activation struct {
	Condition   string   `json:"condition" yaml:"condition"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	SourceImage string   `json:"source_image" yaml:"source_image"`
	Regions     []Region `json:"regions" yaml:"regions"`
}

// Default returns the built-in condition-to-activation mapping from the
// AFNI group analysis.
func Default() []Activation {
	return []Activation{
		{
			Condition:   "clench",
			Title:       "Clench Localizer",
			Description: "Finger clenching task - M1 activation",
			SourceImage: "clench_afni.png",
			Regions: []Region{
				{Name: "Primary Motor Cortex (M1)", MNI: Coord{-40, 22, 62}, Threshold: 3.7037, P: 2.3e-4, Q: 0.0047},
			},
		},
		{
			Condition:   "imagined_grasp",
			Title:       "Imagined Grasp (Tools + Shapes)",
			Description: "Imagined grasping task - combined tools and shapes",
			SourceImage: "IGshape_tool_vs_PVshape_tool_GLT#0_Tstat.png",
			Regions: []Region{
				{Name: "Left superior frontal gyrus", MNI: Coord{24, -58, 22}, Threshold: 3.5391, P: 0.0016, Q: 0.0199},
				{Name: "Parietal lobe", MNI: Coord{24, 50, 54}, Threshold: 3.5391, P: 0.0016, Q: 0.0199},
				{Name: "LOC (Lateral Occipital Complex)", MNI: Coord{24, 90, 24}, Threshold: 3.1687, P: 0.0016, Q: 0.0199},
			},
		},
		{
			Condition:   "passive_viewing",
			Title:       "Passive Viewing: Tool vs Shape",
			Description: "Passive viewing contrast - tools vs shapes",
			SourceImage: "results.png",
			Regions: []Region{
				{Name: "LOC; V1; V2; BA 18/17", MNI: Coord{22, 100, -2}, Threshold: 3.5802, P: 3.7e-4, Q: 0.0111},
				{Name: "Left Pre/Postcentral Gyrus; BA 3-5", MNI: Coord{10, 44, 70}, Threshold: 3.5802, P: 3.7e-4, Q: 0.0111},
			},
		},
		{
			Condition:   "imagined_vs_passive",
			Title:       "Average Imagined Grasp vs Passive Viewing",
			Description: "Contrast between imagined grasp and passive viewing",
			SourceImage: "Screen Shot 2020-04-21 at 4.01.26 AM.png",
			Regions: []Region{
				{Name: "Left superior frontal gyrus", MNI: Coord{22, -54, 18}, Threshold: 3.5391, P: 4.4e-4, Q: 0.0533},
				{Name: "Brodmann Area 6", MNI: Coord{22, 10, 68}, Threshold: 3.5391, P: 4.4e-4, Q: 0.0533},
				{Name: "Left superior parietal lobe", MNI: Coord{22, 48, 68}, Threshold: 3.5391, P: 4.4e-4, Q: 0.0533},
			},
		},
	}
}

// LoadYAML reads an activation mapping from a YAML file, replacing the
// built-in table.
func LoadYAML(path string) ([]Activation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas file: %w", err)
	}
	var doc struct {
		Activations []Activation `yaml:"activations"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse atlas file: %w", err)
	}
	if len(doc.Activations) == 0 {
		return nil, errors.New("atlas file defines no activations")
	}
	for _, a := range doc.Activations {
		if a.Condition == "" {
			return nil, errors.New("atlas entry missing condition")
		}
	}
	return doc.Activations, nil
}

// Summary renders a human-readable overview of the activation table.
func Summary(activations []Activation) string {
	var b strings.Builder
	b.WriteString("BRAIN IMAGE PROCESSING SUMMARY\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	for _, a := range sortedByCondition(activations) {
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(a.Title))
		fmt.Fprintf(&b, "  Description: %s\n", a.Description)
		names := make([]string, len(a.Regions))
		for i, r := range a.Regions {
			names[i] = r.Name
		}
		fmt.Fprintf(&b, "  Brain Regions: %s\n", strings.Join(names, ", "))
		b.WriteString("  MNI Coordinates:\n")
		for _, r := range a.Regions {
			fmt.Fprintf(&b, "    %s: (%d, %d, %d)\n", r.Name, r.MNI.X, r.MNI.Y, r.MNI.Z)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sortedByCondition(activations []Activation) []Activation {
	out := append([]Activation(nil), activations...)
	sort.Slice(out, func(i, j int) bool { return out[i].Condition < out[j].Condition })
	return out
}
