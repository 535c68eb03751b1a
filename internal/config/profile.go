package config

import (
	"fmt"
	"ftm-analyzer/internal/config/shared"
	"ftm-analyzer/internal/models"
	"gopkg.in/yaml.v3"
	"math"
	"os"
	"strings"
)

// profileFile mirrors models.Profile with optional fields so a partial YAML
// document only overrides what it names.
type profileFile struct {
	Flows *struct {
		Static string `yaml:"static"`
		Mobile string `yaml:"mobile"`
	} `yaml:"flows"`
	Phases []struct {
		Name string   `yaml:"name"`
		Lo   *float64 `yaml:"lo"`
		Hi   *float64 `yaml:"hi"`
	} `yaml:"phases"`
	Thresholds *struct {
		FarDistance            *float64 `yaml:"far_distance_m"`
		MinFarThroughput       *float64 `yaml:"min_far_throughput_mbps"`
		WeakRSSI               *float64 `yaml:"weak_rssi_dbm"`
		HighLoss               *float64 `yaml:"high_loss_pct"`
		MaxStaticThroughputStd *float64 `yaml:"max_static_throughput_std"`
	} `yaml:"thresholds"`
	Chart *struct {
		TargetThroughput *float64 `yaml:"target_throughput_mbps"`
		WeakSignalLine   *float64 `yaml:"weak_signal_line_dbm"`
		TargetPDR        *float64 `yaml:"target_pdr_pct"`
	} `yaml:"chart"`
}

func LoadProfile(path string) (models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	return ParseProfile(data)
}

func ParseProfile(data []byte) (models.Profile, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse profile file: %w", err)
	}

	profile := models.DefaultProfile()

	if file.Flows != nil {
		if file.Flows.Static != "" {
			profile.Flows.Static = file.Flows.Static
		}
		if file.Flows.Mobile != "" {
			profile.Flows.Mobile = file.Flows.Mobile
		}
	}

	if len(file.Phases) > 0 {
		phases := make([]models.PhaseWindow, 0, len(file.Phases))
		for i, p := range file.Phases {
			window := models.PhaseWindow{
				Name: strings.TrimSpace(p.Name),
				Lo:   math.Inf(-1),
				Hi:   math.Inf(1),
			}
			if window.Name == "" {
				window.Name = fmt.Sprintf("Phase %d", i+1)
			}
			if p.Lo != nil {
				window.Lo = *p.Lo
			}
			if p.Hi != nil {
				window.Hi = *p.Hi
			}
			phases = append(phases, window)
		}
		profile.Phases = phases
	}

	if t := file.Thresholds; t != nil {
		override(&profile.Thresholds.FarDistance, t.FarDistance)
		override(&profile.Thresholds.MinFarThroughput, t.MinFarThroughput)
		override(&profile.Thresholds.WeakRSSI, t.WeakRSSI)
		override(&profile.Thresholds.HighLoss, t.HighLoss)
		override(&profile.Thresholds.MaxStaticThroughputStd, t.MaxStaticThroughputStd)
	}

	if c := file.Chart; c != nil {
		override(&profile.Chart.TargetThroughput, c.TargetThroughput)
		override(&profile.Chart.WeakSignalLine, c.WeakSignalLine)
		override(&profile.Chart.TargetPDR, c.TargetPDR)
	}

	return profile, ValidateProfile(profile)
}

func override(dst *float64, value *float64) {
	if value != nil {
		*dst = *value
	}
}

func ValidateProfile(p models.Profile) error {
	if strings.TrimSpace(p.Flows.Static) == "" {
		return shared.NewConfigError("profile", "flows.static", nil, "flow label is required")
	}
	if strings.TrimSpace(p.Flows.Mobile) == "" {
		return shared.NewConfigError("profile", "flows.mobile", nil, "flow label is required")
	}
	if p.Flows.Static == p.Flows.Mobile {
		return shared.NewConfigError("profile", "flows", p.Flows.Static, "static and mobile flow labels must differ")
	}

	for i, w := range p.Phases {
		if math.IsNaN(w.Lo) || math.IsNaN(w.Hi) {
			return shared.NewConfigError("profile", fmt.Sprintf("phases[%d]", i), w.Name, "bounds must be numbers")
		}
		if w.Hi <= w.Lo {
			return shared.NewConfigError("profile", fmt.Sprintf("phases[%d]", i), w.String(), "hi must be greater than lo")
		}
		if i > 0 && w.Lo < p.Phases[i-1].Hi {
			return shared.NewConfigError("profile", fmt.Sprintf("phases[%d]", i), w.String(), "phases must be ordered and must not overlap")
		}
	}

	thresholds := []struct {
		field string
		value float64
	}{
		{"thresholds.far_distance_m", p.Thresholds.FarDistance},
		{"thresholds.min_far_throughput_mbps", p.Thresholds.MinFarThroughput},
		{"thresholds.weak_rssi_dbm", p.Thresholds.WeakRSSI},
		{"thresholds.high_loss_pct", p.Thresholds.HighLoss},
		{"thresholds.max_static_throughput_std", p.Thresholds.MaxStaticThroughputStd},
	}
	for _, t := range thresholds {
		if math.IsNaN(t.value) || math.IsInf(t.value, 0) {
			return shared.NewConfigError("profile", t.field, t.value, "must be a finite number")
		}
	}

	return nil
}
