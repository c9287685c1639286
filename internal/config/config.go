// Package config loads the pipeline's runtime configuration: the
// algorithm tolerances from spec section 4 plus the small amount of
// operational config (sink target, log level) the CLI needs. Mirrors the
// shape of core/backend/config.Config, trimmed to what a geometry-only
// service carries.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AlgorithmConfig collects every tunable constant named in the
// specification. The json tags give each field's serialized name; the
// stage artifacts the executor persists do not include this struct.
type AlgorithmConfig struct {
	// Normalize
	Epsilon float64 `mapstructure:"epsilon" json:"epsilon"`

	// Wall-candidate detector (section 4.6)
	AngularToleranceDeg  float64 `mapstructure:"angular_tolerance_deg" json:"angular_tolerance_deg"`
	MinDistanceMM        float64 `mapstructure:"min_distance_mm" json:"min_distance_mm"`
	MaxDistanceMM        float64 `mapstructure:"max_distance_mm" json:"max_distance_mm"`
	MinOverlapPercentage float64 `mapstructure:"min_overlap_percentage" json:"min_overlap_percentage"`
	MaxLineCount         int     `mapstructure:"max_line_count" json:"max_line_count"`

	// LOGIC_D containment (section 4.9)
	ContainmentToleranceMM float64 `mapstructure:"containment_tolerance_mm" json:"containment_tolerance_mm"`

	// LOGIC_E band merge (section 4.10)
	BandAngleToleranceDeg float64 `mapstructure:"band_angle_tolerance_deg" json:"band_angle_tolerance_deg"`
	BandOffsetToleranceMM float64 `mapstructure:"band_offset_tolerance_mm" json:"band_offset_tolerance_mm"`
	BandJoinGapMM         float64 `mapstructure:"band_join_gap_mm" json:"band_join_gap_mm"`
	BandThicknessToleranceMM float64 `mapstructure:"band_thickness_tolerance_mm" json:"band_thickness_tolerance_mm"`

	// Door assignment + bridge (sections 4.11-4.12)
	DoorSnapToleranceMM float64  `mapstructure:"door_snap_tolerance_mm" json:"door_snap_tolerance_mm"`
	BridgeEndCapMM      float64  `mapstructure:"bridge_end_cap_mm" json:"bridge_end_cap_mm"`
	DoorLayerPatterns   []string `mapstructure:"door_layer_patterns" json:"door_layer_patterns"`
	WindowLayerPatterns []string `mapstructure:"window_layer_patterns" json:"window_layer_patterns"`
}

// DefaultAlgorithmConfig returns the constants named directly in the spec.
func DefaultAlgorithmConfig() AlgorithmConfig {
	return AlgorithmConfig{
		Epsilon:                  1e-6,
		AngularToleranceDeg:      5.0,
		MinDistanceMM:            20.0,
		MaxDistanceMM:            450.0,
		MinOverlapPercentage:     60.0,
		MaxLineCount:             20000,
		ContainmentToleranceMM:   1.0,
		BandAngleToleranceDeg:    1.0,
		BandOffsetToleranceMM:    2.0,
		BandJoinGapMM:            5.0,
		BandThicknessToleranceMM: 5.0,
		DoorSnapToleranceMM:      300.0,
		BridgeEndCapMM:           10.0,
		DoorLayerPatterns:        []string{"door", "דלת"},
		WindowLayerPatterns:      []string{"window", "חלון"},
	}
}

// ServiceConfig carries the small set of operational knobs the CLI needs
// around the algorithm tolerances.
type ServiceConfig struct {
	LogLevel    string          `mapstructure:"log_level"`
	SinkDSN     string          `mapstructure:"sink_dsn"`
	JobID       string          `mapstructure:"job_id"`
	Algorithm   AlgorithmConfig `mapstructure:"algorithm"`
}

// Load reads configuration from an optional YAML file plus environment
// variables prefixed GEOPLAN_ (e.g. GEOPLAN_LOG_LEVEL), falling back to
// defaults for anything unset.
func Load(configPath string) (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("geoplan")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := ServiceConfig{
		LogLevel:  "info",
		Algorithm: DefaultAlgorithmConfig(),
	}
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("sink_dsn", cfg.SinkDSN)
	v.SetDefault("algorithm", nil)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", configPath, err)
		}
	}

	out := cfg
	if err := v.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if out.Algorithm.MaxLineCount == 0 {
		out.Algorithm.MaxLineCount = DefaultAlgorithmConfig().MaxLineCount
	}
	return &out, nil
}
