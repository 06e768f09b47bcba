package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/cropaway/pkg/crop"
)

// Document is the on-disk form of a crop configuration. YAML and JSON are
// both accepted.
//
//	mode: circle
//	keyframes_enabled: true
//	static:
//	  geometry: {circle_center: {x: 0.5, y: 0.5}, circle_radius: 0.3}
//	keyframes:
//	  - timestamp: 1.5
//	    interpolation: ease-in-out
//	    geometry: {circle_center: {x: 0.2, y: 0.5}, circle_radius: 0.2}
type Document struct {
	Mode             string             `yaml:"mode"`
	KeyframesEnabled bool               `yaml:"keyframes_enabled"`
	Static           StateDocument      `yaml:"static"`
	PromptPoints     []crop.PromptPoint `yaml:"prompt_points"`
	Keyframes        []KeyframeDocument `yaml:"keyframes"`
}

// StateDocument holds the geometry and payloads of one crop state. Geometry
// fields that are left out keep the default state's values. MaskRLE may be
// the RLE JSON string or the RLE object inlined.
type StateDocument struct {
	Geometry       yaml.Node           `yaml:"geometry"`
	Path           []crop.BezierVertex `yaml:"path"`
	MaskRLE        yaml.Node           `yaml:"mask_rle"`
	FreehandPoints []crop.Point        `yaml:"freehand_points"`
}

// KeyframeDocument is one keyframe.
type KeyframeDocument struct {
	StateDocument `yaml:",inline"`
	Timestamp     float64            `yaml:"timestamp"`
	Interpolation string             `yaml:"interpolation"`
	PromptPoints  []crop.PromptPoint `yaml:"prompt_points"`
}

// LoadCropDocument reads a crop configuration from a YAML or JSON file.
func LoadCropDocument(path string) (*crop.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseCropDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseCropDocument parses a crop configuration. Geometry is clamped into range.
func ParseCropDocument(data []byte) (*crop.Configuration, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse crop document: %w", err)
	}

	mode, err := crop.ParseMode(doc.Mode)
	if err != nil {
		return nil, err
	}

	static := crop.DefaultState()
	if err := doc.Static.apply(&static); err != nil {
		return nil, fmt.Errorf("static: %w", err)
	}

	cfg := crop.NewConfiguration(mode, static)
	cfg.KeyframesEnabled = doc.KeyframesEnabled
	cfg.PromptPoints = doc.PromptPoints
	for i, kd := range doc.Keyframes {
		if kd.Timestamp < 0 {
			return nil, fmt.Errorf("keyframe %d: negative timestamp %g", i, kd.Timestamp)
		}
		state := crop.State{Geometry: crop.DefaultState().Geometry}
		if err := kd.apply(&state); err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		cfg.SetKeyframe(crop.Keyframe{
			Timestamp:      kd.Timestamp,
			Geometry:       state.Geometry,
			Payload:        state.Payload,
			FreehandPoints: state.FreehandPoints,
			PromptPoints:   kd.PromptPoints,
			Interpolation:  crop.ParseInterpolationMode(kd.Interpolation),
		})
	}
	return cfg.Clamp(), nil
}

func (d StateDocument) apply(s *crop.State) error {
	if d.Geometry.Kind != 0 {
		if err := d.Geometry.Decode(&s.Geometry); err != nil {
			return fmt.Errorf("geometry: %w", err)
		}
	}
	if len(d.Path) > 0 {
		data, err := crop.EncodePath(d.Path)
		if err != nil {
			return err
		}
		s.Payload.PathData = data
	}
	if d.FreehandPoints != nil {
		s.FreehandPoints = d.FreehandPoints
	}
	mask, err := nodeBytes(d.MaskRLE)
	if err != nil {
		return fmt.Errorf("mask_rle: %w", err)
	}
	if mask != nil {
		s.Payload.MaskRLE = mask
	}
	return nil
}

// nodeBytes returns a scalar as-is and re-encodes a mapping as JSON.
func nodeBytes(n yaml.Node) ([]byte, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" || n.Value == "" {
			return nil, nil
		}
		return []byte(n.Value), nil
	case yaml.MappingNode:
		var v map[string]interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("line %d: expected a string or an object", n.Line)
	}
}
