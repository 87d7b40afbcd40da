package pose

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	// ErrInvalidFrame is returned when a frame is not a JSON object of landmarks.
	ErrInvalidFrame = errors.New("invalid pose frame")

	// ErrEmptyPose is returned when a frame holds no usable landmark.
	ErrEmptyPose = errors.New("pose frame has no usable landmarks")
)

const frameSchemaURL = "schema://pose-frame.json"

// frameSchema accepts either {"landmarks": {...}} or a flat landmark object.
// Per-landmark fields are checked during conversion, where bad entries are
// dropped instead of rejecting the whole frame.
var frameSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"landmarks": map[string]any{"type": "object"},
	},
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func getCompiledSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(frameSchemaURL, frameSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(frameSchemaURL)
	})
	return compiledSchema, compileErr
}

// Decode parses one JSON frame produced by the capture layer into a Pose.
func Decode(raw []byte) (Pose, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}

	compiled, err := getCompiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile frame schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}

	return FromRaw(parsed.(map[string]any))
}

// FromRaw converts a generic landmark object into a Pose. Entries without
// finite x and y are skipped; "confidence" is accepted in place of "score".
func FromRaw(obj map[string]any) (Pose, error) {
	src := obj
	if inner, ok := obj["landmarks"].(map[string]any); ok {
		src = inner
	}

	p := make(Pose, len(src))
	for key, value := range src {
		fields, ok := value.(map[string]any)
		if !ok {
			continue
		}
		x, okX := finite(fields["x"])
		y, okY := finite(fields["y"])
		if !okX || !okY {
			continue
		}
		lm := Landmark{X: x, Y: y}
		if z, ok := finite(fields["z"]); ok {
			lm.Z = &z
		}
		scoreField := fields["score"]
		if scoreField == nil {
			scoreField = fields["confidence"]
		}
		if s, ok := finite(scoreField); ok {
			lm.Score = &s
		}
		p[Name(key)] = lm
	}

	if len(p) == 0 {
		return nil, ErrEmptyPose
	}
	return p, nil
}

func finite(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
