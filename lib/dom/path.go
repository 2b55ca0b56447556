package dom

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/titanous/json5"
)

// StepOptions are the optional checks of a Step.
type StepOptions struct {
	// ID must equal the element's `id` attribute exactly. An empty ID is not
	// checked, so a step cannot require an element to have no id.
	ID string
	// Class must be one of the element's class tokens, empty is not checked.
	Class string
	// Optional makes a failed check end the stroll with a nil result instead
	// of an error.
	Optional bool
	// Debug warns about attributes on the matched element that the step did
	// not check.
	Debug bool
	// Unrecognized holds option keys from a decoded path that are not any of
	// the above, they are only reported when Debug is set.
	Unrecognized []string
}

// Step is one level of descent: the child at Index (counting every node, not
// only elements) must be an element named Tag.
type Step struct {
	Index int
	Tag   string
	Opts  StepOptions
}

// At builds a step, at most one StepOptions is used.
func At(index int, tag string, opts ...StepOptions) Step {
	step := Step{Index: index, Tag: tag}
	if len(opts) > 0 {
		step.Opts = opts[0]
	}
	return step
}

type Path []Step

// UnmarshalJSON decodes the `[index, "tag", {options}]` form of a step.
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	step, err := stepFromValues(raw)
	if err != nil {
		return err
	}
	*s = step
	return nil
}

// ParsePath decodes a JSON5 list of steps, ex.
//
//	[[1, "body"], [3, "div", {id: "content", cls: "main", optional: true}]]
func ParsePath(data []byte) (Path, error) {
	var raw []any
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode path: %w", err)
	}
	path := make(Path, 0, len(raw))
	for i, r := range raw {
		values, ok := r.([]any)
		if !ok {
			return nil, fmt.Errorf("decode path: step %d: expected an array, got %T", i, r)
		}
		step, err := stepFromValues(values)
		if err != nil {
			return nil, fmt.Errorf("decode path: step %d: %w", i, err)
		}
		path = append(path, step)
	}
	return path, nil
}

func stepFromValues(values []any) (Step, error) {
	if len(values) < 2 || len(values) > 3 {
		return Step{}, fmt.Errorf("expected [index, tag, options?], got %d values", len(values))
	}

	index, ok := values[0].(float64)
	if !ok || index < 0 || index != math.Trunc(index) {
		return Step{}, fmt.Errorf("index must be a non-negative integer, got %v", values[0])
	}
	if index > math.MaxInt32 {
		return Step{}, fmt.Errorf("index %v is out of range", values[0])
	}
	tag, ok := values[1].(string)
	if !ok || tag == "" {
		return Step{}, fmt.Errorf("tag must be a non-empty string, got %v", values[1])
	}

	step := Step{Index: int(index), Tag: tag}
	if len(values) == 2 || values[2] == nil {
		return step, nil
	}

	opts, ok := values[2].(map[string]any)
	if !ok {
		return Step{}, fmt.Errorf("options must be an object, got %T", values[2])
	}
	for key, value := range opts {
		var err error
		switch key {
		case "id":
			step.Opts.ID, err = optionString(key, value)
		case "cls":
			step.Opts.Class, err = optionString(key, value)
		case "optional":
			step.Opts.Optional, err = optionBool(key, value)
		case "debug":
			step.Opts.Debug, err = optionBool(key, value)
		default:
			step.Opts.Unrecognized = append(step.Opts.Unrecognized, key)
		}
		if err != nil {
			return Step{}, err
		}
	}
	sort.Strings(step.Opts.Unrecognized)

	return step, nil
}

func optionString(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("option %q must be a string, got %T", key, value)
	}
	return s, nil
}

func optionBool(key string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("option %q must be a boolean, got %T", key, value)
	}
	return b, nil
}
