package bundle

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
)

// Vector is a sparse vector as written in a bundle. Dimension keys may be
// integers or decimal strings ({"5": 1} in JSON, {5: 1} in YAML and CBOR).
type Vector sparse.Vector

// UnmarshalJSON decodes an object keyed by decimal dimension ids.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out, err := sparse.FromStringKeys(m)
	if err != nil {
		return err
	}
	*v = Vector(out)
	return nil
}

// UnmarshalYAML decodes a mapping; scalar keys are read as decimal text.
func (v *Vector) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]float64
	if err := node.Decode(&m); err != nil {
		return err
	}
	out, err := sparse.FromStringKeys(m)
	if err != nil {
		return err
	}
	*v = Vector(out)
	return nil
}

// UnmarshalCBOR decodes a map keyed by integers or decimal text strings.
func (v *Vector) UnmarshalCBOR(data []byte) error {
	var m map[any]float64
	if err := decMode.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(Vector, len(m))
	for k, w := range m {
		d, err := cborDimension(k)
		if err != nil {
			return err
		}
		out[d] = w
	}
	*v = out
	return nil
}

func cborDimension(k any) (int, error) {
	switch key := k.(type) {
	case uint64:
		return int(key), nil
	case int64:
		return int(key), nil
	case string:
		d, err := strconv.Atoi(key)
		if err != nil {
			return 0, fmt.Errorf("invalid dimension %q: %w", key, err)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("invalid dimension key type %T", k)
	}
}

var _ cbor.Unmarshaler = (*Vector)(nil)
