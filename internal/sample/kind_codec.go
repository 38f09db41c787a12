package sample

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind serializes as its stats_arrays numeric id, and deserializes from
// either the id or the distribution name.

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	return int(k), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case int:
		return k.decode(strconv.Itoa(v))
	case string:
		return k.decode(v)
	}
	return fmt.Errorf("uncertainty type must be a number or name, got %T", raw)
}

// MarshalJSON implements json.Marshaler.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(k))
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		return k.decode(strconv.Itoa(int(v)))
	case string:
		return k.decode(v)
	}
	return fmt.Errorf("uncertainty type must be a number or name, got %T", raw)
}

func (k *Kind) decode(raw string) error {
	if id, err := strconv.Atoi(raw); err == nil {
		if id < int(Undefined) || id > int(Beta) {
			return fmt.Errorf("unknown uncertainty type id %d", id)
		}
		*k = Kind(id)
		return nil
	}
	parsed, ok := ParseKind(raw)
	if !ok {
		return fmt.Errorf("unknown uncertainty type %q", raw)
	}
	*k = parsed
	return nil
}
