package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type wireRule struct {
	Column   string   `json:"column"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
}

type wireGroup struct {
	Condition Condition `json:"condition"`
	Rules     []Node    `json:"rules"`
}

// Marshal validates n and returns its canonical JSON form.
// Keys are emitted in declaration order, rule order is kept, unary rules
// carry no value and an empty group is written as "rules":[].
func Marshal(n Node) ([]byte, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a root group. Unknown operators and conditions are
// rejected while decoding.
func Unmarshal(data []byte) (Group, error) {
	var g Group
	if err := json.Unmarshal(data, &g); err != nil {
		return Group{}, fmt.Errorf("unmarshal filter: %w", err)
	}
	return g, nil
}

// MarshalJSON implements json.Marshaler.
func (r Rule) MarshalJSON() ([]byte, error) {
	w := wireRule{Column: r.Column, Operator: r.Operator}
	if !r.Operator.IsUnary() {
		w.Value = r.Value
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
// Numeric values are kept as json.Number so they re-encode unchanged.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var w struct {
		Column   string `json:"column"`
		Operator string `json:"operator"`
		Value    any    `json:"value"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return fmt.Errorf("decode rule: %w", err)
	}
	op, err := ParseOperator(w.Operator)
	if err != nil {
		return err
	}
	*r = Rule{Column: w.Column, Operator: op, Value: w.Value}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (g Group) MarshalJSON() ([]byte, error) {
	rules := g.Rules
	if rules == nil {
		rules = []Node{}
	}
	return json.Marshal(wireGroup{Condition: g.Condition, Rules: rules})
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Group) UnmarshalJSON(data []byte) error {
	decoded, err := decodeGroup(data, 0)
	if err != nil {
		return err
	}
	*g = decoded
	return nil
}

func decodeGroup(data []byte, depth int) (Group, error) {
	if depth > MaxDepth {
		return Group{}, fmt.Errorf("filter nesting exceeds %d levels", MaxDepth)
	}
	var w struct {
		Condition *string           `json:"condition"`
		Rules     []json.RawMessage `json:"rules"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return Group{}, fmt.Errorf("decode group: %w", err)
	}
	if w.Condition == nil {
		return Group{}, errors.New("group condition is required")
	}
	cond := Condition(*w.Condition)
	if !cond.IsValid() {
		return Group{}, fmt.Errorf("condition must be AND or OR, got %q", *w.Condition)
	}

	rules := make([]Node, 0, len(w.Rules))
	for i, raw := range w.Rules {
		n, err := decodeNode(raw, depth+1)
		if err != nil {
			return Group{}, fmt.Errorf("rules[%d]: %w", i, err)
		}
		rules = append(rules, n)
	}
	return Group{Condition: cond, Rules: rules}, nil
}

// decodeNode treats any object with a "condition" or "rules" key as a group.
func decodeNode(raw json.RawMessage, depth int) (Node, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	if probe == nil {
		return nil, errors.New("node must be an object")
	}
	_, hasCondition := probe["condition"]
	_, hasRules := probe["rules"]
	if hasCondition || hasRules {
		return decodeGroup(raw, depth)
	}
	var r Rule
	if err := r.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return r, nil
}
