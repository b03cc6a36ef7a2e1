package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// Task is a ClickUp task as read from the list endpoint.
// Fields the updater does not touch are kept verbatim in Extra.
type Task struct {
	ID          string
	Name        string
	Description string
	TextContent string
	DateCreated int64 // unix milliseconds
	Extra       map[string]json.RawMessage
}

// Clone returns a copy that shares nothing mutable with t.
func (t Task) Clone() Task {
	c := t
	c.Extra = maps.Clone(t.Extra)
	return c
}

// SameContent reports whether the editable fields of t and o are equal.
func (t Task) SameContent(o Task) bool {
	return t.Name == o.Name &&
		t.Description == o.Description &&
		t.TextContent == o.TextContent
}

// UnmarshalJSON decodes a ClickUp task object. date_created arrives as a
// decimal string of unix milliseconds; a bare number is accepted too.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Task
	for key, dst := range map[string]*string{
		"id":           &out.ID,
		"name":         &out.Name,
		"description":  &out.Description,
		"text_content": &out.TextContent,
	} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		delete(raw, key)
		if string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("task field %s: %w", key, err)
		}
	}

	if v, ok := raw["date_created"]; ok {
		delete(raw, "date_created")
		ms, err := parseMillis(v)
		if err != nil {
			return fmt.Errorf("task field date_created: %w", err)
		}
		out.DateCreated = ms
	}

	if len(raw) > 0 {
		out.Extra = raw
	}
	*t = out
	return nil
}

// MarshalJSON writes the task back in ClickUp's shape, Extra included.
func (t Task) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Extra)+5)
	for k, v := range t.Extra {
		out[k] = v
	}
	out["id"] = t.ID
	out["name"] = t.Name
	out["description"] = t.Description
	out["text_content"] = t.TextContent
	out["date_created"] = strconv.FormatInt(t.DateCreated, 10)
	return json.Marshal(out)
}

func parseMillis(v json.RawMessage) (int64, error) {
	if string(v) == "null" {
		return 0, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if s == "" {
			return 0, nil
		}
		return strconv.ParseInt(s, 10, 64)
	}
	var n int64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, err
	}
	return n, nil
}
