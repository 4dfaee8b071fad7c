package board

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ResolveColumn finds a column by title: case-insensitive, whitespace-trimmed
// exact match, first match wins. Titles are not guaranteed unique upstream.
// A nil return is a configuration error for the caller, not a silent skip.
func ResolveColumn(columns []Column, title string) *Column {
	want := strings.ToLower(strings.TrimSpace(title))
	if want == "" {
		return nil
	}
	for i := range columns {
		if strings.ToLower(strings.TrimSpace(columns[i].Title)) == want {
			return &columns[i]
		}
	}
	return nil
}

// ResolveFirstColumn tries each candidate title in order and returns the
// first that resolves.
func ResolveFirstColumn(columns []Column, titles ...string) *Column {
	for _, t := range titles {
		if col := ResolveColumn(columns, t); col != nil {
			return col
		}
	}
	return nil
}

// DropdownLabels decodes the label set of a dropdown column's settings.
// Entries may be {"id":N,"name":"..."} objects or plain strings.
func DropdownLabels(col Column) []string {
	if col.SettingsStr == "" {
		return nil
	}
	var settings struct {
		Labels []json.RawMessage `json:"labels"`
	}
	if err := json.Unmarshal([]byte(col.SettingsStr), &settings); err != nil {
		return nil
	}
	out := make([]string, 0, len(settings.Labels))
	for _, raw := range settings.Labels {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
			out = append(out, obj.Name)
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// StatusLabels decodes a status column's settings into a label→index map.
// Settings hold {"labels":{"0":"Yes","1":"No",...}}; non-numeric keys and
// empty labels are dropped.
func StatusLabels(col Column) map[string]int {
	out := map[string]int{}
	if col.SettingsStr == "" {
		return out
	}
	var settings struct {
		Labels map[string]string `json:"labels"`
	}
	if err := json.Unmarshal([]byte(col.SettingsStr), &settings); err != nil {
		return out
	}
	for key, label := range settings.Labels {
		idx, err := strconv.Atoi(key)
		if err != nil || label == "" {
			continue
		}
		out[label] = idx
	}
	return out
}

// YesNoIndices looks up the status indices backing common yes/no label
// spellings. Either return may be nil when no matching label exists.
func YesNoIndices(labels map[string]int) (yes, no *int) {
	lower := make(map[string]int, len(labels))
	for name, idx := range labels {
		lower[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	for _, k := range []string{"yes", "true", "active"} {
		if idx, ok := lower[k]; ok {
			v := idx
			yes = &v
			break
		}
	}
	for _, k := range []string{"no", "false", "inactive"} {
		if idx, ok := lower[k]; ok {
			v := idx
			no = &v
			break
		}
	}
	return yes, no
}
