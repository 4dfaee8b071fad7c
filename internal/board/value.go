package board

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Column kinds the client knows how to encode. Anything else is rejected
// at write time rather than falling through to a string default.
const (
	KindLink     = "link"
	KindDropdown = "dropdown"
	KindStatus   = "status"
	KindColor    = "color" // legacy name for status columns
	KindCheckbox = "checkbox"
	KindText     = "text"
	KindLongText = "long_text"
	KindNumeric  = "numbers"
	KindFile     = "file"
)

// Value is one typed column value ready for the wire. Render returns the
// canonical plain-text form used for the idempotence comparison.
type Value interface {
	Kind() string
	Encode() (json.RawMessage, error)
	Render() string
}

// DropdownValue selects dropdown labels by name or by id. Names win when
// both are set, matching the upstream API's precedence.
type DropdownValue struct {
	Labels   []string
	LabelIDs []int
}

func (v DropdownValue) Kind() string { return KindDropdown }

func (v DropdownValue) Encode() (json.RawMessage, error) {
	if len(v.Labels) > 0 {
		return json.Marshal(map[string][]string{"labels": v.Labels})
	}
	if len(v.LabelIDs) > 0 {
		return json.Marshal(map[string][]int{"labels_ids": v.LabelIDs})
	}
	return nil, fmt.Errorf("dropdown value needs labels or label ids")
}

func (v DropdownValue) Render() string {
	if len(v.Labels) > 0 {
		return strings.Join(v.Labels, ", ")
	}
	ids := make([]string, 0, len(v.LabelIDs))
	for _, id := range v.LabelIDs {
		ids = append(ids, strconv.Itoa(id))
	}
	return strings.Join(ids, ", ")
}

// StatusValue sets a status column by label text or by index.
type StatusValue struct {
	Label string
	Index *int
}

func (v StatusValue) Kind() string { return KindStatus }

func (v StatusValue) Encode() (json.RawMessage, error) {
	if v.Index != nil {
		return json.Marshal(map[string]int{"index": *v.Index})
	}
	if v.Label != "" {
		return json.Marshal(map[string]string{"label": v.Label})
	}
	return nil, fmt.Errorf("status value needs a label or an index")
}

func (v StatusValue) Render() string { return v.Label }

// CheckboxValue sets a checkbox column.
type CheckboxValue struct {
	Checked bool
}

func (v CheckboxValue) Kind() string { return KindCheckbox }

func (v CheckboxValue) Encode() (json.RawMessage, error) {
	return json.Marshal(map[string]string{"checked": strconv.FormatBool(v.Checked)})
}

func (v CheckboxValue) Render() string {
	if v.Checked {
		return "true"
	}
	return "false"
}

// TextValue sets a text or long-text column; the wire form is a plain string.
type TextValue struct {
	Text string
}

func (v TextValue) Kind() string { return KindText }

func (v TextValue) Encode() (json.RawMessage, error) {
	return json.Marshal(v.Text)
}

func (v TextValue) Render() string { return v.Text }

// NumberValue sets a numeric column; the wire form is the number as a string.
type NumberValue struct {
	N int64
}

func (v NumberValue) Kind() string { return KindNumeric }

func (v NumberValue) Encode() (json.RawMessage, error) {
	return json.Marshal(strconv.FormatInt(v.N, 10))
}

func (v NumberValue) Render() string { return strconv.FormatInt(v.N, 10) }

// FileLinkValue adds one LINK entry to a files column.
type FileLinkValue struct {
	Name string
	URL  string
}

func (v FileLinkValue) Kind() string { return KindFile }

type fileEntry struct {
	Name       string `json:"name"`
	FileType   string `json:"fileType"`
	LinkToFile string `json:"linkToFile"`
}

func (v FileLinkValue) Encode() (json.RawMessage, error) {
	if v.URL == "" {
		return nil, fmt.Errorf("file link value needs a url")
	}
	return json.Marshal(map[string][]fileEntry{
		"files": {{Name: v.Name, FileType: "LINK", LinkToFile: v.URL}},
	})
}

func (v FileLinkValue) Render() string { return v.URL }

// CheckKind validates that a value may be written into a column of the given
// type. Status columns historically report their type as "color".
func CheckKind(col Column, v Value) error {
	ct := strings.ToLower(strings.TrimSpace(col.Type))
	switch v.(type) {
	case DropdownValue:
		if ct == KindDropdown {
			return nil
		}
	case StatusValue:
		if ct == KindStatus || ct == KindColor {
			return nil
		}
	case CheckboxValue:
		if ct == KindCheckbox {
			return nil
		}
	case TextValue:
		if ct == KindText || ct == KindLongText {
			return nil
		}
	case NumberValue:
		if ct == KindNumeric {
			return nil
		}
	case FileLinkValue:
		if ct == KindFile {
			return nil
		}
	default:
		return fmt.Errorf("unsupported value kind %q", v.Kind())
	}
	return fmt.Errorf("column %q is type %q, cannot hold a %s value", col.Title, col.Type, v.Kind())
}
