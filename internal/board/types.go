// Package board implements a client for the work-management board API.
package board

// Column describes one attribute slot shared across all records on a board.
type Column struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	SettingsStr string `json:"settings_str"`
}

// ColumnValue is the value of one column for one record. Raw carries the
// type-specific JSON encoding; Text is the board's plain-text rendering.
type ColumnValue struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
	Raw  string `json:"value"`
}

// Record is one business entity on the board.
type Record struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Values []ColumnValue `json:"column_values"`
}

// Value returns the column value for the given column id, or nil.
func (r Record) Value(columnID string) *ColumnValue {
	for i := range r.Values {
		if r.Values[i].ID == columnID {
			return &r.Values[i]
		}
	}
	return nil
}

// Text returns the plain-text rendering for the given column id, or "".
func (r Record) Text(columnID string) string {
	if cv := r.Value(columnID); cv != nil {
		return cv.Text
	}
	return ""
}

// Board is the metadata returned for one board.
type Board struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}
