package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Note is a single record as served by the notes service. Optional text
// fields are nil when the service sends null or omits them.
type Note struct {
	ID          int64    `json:"id"`
	Content     string   `json:"content"`
	Category    *string  `json:"category"`
	IsTask      TaskFlag `json:"is_task"`
	FilePath    *string  `json:"file_path"`
	CodeSnippet *string  `json:"code_snippet"`
	WebContext  *string  `json:"web_context"`
	CreatedAt   string   `json:"created_at"`
}

// TaskFlag is the service's 0/1 task marker. It also accepts JSON booleans
// and null.
type TaskFlag bool

func (f TaskFlag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *TaskFlag) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch raw {
	case "", "null", "0", "false":
		*f = false
		return nil
	case "1", "true":
		*f = true
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("is_task: unsupported value %s", bytes.TrimSpace(data))
	}
	*f = n != 0
	return nil
}

func (n Note) Task() bool {
	return bool(n.IsTask)
}

// CategoryValue reports the category and whether one is set. An empty
// string counts as uncategorized.
func (n Note) CategoryValue() (string, bool) {
	if n.Category == nil || *n.Category == "" {
		return "", false
	}
	return *n.Category, true
}

func (n Note) FilePathValue() string {
	return stringValue(n.FilePath)
}

func (n Note) CodeSnippetValue() string {
	return stringValue(n.CodeSnippet)
}

func (n Note) WebContextValue() string {
	return stringValue(n.WebContext)
}

// HasExtraContent gates whether a note can be expanded.
func (n Note) HasExtraContent() bool {
	return n.CodeSnippetValue() != "" || n.WebContextValue() != ""
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// StringPtr is a convenience for building notes with optional fields.
func StringPtr(value string) *string {
	return &value
}
