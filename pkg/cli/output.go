package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is human-readable output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output for scripting.
	FormatJSON OutputFormat = "json"
)

// Formatter writes command results to a writer.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter prints values with fmt. Types implementing fmt.Stringer
// control their own rendering.
type TextFormatter struct{}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter prints values as indented JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// NewFormatter creates a formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TextFormatter{}
	}
}

// Table renders aligned columnar output for listing commands.
type Table struct {
	w       *tabwriter.Writer
	headers []string
	wrote   bool
}

// NewTable creates a table writing to w with the given column headers.
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{
		w:       tabwriter.NewWriter(w, 0, 4, 2, ' ', 0),
		headers: headers,
	}
}

// Row appends one row. The header line is emitted before the first row.
func (t *Table) Row(cells ...any) {
	if !t.wrote {
		for i, h := range t.headers {
			if i > 0 {
				fmt.Fprint(t.w, "\t")
			}
			fmt.Fprint(t.w, h)
		}
		fmt.Fprintln(t.w)
		t.wrote = true
	}
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(t.w, "\t")
		}
		fmt.Fprintf(t.w, "%v", c)
	}
	fmt.Fprintln(t.w)
}

// Flush writes buffered rows to the underlying writer.
func (t *Table) Flush() error {
	return t.w.Flush()
}
