package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/surveyloom/internal/utils"
	"github.com/olekukonko/tablewriter"
)

// Output formats.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ErrUnknownFormat is returned by Render for an unrecognised format name.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat normalises a user-supplied format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatTable, "console":
		return FormatTable, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%q: %w (use table|markdown|json)", s, ErrUnknownFormat)
}

// Render writes the report to w in the given format.
func (r *Report) Render(w io.Writer, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case FormatMarkdown:
		_, err = io.WriteString(w, r.Markdown())
		return err
	case FormatJSON:
		b, err := r.JSON()
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	default:
		return r.WriteTable(w)
	}
}

// WriteTable prints the title, an ASCII table and the notes.
func (r *Report) WriteTable(w io.Writer) error {
	if r.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n", r.Title); err != nil {
			return err
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(r.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range r.Rows {
		table.Append(row)
	}
	table.Render()
	for _, n := range r.Notes {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders the report with bracketed section headers followed by a
// pipe table.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[REPORT]\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", r.Title))
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Source))
	}
	b.WriteString(fmt.Sprintf("Kind: %s\n\n", r.Kind))

	b.WriteString("[RESULTS]\n")
	b.WriteString("| " + strings.Join(escapeCells(r.Columns), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(r.Columns)) + "\n")
	for _, row := range r.Rows {
		b.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
	if len(r.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range r.Notes {
			b.WriteString("- " + n + "\n")
		}
	}
	return b.String()
}

// JSON returns the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(r)
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", "\\|")
		out[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return out
}
