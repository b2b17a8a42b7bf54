package showCommand

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/redjax/sysreadout/internal/config"
	"github.com/redjax/sysreadout/internal/readout"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	unknownStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
)

// Renderer writes collected entries in one of the output formats.
type Renderer struct {
	Format string
	// Unknown replaces the value of a field that could not be read.
	Unknown string
	// Styled enables colours; off when stdout is not a terminal.
	Styled bool
}

func (r Renderer) Render(w io.Writer, entries []Entry) error {
	switch r.Format {
	case config.FormatJSON:
		return r.renderJSON(w, entries)
	case config.FormatPlain:
		return r.renderPlain(w, entries)
	default:
		return r.renderTable(w, entries)
	}
}

// missing renders the unknown marker with the failure kind, e.g.
// "unknown (metric not available)".
func (r Renderer) missing(err error) string {
	marker := r.Unknown
	if marker == "" {
		marker = "unknown"
	}
	s := fmt.Sprintf("%s (%s)", marker, readout.KindOf(err))
	return r.style(unknownStyle, s)
}

func (r Renderer) style(st lipgloss.Style, s string) string {
	if !r.Styled {
		return s
	}
	return st.Render(s)
}

func (r Renderer) value(e Entry) string {
	if e.Err != nil {
		return r.missing(e.Err)
	}
	return e.Text
}

// failedBackends lists package backends that could not be counted.
func (r Renderer) failedBackends(e Entry) string {
	report, ok := e.Value.(readout.PackageReport)
	if !ok || len(report.Failed()) == 0 {
		return ""
	}

	var parts []string
	for _, res := range report.Failed() {
		parts = append(parts, fmt.Sprintf("%s (%s)", res.Backend, readout.KindOf(res.Err)))
	}
	return r.style(failedStyle, strings.Join(parts, ", "))
}

func (r Renderer) renderTable(w io.Writer, entries []Entry) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		r.style(headerStyle, "Category"),
		r.style(headerStyle, "Field"),
		r.style(headerStyle, "Value"),
	})

	var last readout.Category
	for _, e := range entries {
		if last != "" && e.Field.Category != last {
			t.AppendSeparator()
		}
		last = e.Field.Category

		t.AppendRow(table.Row{string(e.Field.Category), e.Field.Name, r.value(e)})
		if failed := r.failedBackends(e); failed != "" {
			t.AppendRow(table.Row{string(e.Field.Category), "unavailable", failed})
		}
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func (r Renderer) renderPlain(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Field, r.value(e)); err != nil {
			return err
		}
		if failed := r.failedBackends(e); failed != "" {
			if _, err := fmt.Fprintf(w, "%s.unavailable: %s\n", e.Field, failed); err != nil {
				return err
			}
		}
	}
	return nil
}

type jsonError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type jsonBackend struct {
	Backend string     `json:"backend"`
	Count   *uint64    `json:"count,omitempty"`
	Error   *jsonError `json:"error,omitempty"`
}

type jsonEntry struct {
	Field string     `json:"field"`
	Value any        `json:"value,omitempty"`
	Text  string     `json:"text,omitempty"`
	Error *jsonError `json:"error,omitempty"`
}

func toJSONError(err error) *jsonError {
	if err == nil {
		return nil
	}
	return &jsonError{Kind: readout.KindOf(err).String(), Message: err.Error()}
}

func (r Renderer) renderJSON(w io.Writer, entries []Entry) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{Field: e.Field.String(), Value: e.Value, Text: e.Text, Error: toJSONError(e.Err)}

		if report, ok := e.Value.(readout.PackageReport); ok {
			backends := make([]jsonBackend, 0, len(report.Results))
			for _, res := range report.Results {
				b := jsonBackend{Backend: res.Backend, Error: toJSONError(res.Err)}
				if res.OK() {
					count := res.Count
					b.Count = &count
				}
				backends = append(backends, b)
			}
			je.Value = map[string]any{"total": report.Total, "backends": backends}
		}

		out = append(out, je)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
