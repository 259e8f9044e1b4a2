package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/kherge/dev/internal/config"
)

// listHeaders are the column titles of every list table.
var listHeaders = []string{"Name", "Created At"}

// listRow is the projection shown by list, in every output format.
type listRow struct {
	Name      string `json:"name" yaml:"name"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// field is one key/value line of inspect's table output.
type field struct {
	Key   string
	Value string
}

// renderList writes rows in the given format. An empty table still prints
// its headers.
func renderList(w io.Writer, format string, rows []listRow) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, rows)
	case config.FormatYAML:
		return writeYAML(w, rows)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{row.Name, row.CreatedAt})
	}
	writeTable(w, listHeaders, cells)
	return nil
}

// renderDetails writes a single resource. Table mode uses fields; the
// document formats encode v itself.
func renderDetails(w io.Writer, format string, v any, fields []field) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, v)
	case config.FormatYAML:
		return writeYAML(w, v)
	}

	cells := make([][]string, 0, len(fields))
	for _, f := range fields {
		cells = append(cells, []string{f.Key, f.Value})
	}
	writeTable(w, nil, cells)
	return nil
}

// writeTable renders a borderless, left-aligned table. Headers are printed
// as given; tablewriter would upper-case them by default.
func writeTable(w io.Writer, headers []string, cells [][]string) {
	table := tablewriter.NewWriter(w)
	if len(headers) > 0 {
		table.SetHeader(headers)
	}
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(cells)
	table.Render()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML output: %w", err)
	}
	return enc.Close()
}

// formatLabels renders a label set as sorted "key=value" pairs.
func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return "-"
	}

	pairs := make([]string, 0, len(labels))
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		pairs = append(pairs, k+"="+labels[k])
	}
	return strings.Join(pairs, ", ")
}
