package types

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// FormatSummary renders the collected values as a markdown table in field order.
// Fields without a value are listed with an empty cell.
func FormatSummary(fields []FieldSpec, collected map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Value")
	for _, field := range fields {
		_ = table.Append(field.Key, collected[field.Key])
	}
	_ = table.Render()
	return buf.String()
}

// FormatFields renders the form definition as a markdown table.
func FormatFields(fields []FieldSpec) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("#", "Key", "Type", "Prompt")
	for i, field := range fields {
		_ = table.Append(strconv.Itoa(i+1), field.Key, string(field.Type), field.Prompt)
	}
	_ = table.Render()
	return buf.String()
}
