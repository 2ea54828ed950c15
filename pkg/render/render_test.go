package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"Json", FormatJSON},
		{" json\n", FormatJSON},
		{"TEXT", FormatText},
		{"text", FormatText},
		{"pretty", FormatPretty},
		{"PRETTY", FormatPretty},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat_Invalid(t *testing.T) {
	for _, input := range []string{"", "xml", "yaml"} {
		_, err := ParseFormat(input)
		require.Error(t, err, input)
		assert.Contains(t, err.Error(), "invalid format")
		assert.Contains(t, err.Error(), "json, text, pretty")
	}
	assert.Equal(t, []Format{FormatJSON, FormatText, FormatPretty}, ValidFormats)
}

type ruleRow struct {
	Rule    string `json:"rule"`
	Spreads bool   `json:"spreads"`
}

func ruleRows() Renderer[ruleRow] {
	return Renderer[ruleRow]{
		Data: []ruleRow{
			{Rule: "ScalarLeafs"},
			{Rule: "VariableTypesMatch", Spreads: true},
		},
		TextFormat: func(r ruleRow) string { return r.Rule },
		PrettyFormat: func(rows []ruleRow) string {
			return fmt.Sprintf("%d rules", len(rows))
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	r := ruleRows()

	output, err := r.Render(FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"rule": "ScalarLeafs", "spreads": false}, {"rule": "VariableTypesMatch", "spreads": true}]`, output)
	assert.Contains(t, output, "\n  {", "json is indented")

	output, err = r.Render(FormatText)
	require.NoError(t, err)
	assert.Equal(t, "ScalarLeafs\nVariableTypesMatch", output)

	output, err = r.Render(FormatPretty)
	require.NoError(t, err)
	assert.Equal(t, "2 rules", output)

	_, err = r.Render(Format("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestRenderer_EmptyData(t *testing.T) {
	for _, data := range [][]ruleRow{nil, {}} {
		r := ruleRows()
		r.Data = data

		output, err := r.Render(FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "[]", output)

		output, err = r.Render(FormatText)
		require.NoError(t, err)
		assert.Empty(t, output)
	}
}

func TestRenderer_MissingFormatters(t *testing.T) {
	r := Renderer[ruleRow]{Data: []ruleRow{{Rule: "KnownDirectives"}}}

	_, err := r.Render(FormatText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text format not defined")

	_, err = r.Render(FormatPretty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pretty format not defined")
}

func TestRenderer_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ruleRows().Write(&buf, FormatText))
	assert.Equal(t, "ScalarLeafs\nVariableTypesMatch\n", buf.String())

	buf.Reset()
	r := ruleRows()
	r.PrettyFormat = nil
	assert.Error(t, r.Write(&buf, FormatPretty))
	assert.Empty(t, buf.String())
}

type report struct {
	Valid    bool     `json:"valid"`
	Findings []string `json:"findings"`
}

func TestValue_Render(t *testing.T) {
	value := Value[report]{
		Data: report{Findings: []string{"unused $id", "leaf selection"}},
		TextFormat: func(r report) string {
			return strings.Join(r.Findings, "; ")
		},
	}

	output, err := value.Render(FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid": false, "findings": ["unused $id", "leaf selection"]}`, output)

	output, err = value.Render(FormatText)
	require.NoError(t, err)
	assert.Equal(t, "unused $id; leaf selection", output)

	output, err = value.Render(FormatPretty)
	require.NoError(t, err)
	assert.Equal(t, "unused $id; leaf selection", output, "pretty falls back to text")

	value.PrettyFormat = func(r report) string { return fmt.Sprintf("%d findings", len(r.Findings)) }
	output, err = value.Render(FormatPretty)
	require.NoError(t, err)
	assert.Equal(t, "2 findings", output)

	_, err = value.Render(Format("xml"))
	assert.Error(t, err)
}

func TestValue_NilTextFormat(t *testing.T) {
	_, err := Value[report]{}.Render(FormatText)
	assert.Error(t, err)

	_, err = Value[report]{}.Render(FormatPretty)
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Value[report]{Data: report{Valid: true}}.Write(&buf, FormatJSON))
	assert.JSONEq(t, `{"valid": true, "findings": null}`, buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}
