// Package render turns command results into one of the CLI's output
// formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatPretty Format = "pretty"
)

var ValidFormats = []Format{FormatJSON, FormatText, FormatPretty}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "pretty":
		return FormatPretty, nil
	default:
		return "", fmt.Errorf("invalid format: %s (valid: json, text, pretty)", s)
	}
}

// Renderer renders a list. JSON output is always an array, even for nil
// data.
type Renderer[T any] struct {
	Data         []T
	TextFormat   func(T) string
	PrettyFormat func([]T) string
}

func (r Renderer[T]) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		data := r.Data
		if data == nil {
			data = []T{}
		}
		return marshal(data)
	case FormatPretty:
		if r.PrettyFormat == nil {
			return "", fmt.Errorf("pretty format not defined for this type")
		}
		return r.PrettyFormat(r.Data), nil
	case FormatText:
		if r.TextFormat == nil {
			return "", fmt.Errorf("text format not defined for this type")
		}
		lines := make([]string, 0, len(r.Data))
		for _, item := range r.Data {
			lines = append(lines, r.TextFormat(item))
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Write renders to w followed by a newline.
func (r Renderer[T]) Write(w io.Writer, format Format) error {
	return write(w, format, r.Render)
}

// Value renders a single result, such as a report. Pretty output falls
// back to TextFormat when PrettyFormat is nil.
type Value[T any] struct {
	Data         T
	TextFormat   func(T) string
	PrettyFormat func(T) string
}

func (v Value[T]) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		return marshal(v.Data)
	case FormatPretty:
		if v.PrettyFormat != nil {
			return v.PrettyFormat(v.Data), nil
		}
		fallthrough
	case FormatText:
		if v.TextFormat == nil {
			return "", fmt.Errorf("text format not defined for this type")
		}
		return v.TextFormat(v.Data), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (v Value[T]) Write(w io.Writer, format Format) error {
	return write(w, format, v.Render)
}

func write(w io.Writer, format Format, render func(Format) (string, error)) error {
	output, err := render(format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, output)
	return err
}

func marshal(v any) (string, error) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
