package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Default formatting values for new documents.
const (
	DefaultFontFamily = "monospace"
	DefaultFontSize   = 12
	DefaultColor      = "#000000"
)

// Format describes the formatting attributes of a document.
// Format is a value type; copies are independent.
type Format struct {
	Bold       bool
	Italic     bool
	Underline  bool
	FontFamily string
	FontSize   int
	Color      string
}

// DefaultFormat returns the format applied to new documents.
func DefaultFormat() Format {
	return Format{
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		Color:      DefaultColor,
	}
}

// String returns a compact human-readable form of the format.
func (f Format) String() string {
	var flags []string
	if f.Bold {
		flags = append(flags, "bold")
	}
	if f.Italic {
		flags = append(flags, "italic")
	}
	if f.Underline {
		flags = append(flags, "underline")
	}
	s := fmt.Sprintf("%s %dpt %s", f.FontFamily, f.FontSize, f.Color)
	if len(flags) > 0 {
		s += " " + strings.Join(flags, ",")
	}
	return s
}

// WithAttribute returns a copy of f with the named attribute set from a
// string value. Attribute names are case-insensitive.
func (f Format) WithAttribute(key, value string) (Format, error) {
	switch strings.ToLower(key) {
	case "bold":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return f, &AttributeError{Key: key, Value: value, Err: err}
		}
		f.Bold = b
	case "italic":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return f, &AttributeError{Key: key, Value: value, Err: err}
		}
		f.Italic = b
	case "underline":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return f, &AttributeError{Key: key, Value: value, Err: err}
		}
		f.Underline = b
	case "font", "fontfamily", "font_family":
		if value == "" {
			return f, &AttributeError{Key: key, Value: value, Err: ErrInvalidAttribute}
		}
		f.FontFamily = value
	case "size", "fontsize", "font_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return f, &AttributeError{Key: key, Value: value, Err: err}
		}
		if n <= 0 {
			return f, &AttributeError{Key: key, Value: value, Err: ErrInvalidAttribute}
		}
		f.FontSize = n
	case "color":
		f.Color = value
	default:
		return f, &AttributeError{Key: key, Value: value, Err: ErrUnknownAttribute}
	}
	return f, nil
}
