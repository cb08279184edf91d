package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MarshalJSON encodes the snapshot as a JSON object:
//
//	{"id":"...","createdAt":"RFC3339Nano","text":"...","format":{...}}
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"id", s.id.String()},
		{"createdAt", s.createdAt.Format(time.RFC3339Nano)},
		{"text", s.text},
		{"format.bold", s.format.Bold},
		{"format.italic", s.format.Italic},
		{"format.underline", s.format.Underline},
		{"format.fontFamily", s.format.FontFamily},
		{"format.fontSize", s.format.FontSize},
		{"format.color", s.format.Color},
	}

	data := []byte("{}")
	var err error
	for _, f := range fields {
		data, err = sjson.SetBytes(data, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("encoding snapshot field %s: %w", f.path, err)
		}
	}
	return data, nil
}

// ParseSnapshot decodes a snapshot produced by MarshalJSON.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidSnapshot)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected object", ErrInvalidSnapshot)
	}

	id, err := uuid.Parse(root.Get("id").String())
	if err != nil {
		return nil, fmt.Errorf("%w: id: %v", ErrInvalidSnapshot, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, root.Get("createdAt").String())
	if err != nil {
		return nil, fmt.Errorf("%w: createdAt: %v", ErrInvalidSnapshot, err)
	}

	text := root.Get("text")
	if !text.Exists() {
		return nil, fmt.Errorf("%w: missing text", ErrInvalidSnapshot)
	}

	format := DefaultFormat()
	if f := root.Get("format"); f.Exists() {
		format.Bold = f.Get("bold").Bool()
		format.Italic = f.Get("italic").Bool()
		format.Underline = f.Get("underline").Bool()
		if v := f.Get("fontFamily"); v.Exists() {
			format.FontFamily = v.String()
		}
		if v := f.Get("fontSize"); v.Exists() {
			format.FontSize = int(v.Int())
		}
		if v := f.Get("color"); v.Exists() {
			format.Color = v.String()
		}
	}

	return &Snapshot{
		id:        id,
		text:      text.String(),
		format:    format,
		createdAt: createdAt,
	}, nil
}
