package event

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is an input encoding for a batch of events.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON           // a single JSON array of event objects
	FormatNDJSON         // one JSON event object per line
	FormatYAML           // a YAML sequence of event mappings
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatNDJSON:
		return "ndjson"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

const itemSchema = `{
	"type": "object",
	"required": ["dir", "crate", "type", "event"],
	"properties": {
		"dir":   {"type": "string", "minLength": 1},
		"crate": {"type": "string", "minLength": 1},
		"type":  {"type": "string", "minLength": 1},
		"event": {"type": "string"}
	}
}`

var (
	eventSchema = mustSchema(itemSchema)
	batchSchema = mustSchema(`{"type": "array", "items": ` + itemSchema + `}`)
)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("event: invalid schema: %v", err))
	}
	return schema
}

// Decode parses data according to f.
func Decode(f Format, data []byte) ([]Event, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatNDJSON:
		return DecodeNDJSON(bytes.NewReader(data))
	case FormatYAML:
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: unrecognized input format", ErrMalformedEvent)
	}
}

// DecodeJSON parses a JSON array of events. The document is checked against
// the event schema first so every violation is reported at once.
func DecodeJSON(data []byte) ([]Event, error) {
	if err := validate(batchSchema, data); err != nil {
		return nil, err
	}
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

// DecodeNDJSON parses one event object per line. Blank lines are skipped.
// The first malformed line aborts decoding.
func DecodeNDJSON(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	events := []Event{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := validate(eventSchema, line); err != nil {
			return nil, &Error{Index: len(events), Err: fmt.Errorf("line %d: %w", lineNo, err)}
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, &Error{Index: len(events), Err: fmt.Errorf("line %d: %w: %v", lineNo, ErrMalformedEvent, err)}
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning events: %w", err)
	}
	return events, nil
}

// yamlEvent distinguishes an absent key (nil) from an empty value.
type yamlEvent struct {
	Dir      *string `yaml:"dir"`
	Project  *string `yaml:"crate"`
	Category *string `yaml:"type"`
	Outcome  *string `yaml:"event"`
}

// DecodeYAML parses a YAML sequence of events. Every key must be present;
// empty labels are rejected later, during aggregation.
func DecodeYAML(data []byte) ([]Event, error) {
	var raw []yamlEvent
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	events := make([]Event, 0, len(raw))
	for i, r := range raw {
		for _, f := range []struct {
			key string
			val *string
		}{{"dir", r.Dir}, {"crate", r.Project}, {"type", r.Category}, {"event", r.Outcome}} {
			if f.val == nil {
				return nil, missing(i, f.key)
			}
		}
		events = append(events, Event{Dir: *r.Dir, Project: *r.Project, Category: *r.Category, Outcome: *r.Outcome})
	}
	return events, nil
}

func validate(schema *gojsonschema.Schema, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		msgs = append(msgs, re.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformedEvent, strings.Join(msgs, "; "))
}
