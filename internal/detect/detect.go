// Package detect sniffs stdin to determine the event input format.
package detect

import (
	"bytes"
	"encoding/json"

	"github.com/dkoosis/ciboard/pkg/event"
)

// eventKeys are the wire keys of an event object. A first NDJSON line must
// carry at least one of them.
var eventKeys = []string{"dir", "crate", "type", "event"}

// Sniff examines the first bytes of input to determine format.
// Input must contain at least the first line.
func Sniff(data []byte) event.Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return event.FormatUnknown
	}

	switch data[0] {
	case '[':
		return event.FormatJSON
	case '{':
		if isEventLine(data) {
			return event.FormatNDJSON
		}
		return event.FormatUnknown
	}

	if isYAMLSequence(data) {
		return event.FormatYAML
	}
	return event.FormatUnknown
}

func isEventLine(data []byte) bool {
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(firstLine, &probe); err != nil {
		return false
	}
	for _, k := range eventKeys {
		if _, ok := probe[k]; ok {
			return true
		}
	}
	return false
}

// isYAMLSequence accepts a document whose first significant line is a
// sequence item, optionally preceded by comments or a "---" marker.
func isYAMLSequence(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0, line[0] == '#', bytes.Equal(line, []byte("---")):
			continue
		case bytes.Equal(line, []byte("-")), bytes.HasPrefix(line, []byte("- ")):
			return true
		default:
			return false
		}
	}
	return false
}
