package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how Export renders a journal snapshot
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user-supplied format name into a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown history format %q (want text, json or yaml)", name)
	}
}

// exportedEntry is the serialized form of an entry
type exportedEntry struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Message   string `json:"message" yaml:"message"`
	Line      string `json:"line" yaml:"line"`
}

// Export writes a snapshot of the journal to w. It never reads anything back.
func Export(w io.Writer, j *Journal, format Format) error {
	entries := j.Entries()

	switch format {
	case FormatText:
		for _, entry := range entries {
			if _, err := fmt.Fprintln(w, entry.String()); err != nil {
				return fmt.Errorf("failed to write history: %w", err)
			}
		}
		return nil
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported history format %q", format)
	}

	out := make([]exportedEntry, len(entries))
	for i, entry := range entries {
		out[i] = exportedEntry{
			Timestamp: entry.Timestamp.Local().Format(TimestampLayout),
			Message:   entry.Message,
			Line:      entry.String(),
		}
	}

	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return enc.Close()
}
