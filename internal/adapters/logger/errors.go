package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/lockb/internal/ui/style"
)

// messager describes an error that can report its own message and metadata
// without the chain, as zerr.Error does.
type messager interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of err. zerr errors contribute their
// own message and metadata; the first standard error ends the walk with its
// full text. A link with an empty message only carries metadata, which is
// attached to the previous entry, or to the next one at the head of the chain.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any
	for current := err; current != nil; current = errors.Unwrap(current) {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}
		if m.Message() == "" {
			if len(entries) > 0 {
				entries[len(entries)-1].Metadata = merge(entries[len(entries)-1].Metadata, m.Metadata())
			} else {
				pending = merge(pending, m.Metadata())
			}
			continue
		}
		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: merge(m.Metadata(), pending)})
		pending = nil
	}
	return entries
}

func merge(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// formatErrorEntries renders entries as "Error: ..." followed by an
// indented "Caused by:" list. Metadata is printed sorted by key.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		indent := "       "
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    "+style.Arrow+" "+msgLines[0])
			indent = "      "
		}
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}
	return strings.Join(lines, "\n")
}
