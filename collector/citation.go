package collector

import "strings"

// Marker is one citation reference as it literally appears embedded in a
// model's free-text response, e.g. "([Some headline](https://example.com/a))".
type Marker struct {
	URL   string
	Title string
	Text  string
}

const (
	// contextWindow bounds the backward walk from a marker occurrence when
	// looking for the start of the sentence the citation supports.
	contextWindow = 200
	// minSpan is the length under which a span is extended forward to the
	// next sentence terminator to avoid truncating a dangling clause.
	minSpan = 100
)

// AttributeSpans computes, for every marker, the contiguous span of full that
// the citation most plausibly supports, keyed by the marker's URL. Markers
// whose literal text does not occur in full produce no entry. Markers sharing
// an identical literal text are treated as one citation target for boundary
// purposes. The function is pure: the same input always yields the same map.
func AttributeSpans(full string, markers []Marker) map[string]string {
	spans := make(map[string]string)

	for _, m := range markers {
		start := strings.Index(full, m.Text)
		if start == -1 {
			continue
		}
		markerEnd := start + len(m.Text)

		// Walk back up to the window, then snap forward to just after the
		// nearest sentence boundary or line break inside it.
		spanStart := start - contextWindow
		if spanStart < 0 {
			spanStart = 0
		}
		if spanStart > 0 {
			window := full[spanStart:start]
			boundary := strings.LastIndex(window, ". ")
			if nl := strings.LastIndex(window, "\n"); nl > boundary {
				boundary = nl
			}
			if boundary != -1 {
				spanStart += boundary + 1
			}
		}

		// The span ends where the next different citation begins, or at
		// end-of-text for the chronologically last marker.
		spanEnd := len(full)
		for _, other := range markers {
			if other.Text == m.Text {
				continue
			}
			if pos := strings.Index(full[markerEnd:], other.Text); pos != -1 && markerEnd+pos < spanEnd {
				spanEnd = markerEnd + pos
			}
		}

		span := strings.TrimSpace(full[spanStart:spanEnd])

		// Too short and more text remains: extend to the next sentence
		// terminator past the current end.
		if len(span) < minSpan && spanEnd < len(full) {
			if pos := strings.Index(full[spanEnd:], ". "); pos != -1 {
				span = strings.TrimSpace(full[spanStart : spanEnd+pos+1])
			}
		}

		spans[m.URL] = span
	}
	return spans
}
