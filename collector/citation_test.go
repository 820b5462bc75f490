package collector

import (
	"reflect"
	"strings"
	"testing"
)

func TestAttributeSpansBoundaries(t *testing.T) {
	full := "A text. ([Cite1](u1)) more text about the first point. ([Cite2](u2)) tail."
	markers := []Marker{
		{URL: "u1", Title: "Cite1", Text: "([Cite1](u1))"},
		{URL: "u2", Title: "Cite2", Text: "([Cite2](u2))"},
	}

	spans := AttributeSpans(full, markers)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	// The first span must end before the second citation's occurrence.
	if strings.Contains(spans["u1"], "([Cite2](u2))") {
		t.Errorf("span for u1 overlaps the second citation: %q", spans["u1"])
	}
	if !strings.Contains(spans["u1"], "more text about the first point") {
		t.Errorf("span for u1 missing its sentence: %q", spans["u1"])
	}
	// The last citation's span extends to end-of-text.
	if !strings.HasSuffix(spans["u2"], "tail.") {
		t.Errorf("span for u2 should reach end-of-text: %q", spans["u2"])
	}
}

func TestAttributeSpansIdempotent(t *testing.T) {
	full := "Opening. ([A](ua)) middle part with words. ([B](ub)) closing statement of the text."
	markers := []Marker{
		{URL: "ua", Title: "A", Text: "([A](ua))"},
		{URL: "ub", Title: "B", Text: "([B](ub))"},
	}
	first := AttributeSpans(full, markers)
	second := AttributeSpans(full, markers)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("attribution not idempotent: %v vs %v", first, second)
	}
}

func TestAttributeSpansSentenceBoundaryRefinement(t *testing.T) {
	// The marker sits deeper than the walk-back window; the span must start
	// just after the nearest sentence boundary inside that window.
	full := strings.Repeat("a", 250) + ". The relevant sentence ([M](um)) with enough trailing words that the span comfortably clears the minimum length threshold for extension."
	markers := []Marker{{URL: "um", Title: "M", Text: "([M](um))"}}

	spans := AttributeSpans(full, markers)
	span, ok := spans["um"]
	if !ok {
		t.Fatal("expected a span for um")
	}
	if !strings.HasPrefix(span, "The relevant sentence") {
		t.Errorf("span should start after the sentence boundary, got %q", span)
	}
	if !strings.HasSuffix(span, "extension.") {
		t.Errorf("span should reach end-of-text, got %q", span)
	}
}

func TestAttributeSpansShortSpanExtension(t *testing.T) {
	full := "Intro. ([A](ua)) short. ([B](ub)) continuing clause here. More text follows."
	markers := []Marker{
		{URL: "ua", Title: "A", Text: "([A](ua))"},
		{URL: "ub", Title: "B", Text: "([B](ub))"},
	}

	spans := AttributeSpans(full, markers)
	want := "Intro. ([A](ua)) short. ([B](ub)) continuing clause here."
	if spans["ua"] != want {
		t.Errorf("span for ua = %q, want %q", spans["ua"], want)
	}
}

func TestAttributeSpansUnresolvableMarkerSkipped(t *testing.T) {
	full := "Some text with one citation. ([Present](up)) and nothing else worth noting here."
	markers := []Marker{
		{URL: "up", Title: "Present", Text: "([Present](up))"},
		{URL: "ug", Title: "Ghost", Text: "([Ghost](ug))"},
	}

	spans := AttributeSpans(full, markers)
	if _, ok := spans["ug"]; ok {
		t.Error("marker absent from text must produce no span")
	}
	if _, ok := spans["up"]; !ok {
		t.Error("resolvable marker should produce a span")
	}
}

func TestAttributeSpansIdenticalTextsCollapse(t *testing.T) {
	full := "First mention. ([Same](us)) repeated later ([Same](us)) and a tail sentence to finish."
	markers := []Marker{
		{URL: "us", Title: "Same", Text: "([Same](us))"},
		{URL: "us", Title: "Same", Text: "([Same](us))"},
	}

	spans := AttributeSpans(full, markers)
	if len(spans) != 1 {
		t.Fatalf("identical markers should collapse to one target, got %d", len(spans))
	}
	// The duplicate must not act as a span-end boundary for itself.
	if !strings.HasSuffix(spans["us"], "to finish.") {
		t.Errorf("span should run to end-of-text, got %q", spans["us"])
	}
}
