package feed

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<b>Hello</b>  world", "Hello world"},
		{"<p>Text with <a href=\"x\">a link</a> inside</p>", "Text with a link inside"},
		{"no markup at all", "no markup at all"},
		{"  leading and   trailing  ", "leading and trailing"},
		{"line\nbreaks\tand\ttabs", "line breaks and tabs"},
		{"<div><span></span></div>", ""},
		{"", ""},
	}

	for _, test := range tests {
		result := CleanDescription(test.input)
		if result != test.expected {
			t.Errorf("For input '%s', expected '%s', got '%s'", test.input, test.expected, result)
		}
	}
}

func TestSummarizeShortText(t *testing.T) {
	input := "A short plain description."

	result := Summarize(input, 200)
	if result != input {
		t.Errorf("Expected short text unchanged, got '%s'", result)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	tests := []string{"", "   ", "<p></p>", "<br/>"}

	for _, input := range tests {
		result := Summarize(input, 200)
		if result != NoDescription {
			t.Errorf("For input '%s', expected sentinel '%s', got '%s'", input, NoDescription, result)
		}
	}
}

func TestSummarizeTruncatesLongText(t *testing.T) {
	words := make([]string, 250)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}

	result := Summarize(strings.Join(words, " "), 200)

	expected := strings.Join(words[:200], " ") + "..."
	if result != expected {
		t.Errorf("Expected first 200 words with ellipsis, got '%s'", result)
	}
}

func TestSummarizeIdempotentOnShortText(t *testing.T) {
	input := "Already clean and well under the word limit."

	once := Summarize(input, 200)
	twice := Summarize(once, 200)

	if once != twice {
		t.Errorf("Expected idempotent result, got '%s' then '%s'", once, twice)
	}
}

func TestSummarizeDecodesEntities(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"&quot;Quoted&quot; text", "\"Quoted\" text"},
		{"&lt;b&gt;bold&lt;/b&gt; text", "bold text"},
	}

	for _, test := range tests {
		result := Summarize(test.input, 200)
		if result != test.expected {
			t.Errorf("For input '%s', expected '%s', got '%s'", test.input, test.expected, result)
		}
	}
}

func TestSummarizeStripsTags(t *testing.T) {
	input := "<p>Watch the <strong>full</strong> review</p>"

	result := Summarize(input, 200)
	if result != "Watch the full review" {
		t.Errorf("Expected tags stripped, got '%s'", result)
	}
}

func TestParsePublished(t *testing.T) {
	expected := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		ok    bool
	}{
		{"Mon, 01 Jul 2024 10:00:00 +0000", true},
		{"Mon, 01 Jul 2024 10:00:00 UTC", true},
		{"2024-07-01T10:00:00Z", true},
		{"2024-07-01T10:00:00+00:00", true},
		{"2024-07-01T10:00:00+0000", true},
		{"2024-07-01 10:00:00", true},
		{"July 1st, 2024", false},
		{"1719828000", false},
		{"", false},
	}

	for _, test := range tests {
		parsed, ok := ParsePublished(test.input)
		if ok != test.ok {
			t.Errorf("For input '%s', expected ok=%v, got %v", test.input, test.ok, ok)
			continue
		}

		if ok && !parsed.Equal(expected) {
			t.Errorf("For input '%s', expected %v, got %v", test.input, expected, parsed)
		}
	}
}

func TestParsePublishedPreservesOffset(t *testing.T) {
	parsed, ok := ParsePublished("Mon, 01 Jul 2024 12:00:00 +0200")
	if !ok {
		t.Fatal("Expected offset timestamp to parse")
	}

	expected := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, parsed.UTC())
	}
}
