// Package extract 提供抽取清洗单元测试
package extract

import (
	"errors"
	"reflect"
	"testing"
)

// ========== Sanitize 测试 ==========

func TestSanitizeFencedJSON(t *testing.T) {
	draft, err := Sanitize("```json\n{\"name\":\"Foo\"}\n```")
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}

	if draft.Name != "Foo" {
		t.Errorf("Name = %q, want %q", draft.Name, "Foo")
	}
	if draft.Category != "Other" {
		t.Errorf("Category = %q, want %q", draft.Category, "Other")
	}
	if draft.Website != "" || draft.Description != "" || draft.UseCase != "" || draft.SourceLink != "" {
		t.Errorf("optional string fields not defaulted to empty: %+v", draft)
	}
	if len(draft.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", draft.Tags)
	}
	if draft.RelevanceScore != 3 {
		t.Errorf("RelevanceScore = %d, want 3", draft.RelevanceScore)
	}
}

func TestSanitizeOutOfContractFields(t *testing.T) {
	draft, err := Sanitize(`{"relevance_score": 99, "tags": "notanarray", "category": "BogusCat"}`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}

	if draft.RelevanceScore != 5 {
		t.Errorf("RelevanceScore = %d, want 5 (clamped)", draft.RelevanceScore)
	}
	if len(draft.Tags) != 0 {
		t.Errorf("Tags = %v, want empty for non-array input", draft.Tags)
	}
	if draft.Category != "Other" {
		t.Errorf("Category = %q, want %q", draft.Category, "Other")
	}
}

func TestSanitizeFieldCoercion(t *testing.T) {
	draft, err := Sanitize(`{
		"name": "  Notion  ",
		"category": "Productivity",
		"website": "https://notion.so",
		"tags": ["notes", "  ", "wiki", 42],
		"relevance_score": "4",
		"source_link": "https://example.com/post"
	}`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}

	if draft.Name != "Notion" {
		t.Errorf("Name = %q, want trimmed %q", draft.Name, "Notion")
	}
	if draft.Category != "Productivity" {
		t.Errorf("Category = %q, want %q", draft.Category, "Productivity")
	}
	if want := []string{"notes", "wiki", "42"}; !reflect.DeepEqual(draft.Tags, want) {
		t.Errorf("Tags = %v, want %v", draft.Tags, want)
	}
	if draft.RelevanceScore != 4 {
		t.Errorf("RelevanceScore = %d, want 4", draft.RelevanceScore)
	}
}

func TestSanitizeClampLowScore(t *testing.T) {
	draft, err := Sanitize(`{"name":"x","relevance_score": 0}`)
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if draft.RelevanceScore != 1 {
		t.Errorf("RelevanceScore = %d, want 1 (clamped)", draft.RelevanceScore)
	}
}

func TestSanitizePlainFence(t *testing.T) {
	draft, err := Sanitize("```\n{\"name\":\"Bar\"}\n```")
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if draft.Name != "Bar" {
		t.Errorf("Name = %q, want %q", draft.Name, "Bar")
	}
}

func TestSanitizeParseFailure(t *testing.T) {
	_, err := Sanitize("I could not extract anything from this content.")
	if err == nil {
		t.Fatal("Sanitize() expected error for non-JSON input")
	}
	if !errors.Is(err, ErrParseFailure) {
		t.Errorf("error = %v, want ErrParseFailure", err)
	}
}

// ========== stripCodeFences 测试 ==========

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "plain fence",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "no fence",
			input:    `{"a":1}`,
			expected: `{"a":1}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{\"a\":1}\n```\n  ",
			expected: `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.expected {
				t.Errorf("stripCodeFences() = %q, want %q", got, tt.expected)
			}
		})
	}
}
