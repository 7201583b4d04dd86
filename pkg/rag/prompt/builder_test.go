package prompt

import (
	"strings"
	"testing"
)

func TestGroundedBuilderBuild(t *testing.T) {
	tests := []struct {
		name     string
		question string
		context  string
		want     string
	}{
		{
			name:     "question and context",
			question: "What is the capital of France?",
			context:  "Paris is the capital and largest city of France.",
			want: "As a knowledgeable assistant, provide a clear and helpful answer to the user's question." +
				"Question: What is the capital of France?" +
				"Context : Paris is the capital and largest city of France." +
				"Respond concisely and directly:",
		},
		{
			name:     "empty context",
			question: "Hello?",
			context:  "",
			want: "As a knowledgeable assistant, provide a clear and helpful answer to the user's question." +
				"Question: Hello?" +
				"Context : " +
				"Respond concisely and directly:",
		},
		{
			name:     "multiline context preserved verbatim",
			question: "Summarize",
			context:  "line one\n\nline two",
			want: "As a knowledgeable assistant, provide a clear and helpful answer to the user's question." +
				"Question: Summarize" +
				"Context : line one\n\nline two" +
				"Respond concisely and directly:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewGroundedBuilder(tt.question, tt.context).Build()
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroundedBuilderDeterministic(t *testing.T) {
	b := NewGroundedBuilder("same question", "same context")

	first := b.Build()
	for i := 0; i < 10; i++ {
		if got := b.Build(); got != first {
			t.Fatalf("Build() not deterministic: iteration %d returned %q, first was %q", i, got, first)
		}
	}

	if !strings.Contains(first, "Context : same context") {
		t.Errorf("rendered prompt missing context section: %q", first)
	}
}
