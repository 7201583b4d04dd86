package prompt

import (
	"strings"
)

// GroundedBuilder renders the fixed question/context template sent to the
// model. The wording is part of the provider-facing contract: changing it
// shifts model behavior, so it must stay byte-for-byte stable.
type GroundedBuilder struct {
	question string
	context  string
}

// NewGroundedBuilder creates a builder for one question/context pair
func NewGroundedBuilder(question, context string) *GroundedBuilder {
	return &GroundedBuilder{
		question: question,
		context:  context,
	}
}

// Build renders the template. Deterministic, no conditional logic.
func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("As a knowledgeable assistant, provide a clear and helpful answer to the user's question.")
	prompt.WriteString("Question: ")
	prompt.WriteString(b.question)
	prompt.WriteString("Context : ")
	prompt.WriteString(b.context)
	prompt.WriteString("Respond concisely and directly:")

	return prompt.String()
}
