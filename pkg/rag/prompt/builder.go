package prompt

import (
	"fmt"
	"strings"
)

// HistoryEntry is one prior conversation turn, oldest first.
type HistoryEntry struct {
	Role    string
	Content string
}

// Builder assembles the single generation prompt for a conversation turn.
// Section order is fixed: history, retrieved passages, web digest, then the
// new user message. Retrieval and web lookups have already happened by the
// time Build runs, so nothing captured during this turn can feed back into
// its own context.
type Builder struct {
	history  []HistoryEntry
	passages []string
	webInfo  string
	message  string
}

func NewBuilder(history []HistoryEntry, passages []string, webInfo string, message string) *Builder {
	return &Builder{
		history:  history,
		passages: passages,
		webInfo:  webInfo,
		message:  message,
	}
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	b.writeHistory(&prompt)
	b.writePassages(&prompt)
	b.writeWebInfo(&prompt)
	b.writeUserMessage(&prompt)

	return prompt.String()
}

func (b *Builder) writeHistory(prompt *strings.Builder) {
	prompt.WriteString("Context:\n")
	for _, h := range b.history {
		prompt.WriteString(fmt.Sprintf("%s: %s\n", h.Role, h.Content))
	}
	prompt.WriteString("\n")
}

func (b *Builder) writePassages(prompt *strings.Builder) {
	prompt.WriteString("Relevant info from RAG:\n")
	for _, p := range b.passages {
		prompt.WriteString(p)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\n")
}

func (b *Builder) writeWebInfo(prompt *strings.Builder) {
	prompt.WriteString("Latest info from web:\n")
	prompt.WriteString(b.webInfo)
	prompt.WriteString("\n\n")
}

func (b *Builder) writeUserMessage(prompt *strings.Builder) {
	prompt.WriteString("User: ")
	prompt.WriteString(b.message)
	prompt.WriteString("\nAI:")
}
