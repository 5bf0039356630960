package service

import (
	"context"
	"fmt"
	"strings"

	"routerchat/backend/internal/llm"
	"routerchat/backend/internal/model"
	"routerchat/backend/internal/repository"
)

// historyWindow is the number of persisted messages sent with each request.
// Older messages are silently dropped.
const historyWindow = 20

// Document is attachment text to be folded into a prompt.
type Document struct {
	Filename string
	Text     string
}

// HistoryAssembler builds the message list sent to the model.
type HistoryAssembler struct {
	repo repository.Repository
}

func NewHistoryAssembler(repo repository.Repository) *HistoryAssembler {
	return &HistoryAssembler{repo: repo}
}

// Assemble returns the optional system prompt, the last historyWindow messages
// before beforeSeq (oldest first) and finally the new user message with its
// documents appended.
func (h *HistoryAssembler) Assemble(ctx context.Context, chat *model.Chat, beforeSeq int64, newText string, newDocs []Document) ([]llm.Message, error) {
	history, err := h.repo.GetRecentMessages(ctx, chat.ID, beforeSeq, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	if prompt := chat.Settings.SystemPrompt(); prompt != "" {
		messages = append(messages, llm.Message{Role: model.RoleSystem, Content: prompt})
	}

	for _, m := range history {
		var docs []Document
		for _, a := range m.Attachments {
			if a.ExtractionStatus == model.ExtractionExtracted && a.ExtractedContent != nil {
				docs = append(docs, Document{Filename: a.Filename, Text: *a.ExtractedContent})
			}
		}
		messages = append(messages, llm.Message{Role: m.Role, Content: withDocuments(m.Content, docs)})
	}

	messages = append(messages, llm.Message{Role: model.RoleUser, Content: withDocuments(newText, newDocs)})
	return messages, nil
}

func withDocuments(text string, docs []Document) string {
	if len(docs) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(text)
	for _, d := range docs {
		fmt.Fprintf(&b, "\n\n[Attached Document: %s]\n%s", d.Filename, d.Text)
	}
	return b.String()
}
