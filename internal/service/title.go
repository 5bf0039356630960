package service

import (
	"strings"
	"unicode"
)

const titleLimit = 50

// deriveTitle shortens the first user message to a chat title.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLimit {
		return content
	}
	return strings.TrimRightFunc(string(runes[:titleLimit]), unicode.IsSpace) + "..."
}
