// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"strings"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// FormatPositions renders the query string with a caret line underneath
// marking the given byte spans. Artificial spans are skipped. Used by the
// CLI to point at the origin of a finding.
func FormatPositions(queryStr string, spans []query.Span) string {
	marks := make([]byte, len(queryStr))
	for i := range marks {
		marks[i] = ' '
	}
	any := false
	for _, s := range spans {
		if s.IsArtificial() || s.Start >= len(marks) {
			continue
		}
		end := s.End
		if end > len(marks) {
			end = len(marks)
		}
		if end <= s.Start {
			end = s.Start + 1
		}
		for i := s.Start; i < end; i++ {
			marks[i] = '^'
		}
		any = true
	}
	if !any {
		return queryStr
	}
	return queryStr + "\n" + strings.TrimRight(string(marks), " ")
}

// Spans extracts the positions of a message list, for FormatPositions.
func Spans(messages []Message) []query.Span {
	out := make([]query.Span, len(messages))
	for i, m := range messages {
		out[i] = m.Pos
	}
	return out
}
