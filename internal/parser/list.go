// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// List queries number their sub-queries line by line and combine them by
// reference:
//
//	1. "digital work"[tiab]
//	2. "labour"[tiab]
//	3. #1 OR #2
//
// ResolveList flattens such a list into the single query string of its
// last line, with every #k reference replaced by the referenced line in
// parentheses. The result is then parsed by the platform parser like any
// other query string.

var (
	listItemRe = regexp.MustCompile(`^\s*#?(\d+)[.)]\s*(.+)$`)
	listRefRe  = regexp.MustCompile(`#(\d+)`)
)

// IsListQuery reports whether the string looks like a numbered query list.
func IsListQuery(queryStr string) bool {
	lines := nonEmptyLines(queryStr)
	if len(lines) < 2 {
		return false
	}
	for _, line := range lines {
		if !listItemRe.MatchString(line) {
			return false
		}
	}
	return true
}

// ResolveList composes a numbered query list into one query string. List
// structure problems are fatal: a reference to an unknown item, and items
// the final line never connects to, both make the list meaningless as a
// single query.
func ResolveList(queryStr string) (string, []lint.Message, error) {
	h := lint.NewHandler(queryStr, lint.ModeLenient)

	resolved := map[int]string{}
	referenced := map[int]bool{}
	var order []int

	offset := 0
	for _, line := range strings.Split(queryStr, "\n") {
		lineStart := offset
		offset += len(line) + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := listItemRe.FindStringSubmatch(line)
		if m == nil {
			h.AddFatal(lint.TokenizingFailed,
				query.Span{Start: lineStart, End: lineStart + len(line)},
				fmt.Sprintf("cannot read list item: %q", strings.TrimSpace(line)))
			return "", h.Messages(), h.Err()
		}
		num, _ := strconv.Atoi(m[1])
		content := strings.TrimSpace(m[2])

		bad := query.Artificial
		content = listRefRe.ReplaceAllStringFunc(content, func(ref string) string {
			k, _ := strconv.Atoi(ref[1:])
			sub, ok := resolved[k]
			if !ok {
				at := lineStart + strings.Index(line, ref)
				bad = query.Span{Start: at, End: at + len(ref)}
				return ref
			}
			referenced[k] = true
			return "(" + sub + ")"
		})
		if bad != query.Artificial {
			h.AddFatal(lint.InvalidListReference, bad,
				"list reference points to an unknown or later item")
			return "", h.Messages(), h.Err()
		}

		resolved[num] = content
		order = append(order, num)
	}

	if len(order) == 0 {
		h.AddFatal(lint.MissingRootNode, query.Artificial, "empty query list")
		return "", h.Messages(), h.Err()
	}

	last := order[len(order)-1]
	for _, num := range order[:len(order)-1] {
		if !referenced[num] {
			h.AddFatal(lint.MissingRootNode, query.Artificial,
				fmt.Sprintf("list item %d is not connected to the final query", num))
		}
	}
	if h.HasFatal() {
		return "", h.Messages(), h.Err()
	}
	return resolved[last], h.Messages(), nil
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
