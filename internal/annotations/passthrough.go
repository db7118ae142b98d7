package annotations

import "strings"

// SplitArgs splits an opaque argument run on top-level commas. Commas inside
// parentheses, brackets, braces, or string/rune literals do not split. Each
// token is trimmed of surrounding whitespace but is otherwise preserved
// verbatim, in its original order. An empty or all-whitespace run yields nil,
// so "()" behaves exactly like an absent argument list.
func SplitArgs(inner string) []string {
	if strings.TrimSpace(inner) == "" {
		return nil
	}

	var (
		tokens  []string
		start   int
		depth   int
		quote   byte // active quote character, 0 when outside literals
		escaped bool
	)

	for i := 0; i < len(inner); i++ {
		c := inner[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\' && quote != '`':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				tokens = append(tokens, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}

	tokens = append(tokens, strings.TrimSpace(inner[start:]))
	return tokens
}

// JoinArgs reassembles tokens into the form they take inside a directive's
// argument list. SplitArgs(JoinArgs(tokens)) == tokens for any tokens that
// came out of SplitArgs.
func JoinArgs(tokens []string) string {
	return strings.Join(tokens, ", ")
}
