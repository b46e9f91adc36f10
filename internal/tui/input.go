package tui

import "unicode/utf8"

// maxQueryLen is GitHub's limit on search query length, in runes.
const maxQueryLen = 256

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxQueryLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "ctrl+u":
		return ""
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxQueryLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// appendText inserts pasted text, dropping newlines and clamping to
// maxQueryLen runes.
func appendText(text, pasted string) string {
	room := maxQueryLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	var out []rune
	for _, r := range pasted {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if len(out) == room {
			break
		}
		out = append(out, r)
	}
	return text + string(out)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
