package parser

import "unicode"

// word is one whitespace-delimited token and its byte offsets in the line.
type word struct {
	text       string
	start, end int
}

func splitWords(line string) []word {
	var ws []word
	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				ws = append(ws, word{text: line[start:i], start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		ws = append(ws, word{text: line[start:], start: start, end: len(line)})
	}
	return ws
}

// span returns the original text from the first to the last of ws,
// including the whitespace between them.
func span(line string, ws []word) string {
	if len(ws) == 0 {
		return ""
	}
	return line[ws[0].start:ws[len(ws)-1].end]
}
