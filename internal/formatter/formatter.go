// Package formatter turns a raw AI answer into light markup: paragraphs,
// bold-label lines, bullet lists and fenced code blocks.
package formatter

import "strings"

const fence = "```"

// Kind は Block の種類です。
type Kind int

const (
	Paragraph Kind = iota
	Label
	List
	Code
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Label:
		return "label"
	case List:
		return "list"
	case Code:
		return "code"
	}
	return "unknown"
}

// Block is one markup element of a formatted answer. Text is raw (unescaped).
//
//	Paragraph: Text holds the whole line.
//	Label:     Label holds the part before the first colon, Text the rest.
//	List:      Lines holds one item per list line.
//	Code:      Lines holds the code lines between the fences.
type Block struct {
	Kind  Kind
	Label string
	Text  string
	Lines []string
}

// mode is the scanner state. Paragraph, list and code are exclusive.
type mode int

const (
	modeParagraph mode = iota
	modeList
	modeCode
)

// Parse scans answer line by line and groups it into blocks.
// Any input is accepted; an empty answer yields no blocks. An unterminated
// fence or a trailing list is closed at end of input.
func Parse(answer string) []Block {
	if answer == "" {
		return nil
	}

	var (
		blocks []Block
		open   Block
		state  = modeParagraph
	)
	flush := func() {
		if state != modeParagraph {
			blocks = append(blocks, open)
			open = Block{}
			state = modeParagraph
		}
	}

	for _, line := range strings.Split(answer, "\n") {
		if strings.Contains(line, fence) {
			if state == modeCode {
				flush()
				continue
			}
			flush()
			open = Block{Kind: Code, Lines: []string{}}
			state = modeCode
			continue
		}
		if state == modeCode {
			open.Lines = append(open.Lines, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") {
			if state != modeList {
				open = Block{Kind: List, Lines: []string{}}
				state = modeList
			}
			open.Lines = append(open.Lines, strings.TrimSpace(trimmed[1:]))
			continue
		}

		flush()
		if left, right, ok := strings.Cut(line, ":"); ok {
			blocks = append(blocks, Block{
				Kind:  Label,
				Label: strings.TrimSpace(left),
				Text:  strings.TrimSpace(right),
			})
			continue
		}
		blocks = append(blocks, Block{Kind: Paragraph, Text: line})
	}
	flush()
	return blocks
}

// Unterminated reports whether answer has an odd number of fence lines,
// i.e. a code block that Parse had to close on its own.
func Unterminated(answer string) bool {
	n := 0
	for _, line := range strings.Split(answer, "\n") {
		if strings.Contains(line, fence) {
			n++
		}
	}
	return n%2 == 1
}
