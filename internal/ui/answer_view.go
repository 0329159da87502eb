package ui

import (
	"strings"

	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"Code-Assistant/internal/formatter"
)

var errorStyle = widget.RichTextStyle{
	ColorName: theme.ColorNameError,
	SizeName:  theme.SizeNameText,
}

// AnswerSegments は質問と整形済みブロックを RichText のセグメントに変換します。
// RichText はテキストをそのまま描画するので、エスケープは不要です。
func AnswerSegments(question string, blocks []formatter.Block) []widget.RichTextSegment {
	segs := []widget.RichTextSegment{
		&widget.TextSegment{Style: widget.RichTextStyleHeading, Text: "Question:"},
		&widget.TextSegment{Style: widget.RichTextStyleParagraph, Text: question},
		&widget.TextSegment{Style: widget.RichTextStyleSubHeading, Text: "Answer:"},
	}
	return append(segs, BlockSegments(blocks)...)
}

// BlockSegments renders formatter blocks without the question header.
func BlockSegments(blocks []formatter.Block) []widget.RichTextSegment {
	var segs []widget.RichTextSegment
	for _, b := range blocks {
		switch b.Kind {
		case formatter.Paragraph:
			segs = append(segs, &widget.TextSegment{Style: widget.RichTextStyleParagraph, Text: b.Text})
		case formatter.Label:
			segs = append(segs,
				&widget.TextSegment{Style: widget.RichTextStyleStrong, Text: b.Label + ": "},
				&widget.TextSegment{Style: widget.RichTextStyleParagraph, Text: b.Text},
			)
		case formatter.List:
			items := make([]widget.RichTextSegment, 0, len(b.Lines))
			for _, item := range b.Lines {
				items = append(items, &widget.TextSegment{Style: widget.RichTextStyleParagraph, Text: item})
			}
			segs = append(segs, &widget.ListSegment{Items: items})
		case formatter.Code:
			segs = append(segs, &widget.TextSegment{Style: widget.RichTextStyleCodeBlock, Text: strings.Join(b.Lines, "\n")})
		}
	}
	return segs
}

// ErrorSegments shows msg in the error colour.
func ErrorSegments(msg string) []widget.RichTextSegment {
	return []widget.RichTextSegment{&widget.TextSegment{Style: errorStyle, Text: msg}}
}

// PlainText flattens segments into the text a user sees, for copy and speech.
func PlainText(segs []widget.RichTextSegment) string {
	var b strings.Builder
	for _, s := range segs {
		switch seg := s.(type) {
		case *widget.TextSegment:
			b.WriteString(seg.Text)
			if !seg.Inline() {
				b.WriteString("\n")
			}
		case *widget.ListSegment:
			for _, item := range seg.Items {
				b.WriteString("- ")
				b.WriteString(PlainText([]widget.RichTextSegment{item}))
			}
		}
	}
	return b.String()
}
