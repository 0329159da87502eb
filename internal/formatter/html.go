package formatter

import (
	"fmt"
	"strings"
)

// escaper covers the four characters that matter inside element content
// and double-quoted attributes.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape replaces &, <, > and " with their entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Highlight converts a raw answer into an HTML fragment.
func Highlight(answer string) string {
	return HTML(Parse(answer))
}

// HTML renders blocks as an HTML fragment, one element per output line.
func HTML(blocks []Block) string {
	var out []string
	for _, b := range blocks {
		switch b.Kind {
		case Paragraph:
			out = append(out, "<p>"+Escape(b.Text)+"</p>")
		case Label:
			out = append(out, fmt.Sprintf("<b>%s:</b> %s<br>", Escape(b.Label), Escape(b.Text)))
		case List:
			out = append(out, "<ul>")
			for _, item := range b.Lines {
				out = append(out, "<li>"+Escape(item)+"</li>")
			}
			out = append(out, "</ul>")
		case Code:
			out = append(out, "<pre>")
			for _, line := range b.Lines {
				out = append(out, Escape(line))
			}
			out = append(out, "</pre>")
		}
	}
	return strings.Join(out, "\n")
}

type palette struct {
	text, background, heading, subheading, codeText, codeBackground string
}

var (
	darkPalette  = palette{"#00ffcc", "#1e1e1e", "#ffffff", "#ffcc00", "#00ffaa", "#000000"}
	lightPalette = palette{"#1e1e1e", "#ffffff", "#000000", "#b36b00", "#00664a", "#f0f0f0"}
)

// Document wraps the highlighted answer into a standalone HTML page that
// also shows the question.
func Document(question, answer string, dark bool) string {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	var b strings.Builder
	b.WriteString("<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	fmt.Fprintf(&b, "body { font-family: 'Segoe UI', sans-serif; color: %s; background-color: %s; }\n", p.text, p.background)
	fmt.Fprintf(&b, "h1 { color: %s; font-size: 20px; }\n", p.heading)
	fmt.Fprintf(&b, "h2 { color: %s; font-size: 17px; }\n", p.subheading)
	b.WriteString("p { font-size: 14px; line-height: 1.5; }\n")
	fmt.Fprintf(&b, "pre { background-color: %s; color: %s; padding: 10px; border-radius: 5px; font-family: 'Courier New', monospace; white-space: pre-wrap; }\n", p.codeBackground, p.codeText)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString("<h1>Question:</h1>\n")
	b.WriteString("<p>" + Escape(question) + "</p>\n")
	b.WriteString("<h2>Answer:</h2>\n")
	b.WriteString("<div>" + Highlight(answer) + "</div>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
