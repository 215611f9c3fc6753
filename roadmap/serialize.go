package roadmap

import (
	"strings"
)

// Serialize writes lines back to the text notation. Parse(Serialize(x)) gives x back
// with distances and speeds rounded to 3 decimals, line numbers included: skipped blank
// lines are written back. Synthetic points are left out, their directive regenerates them.
func Serialize(lines []Line) string {
	var b strings.Builder
	written := 0
	for _, l := range lines {
		n := l.LineNumber()
		if n.SubNumber > 0 {
			continue
		}
		for ; written+1 < n.Number; written++ {
			b.WriteString("\n")
		}
		written++

		switch l := l.(type) {
		case *CommentLine:
			b.WriteString(CommentMarker)
			if l.Text != "" {
				b.WriteString(" ")
				b.WriteString(l.Text)
			}
		case *PositionLine:
			b.WriteString(l.Distance.String())
			for _, m := range l.Modifiers {
				for _, t := range m.Tokens() {
					b.WriteString(" ")
					b.WriteString(t)
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
