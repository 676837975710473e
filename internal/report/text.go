package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TextStyles controls how WriteText decorates each kind of node.
type TextStyles struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Label     lipgloss.Style
	Body      lipgloss.Style
	Text      lipgloss.Style
	Bullet    string
	Indent    string
}

func DefaultTextStyles() TextStyles {
	return TextStyles{
		Primary:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e293b")).Underline(true),
		Secondary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#374151")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4f46e5")),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color("#1f2937")),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color("#475569")),
		Bullet:    "• ",
		Indent:    "  ",
	}
}

// PlainTextStyles renders without any terminal escape codes.
func PlainTextStyles() TextStyles {
	return TextStyles{
		Primary:   lipgloss.NewStyle(),
		Secondary: lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle(),
		Body:      lipgloss.NewStyle(),
		Text:      lipgloss.NewStyle(),
		Bullet:    "- ",
		Indent:    "  ",
	}
}

// WriteText writes the node tree as indented terminal text.
func WriteText(w io.Writer, root *Node, styles TextStyles) error {
	var b strings.Builder
	writeNode(&b, root, "", styles)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, n *Node, indent string, styles TextStyles) {
	if n == nil {
		return
	}

	switch n.Kind {
	case NodeText:
		writeLine(b, indent, styles.Text.Render(n.Text))

	case NodePointDetail:
		writeLine(b, indent, styles.Label.Render(n.Text))
		writeLine(b, indent+styles.Indent, styles.Body.Render(n.Body))

	case NodeList:
		for _, item := range n.Children {
			if len(item.Children) == 0 {
				writeLine(b, indent, styles.Bullet+styles.Text.Render(item.Text))
				continue
			}
			writeLine(b, indent, strings.TrimRight(styles.Bullet, " "))
			for _, child := range item.Children {
				writeNode(b, child, indent+styles.Indent, styles)
			}
		}

	case NodeGroup:
		for _, section := range n.Children {
			writeNode(b, section, indent, styles)
		}

	case NodeSection:
		heading := styles.Secondary
		if n.Weight == WeightPrimary {
			heading = styles.Primary
		}
		writeLine(b, indent, heading.Render(n.Text))
		for _, child := range n.Children {
			writeNode(b, child, indent+styles.Indent, styles)
		}
	}
}

func writeLine(b *strings.Builder, indent, text string) {
	b.WriteString(indent)
	b.WriteString(text)
	b.WriteString("\n")
}
