package transform

import (
	"fmt"
	"strings"

	"github.com/roach88/chalmers-thesis/internal/ir"
	"github.com/roach88/chalmers-thesis/internal/structure"
)

// placement returns the pushes for a figure or table: the placement event
// first, then its label, so the label's last-kind is the placement.
func placement(ev structure.Event, label string) []ir.Node {
	nodes := []ir.Node{ev.Push()}
	if label != "" {
		nodes = append(nodes, structure.Label(label).Push())
	}
	return nodes
}

// captionPrefix numbers an HTML caption through an element-number
// invocation, which the host evaluates once the whole log is known.
// LaTeX captions are numbered by LaTeX itself.
func captionPrefix(kind, label, caption, to string) string {
	if to != ir.FormatHTML {
		return caption
	}
	if label == "" {
		return fmt.Sprintf("**%s:** %s", kind, caption)
	}
	return fmt.Sprintf("**%s [element-number](%s):** %s", kind, label, caption)
}

// invocation formats a module call with quoted positional arguments and a
// multiline body.
func invocation(module string, args []string, body string) string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(module)
	for _, a := range args {
		sb.WriteString(` "`)
		sb.WriteString(a)
		sb.WriteString(`"`)
	}
	sb.WriteString("](((\n")
	sb.WriteString(body)
	sb.WriteString("\n)))")
	return sb.String()
}

func (t *Transformer) fancyImage(el ir.Element, to string) ([]ir.Node, error) {
	label := el.Arg("label")
	caption := captionPrefix("Figure", label, el.Arg("caption"), to)

	call := invocation("image", []string{
		el.Arg("alt"),
		caption,
		label,
		el.Arg("width"),
		el.Arg("embed"),
		el.Arg("caption-alignment"),
	}, el.Data)

	return append(placement(structure.Figure(), label), ir.Block(call)), nil
}

func (t *Transformer) fancyTable(el ir.Element, to string) ([]ir.Node, error) {
	label := el.Arg("label")
	caption := captionPrefix("Table", label, el.Arg("caption"), to)

	call := invocation("table", []string{
		caption,
		label,
		el.Arg("header"),
		el.Arg("alignment"),
		el.Arg("borders"),
		el.Arg("delimiter"),
		el.Arg("strip_whitespace"),
	}, el.Data)

	return append(placement(structure.Table(), label), ir.Block(call)), nil
}

func (t *Transformer) fancyBigTable(el ir.Element, to string) ([]ir.Node, error) {
	label := el.Arg("label")
	caption := captionPrefix("Table", label, el.Arg("caption"), to)

	call := invocation("big-table", []string{
		caption,
		label,
		el.Arg("alignment"),
		el.Arg("borders"),
		el.Arg("column-delimiter"),
		el.Arg("row-delimiter"),
	}, el.Data)

	return append(placement(structure.Table(), label), ir.Block(call)), nil
}
