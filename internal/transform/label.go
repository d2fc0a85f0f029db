package transform

import (
	"fmt"

	"github.com/roach88/chalmers-thesis/internal/ir"
	"github.com/roach88/chalmers-thesis/internal/structure"
)

// label emits Label(name) and renders an anchor at the current position.
func (t *Transformer) label(el ir.Element, to string) ([]ir.Node, error) {
	name := el.Data
	if name == "" {
		return nil, ir.Errorf(ir.ErrCodeInvalidArgument, el.Name, "label name is empty")
	}
	escaped := escapeLabel(name)

	push := structure.Label(name).Push()
	switch to {
	case ir.FormatLaTeX:
		return []ir.Node{push, ir.Text(fmt.Sprintf(`\label{%s}`, escaped))}, nil
	default:
		return []ir.Node{push, ir.Text(fmt.Sprintf(`<span id="%s"></span>`, escaped))}, nil
	}
}

// reference renders a link to a label. In HTML the link text is the
// label's number resolved from the structure log; LaTeX numbers the
// reference itself.
func (t *Transformer) reference(el ir.Element, to string) ([]ir.Node, error) {
	name := el.Data
	escaped := escapeLabel(name)

	switch to {
	case ir.FormatLaTeX:
		return []ir.Node{ir.Raw(fmt.Sprintf(`\ref{%s}`, escaped))}, nil
	default:
		number, err := t.resolve(el.Name, name)
		if err != nil {
			return nil, err
		}
		return []ir.Node{
			ir.Raw(fmt.Sprintf(`<a href="#%s">`, escaped)),
			ir.Text(number),
			ir.Raw("</a>"),
		}, nil
	}
}

// elementNumber renders the resolved number of a label, or nothing.
func (t *Transformer) elementNumber(el ir.Element, _ string) ([]ir.Node, error) {
	number, err := t.resolve(el.Name, el.Data)
	if err != nil {
		return nil, err
	}
	return []ir.Node{ir.Text(number)}, nil
}

func (t *Transformer) resolve(element, label string) (string, error) {
	log, err := structure.ParseLog(t.vars.Structure)
	if err != nil {
		return "", fmt.Errorf("%s: %w", element, err)
	}
	number := structure.Resolve(log, label)
	if number == "" {
		t.logger.Debug("unresolved label", "label", label, "log_length", log.Len())
	}
	return number, nil
}
