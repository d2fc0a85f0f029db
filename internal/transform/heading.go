package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/chalmers-thesis/internal/ir"
	"github.com/roach88/chalmers-thesis/internal/structure"
)

var latexSectioning = map[int]string{
	1: `\chapter{`,
	2: `\section{`,
	3: `\subsection{`,
	4: `\subsubsection{`,
	5: `\paragraph{`,
	6: `\subparagraph{`,
}

// heading emits Heading(level) and wraps the rendered children.
func (t *Transformer) heading(el ir.Element, to string) ([]ir.Node, error) {
	raw := strings.TrimSpace(el.Arg("level"))
	level, err := strconv.Atoi(raw)
	if err != nil {
		return nil, ir.Errorf(ir.ErrCodeHeadingLevel, el.Name, "invalid heading level '%s'", raw)
	}
	ev, err := structure.Heading(level)
	if err != nil {
		return nil, err
	}

	nodes := []ir.Node{ev.Push()}
	switch to {
	case ir.FormatLaTeX:
		nodes = append(nodes, ir.Text(latexSectioning[level]))
		nodes = append(nodes, children(el)...)
		nodes = append(nodes, ir.Text("}"))
	default:
		nodes = append(nodes, ir.Text(fmt.Sprintf("<h%d>", level)))
		nodes = append(nodes, children(el)...)
		nodes = append(nodes, ir.Text(fmt.Sprintf("</h%d>", level)))
	}
	return nodes, nil
}
