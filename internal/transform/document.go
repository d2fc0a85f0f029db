package transform

import (
	"fmt"
	"strings"

	"github.com/roach88/chalmers-thesis/internal/ir"
)

const missingTitle = "Missing title"

// document wraps the rendered body. Cover pages, title pages and
// stylesheets are left to the host's own document template.
func (t *Transformer) document(el ir.Element, to string) ([]ir.Node, error) {
	title, ok := t.vars.Const(t.logger, "title")
	if !ok {
		title = missingTitle
	}
	if len(t.vars.Authors) == 0 {
		t.logger.Warn("the list 'authors' was empty")
	}

	if to == ir.FormatLaTeX {
		return t.latexDocument(el, title), nil
	}
	return t.htmlDocument(el, title)
}

func (t *Transformer) htmlDocument(el ir.Element, title string) ([]ir.Node, error) {
	lang := t.vars.Consts["language"]
	if lang == "" {
		lang = "en"
	}

	nodes := []ir.Node{ir.Raw(fmt.Sprintf(
		"<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n<title>%s</title>\n<meta charset=\"UTF-8\">\n",
		sanitizeText(lang), sanitizeText(title),
	))}
	for _, imp := range t.vars.Imports {
		nodes = append(nodes, ir.Child(imp))
	}
	nodes = append(nodes, ir.Raw("</head>\n<body>\n<article>\n"))

	nodes = append(nodes, ir.Raw(fmt.Sprintf(`<h1 class="title">%s</h1>`, sanitizeText(title))))
	if subtitle, ok := t.vars.Consts["subtitle"]; ok {
		nodes = append(nodes, ir.Raw(fmt.Sprintf(`<div class="subtitle">%s</div>`, sanitizeText(subtitle))))
	}
	if len(t.vars.Authors) > 0 {
		items := make([]string, len(t.vars.Authors))
		for i, a := range t.vars.Authors {
			items[i] = "<li>" + sanitizeText(a) + "</li>"
		}
		nodes = append(nodes, ir.Raw(`<ul class="authors">`+strings.Join(items, "\n")+"</ul>"))
	}

	nodes = append(nodes, children(el)...)

	notes, err := ParseNotes(t.vars.Notes)
	if err != nil {
		return nil, err
	}
	if len(notes) > 0 {
		nodes = append(nodes, ir.Raw(`<section class="notes"><ol>`))
		for _, n := range notes {
			nodes = append(nodes,
				ir.Raw(fmt.Sprintf(`<li id="note:%s">`, n.ID)),
				ir.Inline(n.Note),
				ir.Raw(fmt.Sprintf(` <a href="#note-backlink:%s">&#8617;</a></li>`, n.ID)),
			)
		}
		nodes = append(nodes, ir.Raw("</ol></section>"))
	}

	nodes = append(nodes, ir.Raw("</article></body></html>"))
	return nodes, nil
}

func (t *Transformer) latexDocument(el ir.Element, title string) []ir.Node {
	nodes := []ir.Node{ir.Raw("\\documentclass[12pt,a4paper,twoside,openright]{report}\n")}
	for _, imp := range t.vars.Imports {
		nodes = append(nodes, ir.Child(imp))
	}
	nodes = append(nodes, ir.Raw(fmt.Sprintf(
		"\\title{%s}\n\\author{%s}\n\\begin{document}\n\\maketitle\n",
		title, strings.Join(t.vars.Authors, ` \and `),
	)))
	nodes = append(nodes, children(el)...)
	nodes = append(nodes, ir.Raw("\n\\end{document}\n"))
	return nodes
}
