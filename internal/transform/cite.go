package transform

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/roach88/chalmers-thesis/internal/ir"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from user text placed into raw HTML.
func sanitizeText(s string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy.Sanitize(s)
}

const citeStyle = "background: #0000000d; font-style: italic; border-radius: 1rem; padding: 0.2rem 0.5rem 0.2rem 0.5rem; font-size: 80%;"

func (t *Transformer) cite(el ir.Element, to string) ([]ir.Node, error) {
	key := el.Data
	postnote := el.Arg("postnote")
	if strings.TrimSpace(key) == "" {
		return nil, ir.Errorf(ir.ErrCodeMissingKey, el.Name, "missing citation key")
	}

	if to == ir.FormatHTML {
		html := fmt.Sprintf(`<span style="%s">%s %s</span>`, citeStyle, sanitizeText(key), sanitizeText(postnote))
		return []ir.Node{ir.Raw(html)}, nil
	}

	var opt string
	if postnote != "" {
		opt = "[" + postnote + "]"
	}
	return []ir.Node{ir.Raw(fmt.Sprintf(`\cite%s{%s}`, opt, key))}, nil
}

// texCommand renders the TeX and LaTeX logos. The element takes no body.
func texCommand(command string) handler {
	return func(t *Transformer, el ir.Element, to string) ([]ir.Node, error) {
		if el.Data != "" {
			return nil, ir.Errorf(ir.ErrCodeConsumedInput, el.Name, "this module should not consume any input")
		}
		if to == ir.FormatLaTeX {
			return []ir.Node{ir.Text(`\` + command + `{}`)}, nil
		}
		return []ir.Node{ir.Text(command)}, nil
	}
}
