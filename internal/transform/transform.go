package transform

import (
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/chalmers-thesis/internal/config"
	"github.com/roach88/chalmers-thesis/internal/ir"
	"github.com/roach88/chalmers-thesis/internal/manifest"
)

// handler renders one element for the target format.
type handler func(t *Transformer, el ir.Element, to string) ([]ir.Node, error)

var handlers = map[string]handler{
	"__heading":       (*Transformer).heading,
	"__document":      (*Transformer).document,
	"label":           (*Transformer).label,
	"reference":       (*Transformer).reference,
	"element-number":  (*Transformer).elementNumber,
	"fancy-image":     (*Transformer).fancyImage,
	"fancy-table":     (*Transformer).fancyTable,
	"fancy-big-table": (*Transformer).fancyBigTable,
	"cite":            (*Transformer).cite,
	"note":            (*Transformer).note,
	"note-label":      (*Transformer).noteLabel,
	"tex":             texCommand("TeX"),
	"Tex":             texCommand("TeX"),
	"latex":           texCommand("LaTeX"),
	"Latex":           texCommand("LaTeX"),
}

// Transformer renders elements against one invocation's host variables.
type Transformer struct {
	manifest *manifest.Manifest
	vars     *config.Variables
	logger   *slog.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// New creates a Transformer. A nil vars is treated as empty.
func New(m *manifest.Manifest, vars *config.Variables, opts ...Option) *Transformer {
	if vars == nil {
		vars = &config.Variables{Consts: map[string]string{}}
	}
	t := &Transformer{
		manifest: m,
		vars:     vars,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform renders element el, named from, to the output format to.
//
// On error no nodes are returned, so a failed invocation never requests
// pushes.
func (t *Transformer) Transform(from, to string, el ir.Element) ([]ir.Node, error) {
	decl, ok := t.manifest.Transform(from)
	if !ok {
		return nil, ir.Errorf(ir.ErrCodeUnknownElement, from, "element not supported")
	}
	h, ok := handlers[from]
	if !ok {
		return nil, ir.Errorf(ir.ErrCodeUnknownElement, from, "element has no renderer")
	}
	if !decl.Supports(to) {
		return nil, ir.Errorf(ir.ErrCodeUnsupportedFormat, from, "cannot convert to %q", to)
	}

	el, err := decl.Apply(el)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("transform", "from", from, "to", to)
	nodes, err := h(t, el, to)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// children passes the element's rendered children through.
func children(el ir.Element) []ir.Node {
	nodes := make([]ir.Node, len(el.Children))
	for i, c := range el.Children {
		nodes[i] = ir.Child(c)
	}
	return nodes
}

// escapeLabel makes a label safe inside a double-quoted attribute or a
// LaTeX \label/\ref argument.
func escapeLabel(label string) string {
	return strings.ReplaceAll(label, `"`, "%22")
}
