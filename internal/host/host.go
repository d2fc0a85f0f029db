package host

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/chalmers-thesis/internal/config"
	"github.com/roach88/chalmers-thesis/internal/ir"
	"github.com/roach88/chalmers-thesis/internal/manifest"
	"github.com/roach88/chalmers-thesis/internal/store"
	"github.com/roach88/chalmers-thesis/internal/structure"
	"github.com/roach88/chalmers-thesis/internal/transform"
)

// DefaultMaxSteps bounds the number of invocations in one compile.
const DefaultMaxSteps = 10000

// Host compiles documents against a store.
//
// A Host is not safe for concurrent use; run one compile at a time.
type Host struct {
	store    *store.Store
	manifest *manifest.Manifest
	clock    Sequencer
	tokens   TokenGenerator
	logger   *slog.Logger
	maxSteps int
}

// Option configures a Host.
type Option func(*Host)

// WithClock sets the sequencer used to stamp steps and pushes.
// Without it the host resumes from the store's highest seq.
func WithClock(c Sequencer) Option {
	return func(h *Host) {
		h.clock = c
	}
}

// WithTokens sets the document token generator.
func WithTokens(g TokenGenerator) Option {
	return func(h *Host) {
		h.tokens = g
	}
}

// WithLogger sets the logger for the host and its transforms.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithMaxSteps sets the step limit of one compile.
func WithMaxSteps(n int) Option {
	return func(h *Host) {
		h.maxSteps = n
	}
}

// New creates a Host.
func New(st *store.Store, m *manifest.Manifest, opts ...Option) *Host {
	h := &Host{
		store:    st,
		manifest: m,
		tokens:   UUIDv7Generator{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Document is the input of one compile.
type Document struct {
	Format    string            `yaml:"format" json:"format"`
	Constants map[string]string `yaml:"constants,omitempty" json:"constants,omitempty"`
	Authors   []string          `yaml:"authors,omitempty" json:"authors,omitempty"`

	// Wrap evaluates the rendered elements as children of a __document
	// element.
	Wrap bool `yaml:"wrap,omitempty" json:"wrap,omitempty"`

	Elements []Invocation `yaml:"elements" json:"elements"`
}

// Push is one list-push the host applied.
type Push struct {
	Seq   int64  `yaml:"seq" json:"seq"`
	List  string `yaml:"list" json:"list"`
	Entry string `yaml:"entry" json:"entry"`
}

// Step records one evaluated invocation.
type Step struct {
	Seq     int64  `yaml:"seq" json:"seq"`
	Element string `yaml:"element" json:"element"`
	Pushes  []Push `yaml:"pushes,omitempty" json:"pushes,omitempty"`
	Error   string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Result is the outcome of a compile.
type Result struct {
	Token  string            `json:"token"`
	Format string            `json:"format"`
	Nodes  []ir.Node         `json:"nodes"`
	Steps  []Step            `json:"steps"`
	Labels map[string]string `json:"labels"`
}

// Output concatenates the text of the rendered nodes. Native content
// nodes contribute their data; nodes the host could not evaluate are
// skipped.
func (r *Result) Output() string {
	var sb strings.Builder
	for _, n := range r.Nodes {
		switch n.Name {
		case "":
			sb.WriteString(n.Text)
		case ir.ModuleRaw, ir.ModuleInlineContent, ir.ModuleBlockContent:
			sb.WriteString(n.Data)
		}
	}
	return sb.String()
}

// task is a pending or evaluated invocation. Its output pieces are either
// final nodes or nested tasks expanded from its output.
type task struct {
	inv    Invocation
	decl   manifest.Transform
	pieces []piece
}

type piece struct {
	node ir.Node
	task *task
}

func flatten(pieces []piece) []ir.Node {
	var nodes []ir.Node
	for _, p := range pieces {
		if p.task != nil {
			nodes = append(nodes, flatten(p.task.pieces)...)
			continue
		}
		nodes = append(nodes, p.node)
	}
	return nodes
}

// compile is the state of one Compile call.
type compile struct {
	h       *Host
	doc     Document
	token   string
	pending []*task
	steps   []Step
}

// Compile evaluates a document and persists its host variables.
//
// Invocation errors are recorded in the returned steps and the failed
// invocation renders nothing. Store failures, scheduling deadlocks and
// exceeding the step limit abort the compile.
func (h *Host) Compile(ctx context.Context, doc Document) (*Result, error) {
	if h.clock == nil {
		last, err := h.store.LastSeq(ctx)
		if err != nil {
			return nil, err
		}
		h.clock = NewClockAt(last)
	}

	token := h.tokens.Generate()
	if err := h.store.CreateDocument(ctx, token, doc.Format, h.clock.Next()); err != nil {
		return nil, err
	}
	h.logger.Debug("compile", "document", token, "format", doc.Format)

	c := &compile{h: h, doc: doc, token: token}
	top, tasks := c.expand(doc.Elements)
	c.pending = tasks
	if err := c.run(ctx); err != nil {
		return nil, err
	}

	// __document reads what the whole body pushed, so it is evaluated
	// last, over the rendered body.
	if doc.Wrap {
		body := flatten(top)
		children := make([]Invocation, len(body))
		for i, n := range body {
			children[i] = nodeInvocation(n)
		}
		top, tasks = c.expand([]Invocation{{Name: "__document", Children: children}})
		c.pending = tasks
		if err := c.run(ctx); err != nil {
			return nil, err
		}
	}

	log, err := h.store.ReplayStructure(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Result{
		Token:  token,
		Format: doc.Format,
		Nodes:  flatten(top),
		Steps:  c.steps,
		Labels: structure.ResolveAll(log),
	}, nil
}

// expand turns invocations into output pieces. Invocations of elements
// this plugin transforms become tasks; other modules are left in the
// output for the next host in line.
func (c *compile) expand(invs []Invocation) ([]piece, []*task) {
	var (
		pieces []piece
		tasks  []*task
	)
	for _, inv := range invs {
		if inv.IsText() {
			pieces = append(pieces, piece{node: ir.Text(inv.Data)})
			continue
		}
		decl, ok := c.h.manifest.Transform(inv.Name)
		if !ok {
			c.h.logger.Debug("foreign module", "name", inv.Name)
			pieces = append(pieces, piece{node: ir.Module(inv.Name, inv.Data, inv.Arguments)})
			continue
		}
		t := &task{inv: inv, decl: decl}
		pieces = append(pieces, piece{task: t})
		tasks = append(tasks, t)
	}
	return pieces, tasks
}

// run evaluates pending tasks until none are left.
func (c *compile) run(ctx context.Context) error {
	for len(c.pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(c.steps) >= c.h.maxSteps {
			return &RuntimeError{
				Code:     ErrCodeQuotaExceeded,
				Message:  fmt.Sprintf("more than %d steps", c.h.maxSteps),
				Document: c.token,
			}
		}

		i := c.next()
		if i < 0 {
			return &RuntimeError{
				Code:     ErrCodeDeadlock,
				Message:  fmt.Sprintf("no runnable invocation among %s", c.pendingNames()),
				Document: c.token,
			}
		}

		t := c.pending[i]
		children, err := c.evaluate(ctx, t)
		if err != nil {
			return err
		}
		rest := append([]*task{}, c.pending[i+1:]...)
		c.pending = append(append(c.pending[:i], children...), rest...)
	}
	return nil
}

// next returns the index of the first ready task, or -1.
func (c *compile) next() int {
	for i, t := range c.pending {
		if c.ready(i, t) {
			return i
		}
	}
	return -1
}

// ready reports whether no other pending task pushes to a variable t reads.
// A task appending to a list only waits for the pushers ahead of it.
func (c *compile) ready(i int, t *task) bool {
	for _, v := range t.decl.ReadVariables() {
		appends := t.decl.Appends(v)
		for j, other := range c.pending {
			if j == i || !other.decl.Pushes(v) {
				continue
			}
			if appends && j > i {
				continue
			}
			return false
		}
	}
	return true
}

func (c *compile) pendingNames() string {
	names := make([]string, len(c.pending))
	for i, t := range c.pending {
		names[i] = t.inv.Name
	}
	return "[" + strings.Join(names, " ") + "]"
}

// evaluate runs one task, applies its pushes and returns the tasks its
// output expanded into.
func (c *compile) evaluate(ctx context.Context, t *task) ([]*task, error) {
	step := Step{Seq: c.h.clock.Next(), Element: t.inv.Name}
	defer func() { c.steps = append(c.steps, step) }()

	nodes, err := c.transform(ctx, t)
	if err != nil {
		c.fail(&step, t, err)
		return nil, nil
	}
	return c.apply(ctx, t, &step, nodes)
}

// apply stores the pushes in a transform's output and expands the rest. An
// output the host cannot accept fails the invocation as a whole: nothing is
// pushed and nothing is rendered.
func (c *compile) apply(ctx context.Context, t *task, step *Step, nodes []ir.Node) ([]*task, error) {
	var (
		pushes   []Push
		kept     []piece
		children []*task
	)
	for _, n := range nodes {
		if n.IsPush() {
			list := n.PushTarget()
			if !t.decl.Pushes(list) {
				c.fail(step, t, &RuntimeError{
					Code:     ErrCodeUndeclaredPush,
					Message:  fmt.Sprintf("%s pushed to %q", t.inv.Name, list),
					Document: c.token,
				})
				return nil, nil
			}
			pushes = append(pushes, Push{List: list, Entry: n.Data})
			continue
		}
		inv, ok, err := fromNode(n)
		if err != nil {
			c.fail(step, t, fmt.Errorf("%s output: %w", t.inv.Name, err))
			return nil, nil
		}
		if !ok {
			kept = append(kept, piece{node: n})
			continue
		}
		pieces, tasks := c.expand([]Invocation{inv})
		kept = append(kept, pieces...)
		children = append(children, tasks...)
	}

	entries := make([]store.Entry, len(pushes))
	for i := range pushes {
		pushes[i].Seq = c.h.clock.Next()
		entries[i] = store.Entry{List: pushes[i].List, Value: pushes[i].Entry, Seq: pushes[i].Seq}
	}
	if len(entries) > 0 {
		if err := c.h.store.AppendEntries(ctx, c.token, entries); err != nil {
			return nil, err
		}
	}
	step.Pushes = pushes

	t.pieces = kept
	return children, nil
}

// fail records an invocation-local error on step.
func (c *compile) fail(step *Step, t *task, err error) {
	step.Error = err.Error()
	c.h.logger.Warn("invocation failed", "element", t.inv.Name, "error", err)
}

// transform builds the invocation's variables and runs the plugin.
func (c *compile) transform(ctx context.Context, t *task) ([]ir.Node, error) {
	el, err := t.inv.Element()
	if err != nil {
		return nil, err
	}
	vars, err := c.variables(ctx, t.decl)
	if err != nil {
		return nil, err
	}
	tr := transform.New(c.h.manifest, vars, transform.WithLogger(c.h.logger))
	return tr.Transform(t.inv.Name, c.doc.Format, el)
}

// variables hands a transform exactly the variables it declared as read,
// encoded the way a ModMark host passes them.
func (c *compile) variables(ctx context.Context, decl manifest.Transform) (*config.Variables, error) {
	env := make(map[string]string)
	for _, name := range decl.ReadVariables() {
		v := decl.Variables[name]
		if v.Type == "const" {
			if value, ok := c.doc.Constants[name]; ok {
				env[name] = value
			}
			continue
		}

		var entries []string
		if name == config.VarAuthors {
			entries = c.doc.Authors
		} else {
			var err error
			if entries, err = c.h.store.ReadList(ctx, c.token, name); err != nil {
				return nil, err
			}
		}
		if v.Type == "set" {
			entries = dedupe(entries)
		}
		raw, err := ir.MarshalCanonical(entries)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		env[name] = string(raw)
	}
	return config.Load(config.MapLookup(env))
}

func dedupe(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}
