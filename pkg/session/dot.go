package session

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/pplot/pplot/pkg/errors"
)

// TransitionDOT renders the lifecycle state machine as Graphviz DOT.
// Each phase is a node; each operation contributes one edge per phase
// it is allowed in, pointing at the phase it transitions to. Close
// edges fan in to uninitialized from everywhere.
func TransitionDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph lifecycle {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for p := PhaseUninitialized; p <= PhaseSaved; p++ {
		attrs := ""
		if p == PhaseUninitialized {
			attrs = ", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", p.String(), p.String(), attrs)
	}
	buf.WriteString("\n")

	edges := []struct {
		op string
		to Phase
	}{
		{opInitialize, PhaseInitialized},
		{opSetStyle, PhaseStyleSet},
		{opDraw, PhaseDrawn},
		{opSave, PhaseSaved},
	}
	for _, e := range edges {
		for _, from := range allowedPhases[e.op] {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", from.String(), e.to.String(), e.op)
		}
	}

	buf.WriteString("\n")
	for p := PhaseInitialized; p <= PhaseSaved; p++ {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=dashed];\n",
			p.String(), PhaseUninitialized.String(), opClose)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderTransitionSVG renders the lifecycle diagram to SVG using
// Graphviz.
func RenderTransitionSVG(ctx context.Context) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(TransitionDOT()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse lifecycle DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render lifecycle diagram")
	}
	return buf.Bytes(), nil
}
