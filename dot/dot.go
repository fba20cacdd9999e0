package dot

import (
	"fmt"
	"os"
	"strings"

	"github.com/halvorsen/lllrparse"
	"github.com/halvorsen/lllrparse/grammar"
	"github.com/halvorsen/lllrparse/lr"
)

const (
	colorForwardEps = "crimson"
	colorBackEps    = "forestgreen"
	colorNonEps     = "royalblue"
)

// Render writes aut as a Graphviz DOT digraph named name, in the
// record/port shape: one record node per state, one port per item,
// state transitions as plain edges, item transitions colored by kind --
// crimson for a closure derivation landing on a later port, forestgreen for
// one landing on an earlier port, royalblue for a kernel advance.
func Render(name string, aut *lr.Automaton) string {
	g := aut.Grammar
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", quoteID(name))
	b.WriteString("  node [shape=record];\n\n")

	for _, st := range aut.States {
		fmt.Fprintf(&b, "  s%d [label=\"%s\"];\n", st.ID, stateLabel(g, aut, st))
	}
	b.WriteString("\n")

	for _, t := range aut.StateTransitions() {
		fmt.Fprintf(&b, "  s%d -> s%d [label=%q];\n", t.From, t.To, g.Symbol(t.Symbol).String())
	}
	b.WriteString("\n")

	for _, t := range aut.ItemTransitions() {
		color := colorNonEps
		if t.Eps {
			if t.FromPort < t.ToPort {
				color = colorForwardEps
			} else {
				color = colorBackEps
			}
		}
		fmt.Fprintf(&b, "  s%d:p%d -> s%d:p%d [color=%s];\n", t.FromState, t.FromPort, t.ToState, t.ToPort, color)
	}

	b.WriteString("}\n")
	return b.String()
}

// WriteFile renders aut and writes the DOT source to path.
func WriteFile(path, name string, aut *lr.Automaton) error {
	src := Render(name, aut)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return lllrparse.NewInternalError(fmt.Sprintf("cannot write DOT output: %v", err))
	}
	return nil
}

// stateLabel renders st as a Graphviz record label: "{ id | <p0> item0 | <p1> item1 | ... }".
func stateLabel(g *grammar.Grammar, aut *lr.Automaton, st *lr.State) string {
	fields := make([]string, 0, len(st.Items)+1)
	fields = append(fields, fmt.Sprintf("%d", st.ID))
	for port, id := range st.Items {
		it := aut.Items[id]
		fields = append(fields, fmt.Sprintf("<p%d> %s", port, escapeRecord(it.String(g))))
	}
	return "{" + strings.Join(fields, "|") + "}"
}

// escapeRecord escapes the characters Graphviz's record-node label syntax
// treats specially: the field separator, port angle brackets, and braces.
func escapeRecord(s string) string {
	r := strings.NewReplacer(
		"{", "\\{",
		"}", "\\}",
		"|", "\\|",
		"<", "\\<",
		">", "\\>",
		"\"", "\\\"",
	)
	return r.Replace(s)
}

func quoteID(s string) string {
	if s == "" {
		return "G"
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}
