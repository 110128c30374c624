// Package dot renders an oplog's operation DAG as a Graphviz DOT
// graph, for debugging only. It reads only oplog.OpLog's public
// surface and has no bearing on replay semantics. This builds the
// text directly with strings.Builder; rasterizing the output to SVG
// is left to the `dot` binary, outside this module.
package dot

import (
	"fmt"
	"strings"

	"github.com/textcrdt/textcrdt/oplog"
)

// Render produces a DOT document for l. Each op is a node labelled
// "lv (INS 'c' at pos)" or "lv (DEL pos)"; edges point from child to
// parent (rankdir=BT). A frontier with more than one parent is folded
// through a synthetic blue merge node; ops with no parents point at a
// red ROOT node.
func Render(l *oplog.OpLog) string {
	var b strings.Builder
	b.WriteString("digraph egwalker {\n")
	b.WriteString("  rankdir=BT;\n")
	b.WriteString("  ROOT [shape=box, style=filled, color=red, fontcolor=white];\n")

	for lv := oplog.LV(0); lv < oplog.LV(l.Len()); lv++ {
		op := l.Op(lv)
		fmt.Fprintf(&b, "  n%d [label=%q];\n", lv, nodeLabel(lv, op))

		switch len(op.Parents) {
		case 0:
			fmt.Fprintf(&b, "  n%d -> ROOT;\n", lv)
		case 1:
			fmt.Fprintf(&b, "  n%d -> n%d;\n", lv, op.Parents[0])
		default:
			merge := fmt.Sprintf("merge%d", lv)
			fmt.Fprintf(&b, "  %s [shape=point, style=filled, color=blue];\n", merge)
			fmt.Fprintf(&b, "  n%d -> %s;\n", lv, merge)
			for _, p := range op.Parents {
				fmt.Fprintf(&b, "  %s -> n%d;\n", merge, p)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeLabel(lv oplog.LV, op oplog.Op) string {
	switch op.Kind {
	case oplog.OpInsert:
		return fmt.Sprintf("%d (INS '%c' at %d)", lv, op.Content, op.Pos)
	case oplog.OpDelete:
		return fmt.Sprintf("%d (DEL %d)", lv, op.Pos)
	default:
		return fmt.Sprintf("%d (?)", lv)
	}
}
