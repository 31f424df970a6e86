package selector

import (
	"fmt"
	"strconv"
	"strings"
)

type treeWriter struct {
	w strings.Builder
}

func (tw *treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Dump returns indented description of selector structure: combinators with
// their operands and fragments with their parts in serialization order.
func Dump(sel Selector) string {
	tw := &treeWriter{}
	dump(tw, 0, sel)
	return tw.w.String()
}

func dump(tw *treeWriter, depth int, sel Selector) {
	if Missing(sel) {
		tw.line(depth, "<missing>")
		return
	}
	switch s := sel.(type) {
	case Fragment:
		tw.line(depth, "fragment %s", strconv.Quote(s.String()))
		for _, p := range s.Parts() {
			tw.line(depth+1, "%s: %s", p.Kind, strconv.Quote(p.Value))
		}
	case Complex:
		tw.line(depth, "%s %s", s.comb.Name(), strconv.Quote(string(s.comb)))
		dump(tw, depth+1, s.left)
		dump(tw, depth+1, s.right)
	default:
		tw.line(depth, "%T %s", sel, strconv.Quote(sel.String()))
	}
	if err := sel.Err(); err != nil {
		tw.line(depth+1, "error: %v", err)
	}
}
