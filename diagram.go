package stato

import (
	"fmt"
	"strings"
)

// MermaidDiagram returns the transition table as a Mermaid.js state diagram,
// suitable for embedding in Markdown. Output is deterministic: states and
// targets appear in sorted order, after the initial-state marker.
func (m *Model) MermaidDiagram() string {
	var b strings.Builder
	b.WriteString("stateDiagram-v2\n")
	fmt.Fprintf(&b, "    [*] --> %s\n", m.InitialState())
	for _, from := range m.States() {
		for _, to := range m.TargetsFrom(from) {
			fmt.Fprintf(&b, "    %s --> %s\n", from, to)
		}
	}
	return b.String()
}
