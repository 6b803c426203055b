package graph

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Text renders the payload fragment for a single description, e.g.
// "Vec3.Length", " >", or "FadeOut StopOther". Kinds without a payload
// render as the empty string. Pure formatting; calling it twice yields
// byte-identical output.
func Text(desc *NodeDescription) string {
	var sb strings.Builder
	Dispatch(desc.Kind).ToText(desc, &sb)
	return sb.String()
}

// AppendText appends the payload fragment for desc to sb.
func AppendText(desc *NodeDescription, sb *strings.Builder) {
	Dispatch(desc.Kind).ToText(desc, sb)
}

// Disassemble renders one line per node, index-prefixed, with the kind name
// and payload fragment. Available pre-compile since it works on
// descriptions.
func (g *GraphDescription) Disassemble() string {
	var sb strings.Builder
	if g.Name != "" {
		fmt.Fprintf(&sb, "graph %s\n", g.Name)
	}
	for i := range g.Nodes {
		desc := &g.Nodes[i]
		fmt.Fprintf(&sb, "%4d  %s", i, desc.Kind)
		if frag := Text(desc); frag != "" {
			sb.WriteString("  ")
			sb.WriteString(strings.TrimLeft(frag, " "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var (
	disasmIndexStyle   = lipgloss.NewStyle().Faint(true)
	disasmKindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	disasmPayloadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	disasmTitleStyle   = lipgloss.NewStyle().Bold(true)
)

// DisassembleStyled is Disassemble with terminal styling for interactive
// tooling.
func (g *GraphDescription) DisassembleStyled() string {
	var sb strings.Builder
	if g.Name != "" {
		sb.WriteString(disasmTitleStyle.Render("graph " + g.Name))
		sb.WriteByte('\n')
	}
	for i := range g.Nodes {
		desc := &g.Nodes[i]
		sb.WriteString(disasmIndexStyle.Render(fmt.Sprintf("%4d", i)))
		sb.WriteString("  ")
		sb.WriteString(disasmKindStyle.Render(desc.Kind.String()))
		if frag := Text(desc); frag != "" {
			sb.WriteString("  ")
			sb.WriteString(disasmPayloadStyle.Render(strings.TrimLeft(frag, " ")))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
