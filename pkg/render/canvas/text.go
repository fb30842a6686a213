package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	fontSize      = 13.0
	lineHeight    = 18.0
	edgeFontSize  = 11.0
	strokeColor   = "#333"
	defaultFill   = "white"
	arrowMarkerID = "arrow"
)

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func fillOf(b Box) string {
	if b.Fill != "" {
		return EscapeXML(b.Fill)
	}
	return defaultFill
}

func arrowDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `    <marker id="%s" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">`+"\n", arrowMarkerID)
	fmt.Fprintf(buf, `      <path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/>`+"\n", strokeColor)
	buf.WriteString("    </marker>\n")
}

// renderLines writes centered label lines for b in the given font.
func renderLines(buf *bytes.Buffer, b Box, family string) {
	if len(b.Lines) == 0 {
		return
	}
	top := b.CY - float64(len(b.Lines)-1)*lineHeight/2
	fmt.Fprintf(buf, `  <text class="box-text" data-box="%s" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%.0f" fill="%s">`,
		EscapeXML(b.ID), b.CX, top, family, fontSize, strokeColor)
	for i, line := range b.Lines {
		dy := 0.0
		if i > 0 {
			dy = lineHeight
		}
		fmt.Fprintf(buf, `<tspan x="%.2f" dy="%.2f">%s</tspan>`, b.CX, dy, EscapeXML(line))
	}
	buf.WriteString("</text>\n")
}

// renderEdgeText writes a branch annotation just right of the edge start.
func renderEdgeText(buf *bytes.Buffer, e Edge, family string) {
	if e.Text == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="edge-text" x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" fill="%s">%s</text>`+"\n",
		e.X1+4, e.Y1+edgeFontSize+2, family, edgeFontSize, strokeColor, EscapeXML(e.Text))
}

func edgeAttrs(e Edge) string {
	s := ""
	if e.Dashed {
		s += ` stroke-dasharray="5 4"`
	}
	if e.Directed {
		s += fmt.Sprintf(` marker-end="url(#%s)"`, arrowMarkerID)
	}
	return s
}
