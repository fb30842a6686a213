package canvas

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/flowtower/pkg/flow"
)

const simpleFont = "Helvetica, Arial, sans-serif"

// Simple draws flat shapes with straight strokes.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	arrowDefs(buf)
	buf.WriteString("  </defs>\n")
}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	id := EscapeXML(b.ID)
	switch b.Kind {
	case flow.KindChoice:
		fmt.Fprintf(buf, `  <polygon id="box-%s" class="box choice" points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			id, b.CX, b.Y, b.X+b.W, b.CY, b.CX, b.Y+b.H, b.X, b.CY, fillOf(b), strokeColor)
	case flow.KindLoopStart, flow.KindLoopEnd:
		fill := fillOf(b)
		if b.Kind == flow.KindLoopEnd {
			fill = strokeColor
		}
		fmt.Fprintf(buf, `  <circle id="box-%s" class="box %s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			id, b.Kind, b.CX, b.CY, min(b.W, b.H)/2, fill, strokeColor)
	default:
		fmt.Fprintf(buf, `  <rect id="box-%s" class="box element" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="8" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			id, b.X, b.Y, b.W, b.H, fillOf(b), strokeColor)
	}
}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <line id="edge-%s" class="edge" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		EscapeXML(e.ID), e.X1, e.Y1, e.X2, e.Y2, strokeColor, edgeAttrs(e))
	renderEdgeText(buf, e, simpleFont)
}

func (Simple) RenderText(buf *bytes.Buffer, b Box) {
	renderLines(buf, b, simpleFont)
}
