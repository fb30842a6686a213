package layout_test

import (
	"fmt"

	"github.com/matzehuels/flowtower/pkg/flow"
	"github.com/matzehuels/flowtower/pkg/layout"
)

func ExampleEngine_Compute() {
	root := flow.Sequence("welcome",
		flow.Element("greet", "Say hello"),
		flow.IfElse("known", flow.Element("check", "Known user?"),
			flow.Sequence("yes", flow.Element("back", "Welcome back")),
			flow.Sequence("no", flow.Element("signup", "Sign up")),
		),
	)

	eng := layout.NewEngine(layout.FixedMeasurer{Width: 280, Height: 80})
	_, res := eng.Compute(root)

	fmt.Printf("%.0fx%.0f axis=%.0f\n", res.Boundary.Width, res.Boundary.Height, res.Boundary.AxisX)
	fmt.Println(len(res.Nodes), "boxes,", len(res.Edges), "edges")
	// Output:
	// 610x350 axis=140
	// 5 boxes, 8 edges
}

func ExampleSpacing_SwitchCaseLayout() {
	s := layout.DefaultSpacing()
	card := layout.NewBoundary(280, 80)

	for _, n := range []int{0, 1, 2, 3, 5} {
		branches := make([]*layout.GraphNode, n)
		for i := range branches {
			branches[i] = layout.NewGraphNode(fmt.Sprintf("b%d", i), flow.KindElement, card)
		}
		condition := layout.NewGraphNode("c", flow.KindElement, card)
		choice := layout.NewGraphNode("d/choice", flow.KindChoice, s.Diamond.Boundary())

		l := s.SwitchCaseLayout("d", condition, choice, branches)
		fmt.Printf("n=%d edges=%d\n", n, len(l.Edges))
	}
	// Output:
	// n=0 edges=2
	// n=1 edges=3
	// n=2 edges=7
	// n=3 edges=9
	// n=5 edges=13
}

func ExampleForeachBoundary() {
	card := layout.NewBoundary(280, 80)
	marker := layout.NewBoundary(16, 16)

	b := layout.ForeachBoundary(card, card, marker, marker)
	fmt.Printf("%.0fx%.0f axis=%.0f\n", b.Width, b.Height, b.AxisX)

	missing := layout.ForeachBoundary(layout.ZeroBoundary, card, marker, marker)
	fmt.Println(missing.IsZero())
	// Output:
	// 300x237 axis=160
	// true
}

func ExampleSession() {
	root := flow.Sequence("s", flow.Element("a", ""), flow.Element("b", ""))
	s := layout.NewSession(layout.NewEngine(layout.FixedMeasurer{Width: 200, Height: 60}), root)

	s.Report("a", layout.NewBoundary(200, 90))
	_, ready := s.Layout()
	fmt.Println("ready:", ready, "generation:", s.Generation())

	s.Report("b", layout.NewBoundary(200, 60))
	tree, ready := s.Layout()
	fmt.Println("ready:", ready, "generation:", s.Generation())
	fmt.Printf("height=%.0f\n", tree.Boundary().Height)
	// Output:
	// ready: false generation: 1
	// ready: true generation: 2
	// height=180
}
