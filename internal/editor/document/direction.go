package document

import "golang.org/x/text/unicode/bidi"

// Direction returns the reading direction of n. An explicit direction wins;
// otherwise the first strongly directional character of the text content
// decides, the way a browser resolves dir="auto".
func (n *Node) Direction() Direction {
	if n.direction != DirectionAuto {
		return n.direction
	}
	return detectDirection(n.TextContent())
}

func detectDirection(text string) Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return DirectionLTR
		case bidi.R, bidi.AL:
			return DirectionRTL
		}
	}
	return DirectionAuto
}
