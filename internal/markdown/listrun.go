package markdown

// ListRun is a maximal contiguous sequence of Bullet blocks, or of Number
// blocks, rendered as one list.
//
// Start is the ordinal written on the first item of a numbered run and is the
// only ordinal renderers honour; later items continue from it. Start is zero
// for bullet runs.
type ListRun struct {
	Kind  Kind
	Start int
	Items []Block
}

// Node is one element of a grouped block stream: either a single non-list
// Block or a List.
type Node struct {
	Block Block
	List  *ListRun
}

// IsList reports whether the node holds a list run.
func (n Node) IsList() bool {
	return n.List != nil
}

// listState is the grouping state machine's current state.
type listState int

const (
	noList listState = iota
	inBulletList
	inNumberList
)

// Grouper collects consecutive list blocks into ListRuns.
// Feed blocks in document order and call Flush at the end of input.
type Grouper struct {
	state listState
	open  *ListRun
	emit  func(Node)
}

// NewGrouper returns a Grouper that hands every completed node to emit.
func NewGrouper(emit func(Node)) *Grouper {
	return &Grouper{emit: emit}
}

// Feed advances the state machine with the next block.
func (g *Grouper) Feed(b Block) {
	switch b.Kind {
	case Bullet:
		if g.state != inBulletList {
			g.Flush()
			g.state = inBulletList
			g.open = &ListRun{Kind: Bullet}
		}
		g.open.Items = append(g.open.Items, b)
	case Number:
		if g.state != inNumberList {
			g.Flush()
			g.state = inNumberList
			g.open = &ListRun{Kind: Number, Start: b.Ordinal}
		}
		g.open.Items = append(g.open.Items, b)
	default:
		g.Flush()
		g.emit(Node{Block: b})
	}
}

// Flush closes the open list run, if any, and emits it.
func (g *Grouper) Flush() {
	if g.open != nil {
		g.emit(Node{List: g.open})
	}
	g.state = noList
	g.open = nil
}

// Group partitions blocks into nodes, merging contiguous same-kind list
// blocks into ListRuns.
func Group(blocks []Block) []Node {
	nodes := make([]Node, 0, len(blocks))
	g := NewGrouper(func(n Node) { nodes = append(nodes, n) })
	for _, b := range blocks {
		g.Feed(b)
	}
	g.Flush()
	return nodes
}
