package cascade

// --- ID counter ---

// nodeIDCounter is a plain counter; cascade is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// NodeType distinguishes what a Node stands for at the render boundary.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // section container; X is a percent offset
	NodeTypeGlyph                     // one character unit; Y is a vertical offset
)

// --- Node ---

// Node is the render boundary between the engine and whatever paints it.
// A section owns one container node whose children are glyph nodes. The
// engine writes X on containers and Y on glyphs every tick; renderers only
// read. A single flat struct is used for both kinds to keep the draw walk
// free of interface dispatch.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Current offsets, written by the engine.
	X, Y float64

	// Layout, written by Layout on refresh.
	//
	// Containers: Top and Height are content-space (scroll) coordinates and
	// Width is the measured text width. Glyphs: HomeX is the resting x
	// inside the container and Width is the glyph advance.
	Top, Height float64
	Width       float64
	HomeX       float64

	// Glyph is the grapheme cluster drawn by a glyph node.
	Glyph string

	Visible  bool
	UserData any

	dirty    bool
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Visible = true
	n.dirty = true
}

// NewContainer creates a section container node.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewGlyph creates a glyph node for one grapheme cluster.
func NewGlyph(name, glyph string) *Node {
	n := &Node{Name: name, Type: NodeTypeGlyph, Glyph: glyph}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, disposed, or an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("cascade: cannot add nil child")
	}
	if child.disposed || n.disposed {
		panic("cascade: AddChild on disposed node")
	}
	if isAncestor(child, n) {
		panic("cascade: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("cascade: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// MarkDirty flags the node as changed since the renderer last consumed it.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// Dirty reports whether the node changed since the last ClearDirty.
func (n *Node) Dirty() bool {
	return n.dirty
}

// ClearDirty resets the dirty flag. Renderers call it after painting.
func (n *Node) ClearDirty() {
	n.dirty = false
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets the dirty flag on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.dirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
