package document

import (
	"errors"
	"strconv"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrNotElement   = errors.New("node cannot hold children")
	ErrDetached     = errors.New("node is not attached to the document")
)

// State is one version of a document: its tree plus the current selection.
// A committed State is never mutated; editing surfaces clone it, hand the
// clone to an update transaction, and commit the clone as the next version.
type State struct {
	root      *Node
	nodes     map[Key]*Node
	selection Selection
	nextKey   uint64
}

// NewState builds a State around root, assigning keys to every node.
func NewState(root *Node) *State {
	if root == nil {
		root = NewRoot(NewParagraph())
	}
	s := &State{nodes: make(map[Key]*Node)}
	s.root = root
	root.parent = nil
	s.assignKeys(root)
	return s
}

func (s *State) assignKeys(n *Node) {
	if n.key == "" || s.nodes[n.key] != nil && s.nodes[n.key] != n {
		s.nextKey++
		n.key = Key(strconv.FormatUint(s.nextKey, 10))
	}
	if n.typ == TypeRoot {
		n.key = "root"
	}
	s.nodes[n.key] = n
	for _, c := range n.children {
		c.parent = n
		s.assignKeys(c)
	}
}

// Root returns the document root.
func (s *State) Root() *Node { return s.root }

// NodeByKey returns the attached node with the given key, or nil.
func (s *State) NodeByKey(k Key) *Node { return s.nodes[k] }

// Selection returns the current selection, which may be nil.
func (s *State) Selection() Selection { return s.selection }

// SetSelection replaces the current selection.
func (s *State) SetSelection(sel Selection) { s.selection = sel }

// Clone returns a deep copy that can be mutated independently.
func (s *State) Clone() *State {
	c := &State{nodes: make(map[Key]*Node, len(s.nodes)), nextKey: s.nextKey}
	c.root = s.root.clone(nil, c.nodes)
	c.selection = cloneSelection(s.selection)
	return c
}

// Replace swaps the whole content of s for a copy of other, used to restore
// a previous version (undo/redo).
func (s *State) Replace(other *State) {
	c := other.Clone()
	s.root, s.nodes, s.selection = c.root, c.nodes, c.selection
	if c.nextKey > s.nextKey {
		s.nextKey = c.nextKey
	}
}

// Append attaches child as the last child of parent.
func (s *State) Append(parent, child *Node) error {
	if !parent.IsElement() {
		return ErrNotElement
	}
	return s.insertAt(parent, len(parent.children), child)
}

// InsertAfter attaches n as the next sibling of ref.
func (s *State) InsertAfter(ref, n *Node) error {
	if ref.parent == nil {
		return ErrDetached
	}
	return s.insertAt(ref.parent, ref.parent.indexOf(ref)+1, n)
}

// InsertBefore attaches n as the previous sibling of ref.
func (s *State) InsertBefore(ref, n *Node) error {
	if ref.parent == nil {
		return ErrDetached
	}
	return s.insertAt(ref.parent, ref.parent.indexOf(ref), n)
}

func (s *State) insertAt(parent *Node, i int, n *Node) error {
	if s.nodes[parent.key] != parent {
		return ErrDetached
	}
	if n.parent != nil {
		s.detach(n)
	}
	n.parent = parent
	parent.children = append(parent.children, nil)
	copy(parent.children[i+1:], parent.children[i:])
	parent.children[i] = n
	s.assignKeys(n)
	return nil
}

// Remove detaches n and its subtree.
func (s *State) Remove(n *Node) error {
	if n.parent == nil || s.nodes[n.key] != n {
		return ErrDetached
	}
	s.detach(n)
	s.forget(n)
	return nil
}

func (s *State) detach(n *Node) {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

func (s *State) forget(n *Node) {
	delete(s.nodes, n.key)
	for _, c := range n.children {
		s.forget(c)
	}
}

// ReplaceElement puts replacement where old was, moving old's children into
// replacement. It is how block conversions (paragraph to heading, etc.) work.
func (s *State) ReplaceElement(old, replacement *Node) error {
	if old.parent == nil {
		return ErrDetached
	}
	p, i := old.parent, old.parent.indexOf(old)
	children := old.children
	old.children = nil
	s.detach(old)
	delete(s.nodes, old.key)
	replacement.format = old.format
	replacement.indent = old.indent
	if err := s.insertAt(p, i, replacement); err != nil {
		return err
	}
	for _, c := range children {
		c.parent = replacement
		replacement.children = append(replacement.children, c)
	}
	return nil
}

// Unwrap replaces element n by its children.
func (s *State) Unwrap(n *Node) error {
	if n.parent == nil {
		return ErrDetached
	}
	p, i := n.parent, n.parent.indexOf(n)
	children := n.children
	n.children = nil
	s.detach(n)
	delete(s.nodes, n.key)
	for j, c := range children {
		c.parent = p
		p.children = append(p.children, nil)
		copy(p.children[i+j+1:], p.children[i+j:])
		p.children[i+j] = c
	}
	return nil
}

// Wrap moves the consecutive siblings nodes into wrapper, which takes the
// place of the first of them.
func (s *State) Wrap(nodes []*Node, wrapper *Node) error {
	if len(nodes) == 0 {
		return nil
	}
	first := nodes[0]
	if first.parent == nil {
		return ErrDetached
	}
	if err := s.InsertBefore(first, wrapper); err != nil {
		return err
	}
	for _, n := range nodes {
		s.detach(n)
		n.parent = wrapper
		wrapper.children = append(wrapper.children, n)
	}
	return nil
}

// SetText replaces the content of a text node.
func (s *State) SetText(n *Node, text string) { n.text = text }

// SplitText splits a text node at a rune offset and returns the new right
// half, which keeps the marks and style of n. Splitting at either end returns
// nil and leaves n untouched.
func (s *State) SplitText(n *Node, offset int) (*Node, error) {
	if !n.IsText() {
		return nil, ErrNotElement
	}
	runes := []rune(n.text)
	if offset <= 0 || offset >= len(runes) {
		return nil, nil
	}
	right := &Node{typ: TypeText, text: string(runes[offset:]), marks: n.marks, style: n.style}
	n.text = string(runes[:offset])
	if err := s.InsertAfter(n, right); err != nil {
		n.text = string(runes)
		return nil, err
	}
	return right, nil
}

// SetMarks replaces the text format of a text node.
func (s *State) SetMarks(n *Node, f Format) { n.marks = f }

// SetStyle replaces the inline style of a text node.
func (s *State) SetStyle(n *Node, css string) { n.style = css }

// SetAlignment sets the element format of a block.
func (s *State) SetAlignment(n *Node, a Alignment) { n.format = a }

// SetIndent sets the indentation level of a block, never below zero.
func (s *State) SetIndent(n *Node, level int) {
	if level < 0 {
		level = 0
	}
	n.indent = level
}

// SetLanguage sets the language of a code block.
func (s *State) SetLanguage(n *Node, lang string) { n.language = lang }

// SetListType changes the flavour of a list.
func (s *State) SetListType(n *Node, lt ListType) { n.listType = lt }

// SetURL changes the target of a link.
func (s *State) SetURL(n *Node, url string) { n.url = url }

// Walk visits n and its descendants in document order until fn returns false.
func Walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}
