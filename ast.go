package dynpeg

import "strings"

// NodeKind tags the variant of an AST Node.
type NodeKind int

const (
	// NodeRule is a named rule's children, produced whenever a
	// RuleRef succeeds.
	NodeRule NodeKind = iota
	// NodeVal is terminal text captured by an Atom.
	NodeVal
)

// Node is an AST node: either Rule(name, children) or Val(text).
type Node struct {
	Kind     NodeKind
	Name     string
	Text     string
	Children []*Node
}

// RuleNode builds a Rule node.
func RuleNode(name string, children []*Node) *Node {
	return &Node{Kind: NodeRule, Name: name, Children: children}
}

// ValNode builds a Val node.
func ValNode(text string) *Node {
	return &Node{Kind: NodeVal, Text: text}
}

// Compact returns a new tree where adjacent Val siblings under the
// same parent have been merged into a single Val holding their
// concatenated text. Children are compacted first, then merged at
// each level, so compaction is bottom-up. Compact is pure: the
// receiver is unchanged.
func (n *Node) Compact() *Node {
	if n == nil {
		return nil
	}
	if n.Kind == NodeVal {
		return &Node{Kind: NodeVal, Text: n.Text}
	}

	compacted := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		c := child.Compact()
		if c.Kind == NodeVal && len(compacted) > 0 && compacted[len(compacted)-1].Kind == NodeVal {
			last := compacted[len(compacted)-1]
			compacted[len(compacted)-1] = &Node{Kind: NodeVal, Text: last.Text + c.Text}
			continue
		}
		compacted = append(compacted, c)
	}
	return &Node{Kind: NodeRule, Name: n.Name, Children: compacted}
}

// Prune returns a new tree with every Rule node whose Name is in names
// removed, hoisting its children into the position the pruned node
// occupied. Prune is pure.
func (n *Node) Prune(names ...string) *Node {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}

	if n.Kind == NodeVal {
		return &Node{Kind: NodeVal, Text: n.Text}
	}

	var children []*Node
	for _, child := range n.Children {
		children = append(children, child.pruneWith(set)...)
	}
	// The root has no parent slot to hoist into even when its own
	// name is in the prune set, so it is always kept, with its
	// children already pruned/hoisted.
	return &Node{Kind: NodeRule, Name: n.Name, Children: children}
}

// pruneWith returns the replacement list for n: zero or more nodes,
// since a pruned Rule hoists zero-or-many children into its slot.
func (n *Node) pruneWith(set map[string]bool) []*Node {
	if n == nil {
		return nil
	}
	if n.Kind == NodeVal {
		return []*Node{{Kind: NodeVal, Text: n.Text}}
	}

	var children []*Node
	for _, child := range n.Children {
		children = append(children, child.pruneWith(set)...)
	}

	if set[n.Name] {
		return children
	}
	return []*Node{{Kind: NodeRule, Name: n.Name, Children: children}}
}

// String renders a Node for debugging, in the teacher's Pattern.String
// style (used by tests and the CLI's "parse" subcommand).
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Kind == NodeVal {
		return "Val(" + n.Text + ")"
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}
