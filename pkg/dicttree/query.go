package dicttree

// FollowPrefix returns the node reached by consuming prefix from the root.
// Unlike Contains it succeeds on nodes that only exist as prefixes. The empty
// prefix names no node and reports false; use Root for the root.
func (t *Tree) FollowPrefix(prefix string) (*Node, bool) {
	if prefix == "" {
		return nil, false
	}
	n := t.walk(prefix)
	return n, n != nil
}

// walk descends from the root and returns nil when the path breaks off.
func (t *Tree) walk(prefix string) *Node {
	n := t.root
	for i := 0; i < len(prefix) && n != nil; i++ {
		n = n.child(prefix[i])
	}
	return n
}

// terminalScore is the stored score of prefix, or Unranked.
func (t *Tree) terminalScore(prefix string) int {
	if n := t.walk(prefix); n != nil {
		return n.Pop()
	}
	return Unranked
}
