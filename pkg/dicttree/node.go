package dicttree

// Unranked marks a word that was inserted without a popularity score.
const Unranked = -1

// edge links a parent to an owned child under a single byte key.
type edge struct {
	key  byte
	node *Node
}

// Node is a single prefix in the tree. Its children are kept in insertion
// order, which decides ties when ranking and enumerating.
type Node struct {
	children []edge
	score    int
	hasScore bool
}

// Tree is a prefix tree of scored words. The root represents the empty prefix.
type Tree struct {
	root *Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: &Node{}}
}

// Root returns the node for the empty prefix.
func (t *Tree) Root() *Node {
	return t.root
}

// Score returns the node's score and whether the node ends a word.
func (n *Node) Score() (int, bool) {
	return n.score, n.hasScore
}

// Pop returns the node's score, or Unranked when no word ends here.
func (n *Node) Pop() int {
	if !n.hasScore {
		return Unranked
	}
	return n.score
}

// SetScore marks the node as the end of a word with the given score.
func (n *Node) SetScore(score int) {
	n.score = score
	n.hasScore = true
}

func (n *Node) clearScore() {
	n.score = 0
	n.hasScore = false
}

// Children returns the number of direct children.
func (n *Node) Children() int {
	return len(n.children)
}

// Each calls fn for every child in insertion order until fn returns false.
func (n *Node) Each(fn func(key byte, child *Node) bool) {
	for _, e := range n.children {
		if !fn(e.key, e.node) {
			return
		}
	}
}

// child returns the child under key, or nil.
func (n *Node) child(key byte) *Node {
	for _, e := range n.children {
		if e.key == key {
			return e.node
		}
	}
	return nil
}

// childOrCreate returns the child under key, appending a new one if missing.
func (n *Node) childOrCreate(key byte) *Node {
	if c := n.child(key); c != nil {
		return c
	}
	c := &Node{}
	n.children = append(n.children, edge{key: key, node: c})
	return c
}

// deleteChild drops the edge under key, keeping the order of the others.
func (n *Node) deleteChild(key byte) {
	for i, e := range n.children {
		if e.key == key {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = edge{}
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// prunable reports a node that serves no word and has no descendants.
func (n *Node) prunable() bool {
	return len(n.children) == 0 && !n.hasScore
}

// terminal walks word from the root, creating nodes as needed, and returns
// the node for its last byte. Returns nil for the empty word.
func (t *Tree) terminal(word string) *Node {
	if len(word) == 0 {
		return nil
	}
	n := t.root
	for i := 0; i < len(word); i++ {
		n = n.childOrCreate(word[i])
	}
	return n
}

// Insert adds word with the given score, overwriting any previous score.
// Inserting the empty string does nothing.
func (t *Tree) Insert(word string, score int) {
	if n := t.terminal(word); n != nil {
		n.SetScore(score)
	}
}

// InsertWord adds word without a ranking. An existing score is kept;
// otherwise the word is marked Unranked.
func (t *Tree) InsertWord(word string) {
	n := t.terminal(word)
	if n != nil && !n.hasScore {
		n.SetScore(Unranked)
	}
}

// Remove deletes word from the tree. It reports whether the node holding
// the word's last byte was itself deleted, i.e. the word was a leaf, which
// is the signal a parent uses to drop the edge. Removing a word that is a
// prefix of other words only clears its score and reports false.
func (t *Tree) Remove(word string) bool {
	return t.root.remove(word, 0)
}

func (n *Node) remove(word string, i int) bool {
	if i >= len(word) {
		return false
	}
	key := word[i]
	c := n.child(key)
	if c == nil {
		return false
	}

	if i == len(word)-1 {
		if len(c.children) == 0 {
			n.deleteChild(key)
			return true
		}
		c.clearScore()
		return false
	}

	removed := c.remove(word, i+1)
	if c.prunable() {
		n.deleteChild(key)
	}
	return removed
}

// Contains reports whether word was inserted. Prefixes of inserted words
// are not members unless they were inserted themselves.
func (t *Tree) Contains(word string) bool {
	n := t.walk(word)
	return n != nil && n.hasScore
}
