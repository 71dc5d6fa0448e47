package dicttree

// Fold reduces the subtree rooted at n bottom-up. Every child is folded
// first, in insertion order, and f combines n with the children's results.
func Fold[A any](n *Node, f func(n *Node, results []A) A) A {
	results := make([]A, 0, len(n.children))
	for _, e := range n.children {
		results = append(results, Fold(e.node, f))
	}
	return f(n, results)
}

// Size returns the number of nodes, root included.
func (t *Tree) Size() int {
	return Fold(t.root, func(_ *Node, sizes []int) int {
		size := 1
		for _, s := range sizes {
			size += s
		}
		return size
	})
}

// Height returns the length of the longest branch. An empty tree has height 0.
func (t *Tree) Height() int {
	return Fold(t.root, func(_ *Node, heights []int) int {
		if len(heights) == 0 {
			return 0
		}
		return 1 + maxOf(heights)
	})
}

// NumLeaves returns the number of childless nodes, i.e. words that are not
// a prefix of any other word. The root of an empty tree counts as a leaf.
func (t *Tree) NumLeaves() int {
	return Fold(t.root, func(n *Node, leaves []int) int {
		count := 0
		for _, l := range leaves {
			count += l
		}
		if len(n.children) == 0 {
			count++
		}
		return count
	})
}

// MaximumBranching returns the largest number of children held by any node.
func (t *Tree) MaximumBranching() int {
	return Fold(t.root, func(n *Node, branching []int) int {
		return max(len(n.children), maxOf(branching))
	})
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Size         int
	Height       int
	Leaves       int
	MaxBranching int
	Words        int
	// MaxScore is the highest stored score. Zero when Words is zero.
	MaxScore int
}

// Stats computes all structural statistics in a single traversal.
func (t *Tree) Stats() Stats {
	return Fold(t.root, func(n *Node, children []Stats) Stats {
		s := Stats{Size: 1, MaxBranching: len(n.children)}
		for _, c := range children {
			s.Size += c.Size
			s.Height = max(s.Height, c.Height+1)
			s.Leaves += c.Leaves
			s.MaxBranching = max(s.MaxBranching, c.MaxBranching)
			if c.Words > 0 && (s.Words == 0 || c.MaxScore > s.MaxScore) {
				s.MaxScore = c.MaxScore
			}
			s.Words += c.Words
		}
		if len(n.children) == 0 {
			s.Leaves++
		}
		if n.hasScore {
			if s.Words == 0 || n.score > s.MaxScore {
				s.MaxScore = n.score
			}
			s.Words++
		}
		return s
	})
}

func maxOf(values []int) int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

// LongestWord returns the longest path in the tree. When branches tie in
// length the one scanned last wins.
func (t *Tree) LongestWord() string {
	return longest(t.root)
}

func longest(n *Node) string {
	var (
		word string
		key  []byte
	)
	for _, e := range n.children {
		w := longest(e.node)
		if len(w) >= len(word) {
			word = w
			key = []byte{e.key}
		}
	}
	return string(key) + word
}

// AllWords returns every inserted word in pre-order, following children in
// insertion order.
func (t *Tree) AllWords() []string {
	words := []string{}
	var buf []byte
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, e := range n.children {
			buf = append(buf, e.key)
			if e.node.hasScore {
				words = append(words, string(buf))
			}
			walk(e.node)
			buf = buf[:len(buf)-1]
		}
	}
	walk(t.root)
	return words
}
