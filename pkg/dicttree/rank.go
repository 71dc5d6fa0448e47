package dicttree

import "sort"

// ExactMatchRank is the placeholder rank given to a prefix that is itself a
// word in PredictN. The entry is put in front regardless of this value.
const ExactMatchRank = 0

// Completion is a word ending below some node, stored as the suffix after
// that node together with the word's score.
type Completion struct {
	Suffix string
	Score  int
}

// MostPopularWord returns the highest scored word under n. The running best
// starts at score 0, so words scored below zero, Unranked included, never win
// against a sibling or a parent. Later children win exact ties against
// earlier ones, and a word ending at n itself beats equally scored longer
// words. A scored leaf always reports its own score. Reports false when no
// word under n qualifies.
func MostPopularWord(n *Node) (Completion, bool) {
	if len(n.children) == 0 {
		return Completion{Score: n.score}, n.hasScore
	}

	var (
		best  Completion
		found bool
	)
	for _, e := range n.children {
		c, ok := MostPopularWord(e.node)
		if !ok || c.Score < best.Score {
			continue
		}
		best = Completion{Suffix: string(e.key) + c.Suffix, Score: c.Score}
		found = true
	}
	if n.hasScore && n.score >= best.Score {
		return Completion{Score: n.score}, true
	}
	return best, found
}

// MostPopularList returns up to limit words under n ordered by descending
// score. Words with equal scores keep trie order. A word ending at n only
// enters the list by replacing the lowest scored entry it beats, so it is
// left out when every longer word outscores it, even if the list has room.
func MostPopularList(n *Node, limit int) []Completion {
	if limit <= 0 {
		return []Completion{}
	}

	list := make([]Completion, 0, limit)
	for _, e := range n.children {
		prefix := string(e.key)
		for _, c := range MostPopularList(e.node, limit) {
			list = append(list, Completion{Suffix: prefix + c.Suffix, Score: c.Score})
		}
	}

	if n.hasScore {
		own := Completion{Score: n.score}
		if len(n.children) == 0 {
			return []Completion{own}
		}
		if low := lowest(list); len(list) > 0 && n.score > list[low].Score {
			list[low] = own
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

// lowest returns the index of the last entry holding the minimum score.
func lowest(list []Completion) int {
	low := 0
	for i := range list {
		if list[i].Score <= list[low].Score {
			low = i
		}
	}
	return low
}

// Predict returns the most popular word starting with prefix. A prefix that
// is a word is returned unchanged. Reports false when nothing extends prefix.
func (t *Tree) Predict(prefix string) (string, bool) {
	if t.Contains(prefix) {
		return prefix, true
	}
	n, ok := t.FollowPrefix(prefix)
	if !ok {
		return "", false
	}
	c, ok := MostPopularWord(n)
	if !ok || c.Suffix == "" {
		return "", false
	}
	return prefix + c.Suffix, true
}

// PredictN returns up to n words starting with prefix, most popular first.
// If prefix is itself a word it always comes first, whatever its score. The
// ranked list below it is not filtered, so the prefix shows up a second time
// when it also ranks among the top words of its subtree.
func (t *Tree) PredictN(prefix string, n int) []string {
	ranked := t.rankedSuffixes(prefix, n)
	words := make([]string, len(ranked))
	for i, c := range ranked {
		words[i] = prefix + c.Suffix
	}
	return words
}

// PredictRanked is PredictN with scores. Suffix holds the full word. The
// leading exact match carries the word's stored score instead of
// ExactMatchRank.
func (t *Tree) PredictRanked(prefix string, n int) []Completion {
	ranked := t.rankedSuffixes(prefix, n)
	out := make([]Completion, len(ranked))
	for i, c := range ranked {
		out[i] = Completion{Suffix: prefix + c.Suffix, Score: c.Score}
	}
	if len(out) > 0 && t.Contains(prefix) {
		out[0].Score = t.terminalScore(prefix)
	}
	return out
}

// rankedSuffixes builds the ordered suffix list shared by PredictN and
// PredictRanked: the subtree ranking, with an ExactMatchRank entry pinned in
// front when prefix is a word, cut to n.
func (t *Tree) rankedSuffixes(prefix string, n int) []Completion {
	if n <= 0 {
		return []Completion{}
	}

	list := []Completion{}
	if node, ok := t.FollowPrefix(prefix); ok {
		list = MostPopularList(node, n)
	}
	if t.Contains(prefix) {
		list = append([]Completion{{Score: ExactMatchRank}}, list...)
	}
	if len(list) > n {
		list = list[:n]
	}
	return list
}
