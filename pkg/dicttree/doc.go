/*
Package dicttree implements the character-indexed prefix tree behind word
prediction.

Every edge of the tree is labeled by one byte of the inserted word and every
root-to-node path spells a prefix. A node carries a score only when its path
spells a word that was explicitly inserted; nodes without a score exist
because they are prefixes of longer words.

# Mutation

Words are inserted one byte at a time, creating nodes lazily:

	t := dicttree.New()
	t.Insert("word", 10)
	t.Insert("world", 7)
	t.InsertWord("wordy") // unranked, score -1

Removal unwinds recursively and each parent prunes a child that no longer
serves any word, so nodes shared with other words survive:

	t.Remove("word")  // "world" and "wordy" are still present

# Prediction

Predict returns a single completion, PredictN up to n ranked completions.
A prefix that is itself a word is always returned first:

	t.Predict("wor")      // "word", true
	t.PredictN("wor", 3)  // ["word", "world"]

A word ending at an inner node only enters a ranking by displacing a lower
scored entry, so "wordy" (unranked) is shadowed by "word" above.

# Aggregation

Fold walks the whole tree bottom-up; Size, Height, NumLeaves and
MaximumBranching are built on it.

The tree has no internal locking. Callers that share a Tree between
goroutines must serialize access themselves (see package suggest).
*/
package dicttree
