// Package suggest is the core facade, serializing access to a dicttree.Tree and turning its ranked predictions into suggestions.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to limit suggestions for a prefix, best first
	Complete(prefix string, limit int) []Suggestion

	// Predict returns the single most popular completion of a prefix
	Predict(prefix string) (string, bool)

	// AddWord adds a word with its frequency to the completer
	AddWord(word string, frequency int)

	// AddUnranked adds a word without a frequency, keeping an existing one
	AddUnranked(word string)

	// RemoveWord deletes a word, reporting whether it was present
	RemoveWord(word string) bool

	// Contains reports whether the word was added
	Contains(word string) bool

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
