/*
Package server implements msgpack IPC and a small HTTP API for word predictions.

The IPC side reads a stream of msgpack maps from stdin and writes one msgpack
response per request to stdout. Each message carries an ID; messages with an
"action" field manage the dictionary, all others are completion requests.

Completion requests use this structure:

	{"id": "req_001", "p": "ame", "l": 24}

The server responds with predictions, best first:

	{"id": "req_001", "s": [{"w": "america", "r": 1}, {"w": "amend", "r": 2}], "c": 2, "t": 145}

A prefix that is itself a word is always ranked 1. "t" is the lookup time
in microseconds.

Dictionary requests insert, remove or query words and report tree statistics:

	{"id": "d1", "action": "insert", "w": "amenity", "score": 900}
	{"id": "d2", "action": "remove", "w": "amenity"}
	{"id": "d3", "action": "contains", "w": "amend"}
	{"id": "d4", "action": "stats"}

Malformed or invalid requests are answered with a CompletionError and never
stop the server.

The HTTP API serves the same predictions as JSON, see NewHTTPHandler.
*/
package server

// Request is any message read from the IPC stream.
type Request struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
	Action string `msgpack:"action,omitempty"`
	Word   string `msgpack:"w,omitempty"`
	Score  *int   `msgpack:"score,omitempty"`
}

// CompletionRequest - minimal completion request
type CompletionRequest struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w" json:"word"`
	Rank uint16 `msgpack:"r" json:"rank"`
	Freq int    `msgpack:"f,omitempty" json:"freq"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id" json:"id,omitempty"`
	Suggestions []CompletionSuggestion `msgpack:"s" json:"suggestions"`
	Count       int                    `msgpack:"c" json:"count"`
	TimeTaken   int64                  `msgpack:"t" json:"time_us"`
}

// Dictionary actions
const (
	ActionInsert   = "insert"
	ActionRemove   = "remove"
	ActionContains = "contains"
	ActionStats    = "stats"
)

// DictionaryRequest - dictionary management request
type DictionaryRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Word   string `msgpack:"w,omitempty"`
	Score  *int   `msgpack:"score,omitempty"`
}

// DictionaryResponse - dictionary operation response
type DictionaryResponse struct {
	ID      string         `msgpack:"id"`
	Status  string         `msgpack:"status"`
	Error   string         `msgpack:"error,omitempty"`
	Removed bool           `msgpack:"removed,omitempty"`
	Found   bool           `msgpack:"found,omitempty"`
	Stats   map[string]int `msgpack:"stats,omitempty"`
}

// CompletionError holds basic error information for completion requests
type CompletionError struct {
	ID    string `msgpack:"id" json:"id,omitempty"`
	Error string `msgpack:"e" json:"error"`
	Code  int    `msgpack:"c" json:"status"`
}
