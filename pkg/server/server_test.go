package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/wordserve/pkg/config"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func testCompleter() *suggest.Completer {
	c := suggest.NewCompleter()
	c.AddWord("ame", 5)
	c.AddWord("america", 90)
	c.AddWord("amend", 60)
	c.AddWord("amenity", 30)
	return c
}

func encodeAll(t *testing.T, msgs ...any) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, m := range msgs {
		require.NoError(t, enc.Encode(m))
	}
	return &buf
}

func intPtr(v int) *int { return &v }

func TestServer_Complete(t *testing.T) {
	in := encodeAll(t,
		CompletionRequest{ID: "r1", Prefix: "am", Limit: 2},
		CompletionRequest{ID: "r2", Prefix: "ame"},
	)
	var out bytes.Buffer

	srv := NewServerWithIO(testCompleter(), config.DefaultConfig(), in, &out)
	require.NoError(t, srv.Start())
	assert.Equal(t, 2, srv.RequestCount())

	dec := msgpack.NewDecoder(&out)

	var first CompletionResponse
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "r1", first.ID)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, []CompletionSuggestion{
		{Word: "america", Rank: 1, Freq: 90},
		{Word: "amend", Rank: 2, Freq: 60},
	}, first.Suggestions)

	var second CompletionResponse
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "r2", second.ID)
	require.Equal(t, 4, second.Count)
	assert.Equal(t, "ame", second.Suggestions[0].Word)
	assert.Equal(t, "america", second.Suggestions[1].Word)
}

func TestServer_InvalidPrefix(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxPrefix = 4
	in := encodeAll(t,
		CompletionRequest{ID: "e1"},
		CompletionRequest{ID: "e2", Prefix: "americas"},
	)
	var out bytes.Buffer

	require.NoError(t, NewServerWithIO(testCompleter(), cfg, in, &out).Start())

	dec := msgpack.NewDecoder(&out)
	var e1, e2 CompletionError
	require.NoError(t, dec.Decode(&e1))
	require.NoError(t, dec.Decode(&e2))

	assert.Equal(t, CompletionError{ID: "e1", Error: "missing prefix", Code: 400}, e1)
	assert.Equal(t, "e2", e2.ID)
	assert.Contains(t, e2.Error, "maximum length of 4")
}

func TestServer_Dictionary(t *testing.T) {
	in := encodeAll(t,
		DictionaryRequest{ID: "d1", Action: ActionInsert, Word: "amen", Score: intPtr(200)},
		CompletionRequest{ID: "c1", Prefix: "am", Limit: 1},
		DictionaryRequest{ID: "d2", Action: ActionRemove, Word: "amen"},
		DictionaryRequest{ID: "d3", Action: ActionContains, Word: "amen"},
		DictionaryRequest{ID: "d4", Action: ActionStats},
		DictionaryRequest{ID: "d5", Action: "explode"},
	)
	var out bytes.Buffer

	require.NoError(t, NewServerWithIO(testCompleter(), nil, in, &out).Start())

	dec := msgpack.NewDecoder(&out)

	var d1 DictionaryResponse
	require.NoError(t, dec.Decode(&d1))
	assert.Equal(t, DictionaryResponse{ID: "d1", Status: "ok"}, d1)

	var c1 CompletionResponse
	require.NoError(t, dec.Decode(&c1))
	require.Len(t, c1.Suggestions, 1)
	assert.Equal(t, "amen", c1.Suggestions[0].Word)

	var d2 DictionaryResponse
	require.NoError(t, dec.Decode(&d2))
	assert.True(t, d2.Removed)

	var d3 DictionaryResponse
	require.NoError(t, dec.Decode(&d3))
	assert.False(t, d3.Found)

	var d4 DictionaryResponse
	require.NoError(t, dec.Decode(&d4))
	assert.Equal(t, 4, d4.Stats["totalWords"])
	assert.Equal(t, 7, d4.Stats["height"])

	var d5 CompletionError
	require.NoError(t, dec.Decode(&d5))
	assert.Equal(t, "unknown action: explode", d5.Error)
}

func TestServer_InsertUnranked(t *testing.T) {
	in := encodeAll(t,
		DictionaryRequest{ID: "d1", Action: ActionInsert, Word: "amp"},
		CompletionRequest{ID: "c1", Prefix: "amp"},
	)
	var out bytes.Buffer

	require.NoError(t, NewServerWithIO(testCompleter(), nil, in, &out).Start())

	dec := msgpack.NewDecoder(&out)
	var d1 DictionaryResponse
	require.NoError(t, dec.Decode(&d1))
	var c1 CompletionResponse
	require.NoError(t, dec.Decode(&c1))

	// a leaf prefix is both the exact match and its own best completion
	assert.Equal(t, []CompletionSuggestion{
		{Word: "amp", Rank: 1, Freq: -1},
		{Word: "amp", Rank: 2, Freq: -1},
	}, c1.Suggestions)
}

func TestServer_MalformedStream(t *testing.T) {
	in := bytes.NewBuffer([]byte{0xc1})
	var out bytes.Buffer

	err := NewServerWithIO(testCompleter(), nil, in, &out).Start()

	require.Error(t, err)
	var resp CompletionError
	require.NoError(t, msgpack.NewDecoder(&out).Decode(&resp))
	assert.Equal(t, 400, resp.Code)
}
