package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment_DecodeKeepsMistypedMembers(t *testing.T) {
	var c NewComment
	require.NoError(t, json.Unmarshal([]byte(`{"username":123,"body":"hello"}`), &c))

	assert.Nil(t, c.Username)
	require.NotNil(t, c.Body)
	assert.Equal(t, "hello", *c.Body)
	assert.Equal(t, Mistyped{"username"}, c.Mistyped)
	assert.True(t, c.Mistyped.Has("username"))
	assert.False(t, c.Mistyped.Has("body"))
}

func TestNewComment_DecodeNullIsAbsent(t *testing.T) {
	var c NewComment
	require.NoError(t, json.Unmarshal([]byte(`{"username":null}`), &c))

	assert.Nil(t, c.Username)
	assert.Nil(t, c.Body)
	assert.Empty(t, c.Mistyped)
}

func TestNewArticle_DecodeSortsMistypedMembers(t *testing.T) {
	var a NewArticle
	require.NoError(t, json.Unmarshal([]byte(`{"topic":false,"author":1,"title":"t","body":"b"}`), &a))

	assert.Equal(t, Mistyped{"author", "topic"}, a.Mistyped)
	assert.Nil(t, a.Author)
	assert.Nil(t, a.Topic)
	assert.Equal(t, "t", *a.Title)
}

func TestVoteUpdate_Decode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     *int
		mistyped Mistyped
	}{
		{"integer", `{"inc_votes":-3}`, intPtr(-3), nil},
		{"string", `{"inc_votes":"seven"}`, nil, Mistyped{"inc_votes"}},
		{"fraction", `{"inc_votes":1.5}`, nil, Mistyped{"inc_votes"}},
		{"missing", `{}`, nil, nil},
		{"array body", `[1]`, nil, Mistyped{NotAnObject}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v VoteUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &v))
			assert.Equal(t, tt.want, v.IncVotes)
			assert.Equal(t, tt.mistyped, v.Mistyped)
		})
	}
}

func TestVoteUpdate_DecodeRejectsBrokenJSON(t *testing.T) {
	var v VoteUpdate
	assert.Error(t, json.Unmarshal([]byte(`not json`), &v))
}

func intPtr(i int) *int { return &i }
