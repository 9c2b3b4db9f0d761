package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryType_IsValid(t *testing.T) {
	assert.True(t, QueryTypeTrivia.IsValid())
	assert.True(t, QueryTypeTrack.IsValid())
	assert.False(t, QueryType("").IsValid())
	assert.False(t, QueryType("lyrics").IsValid())
}

func TestNewAgentState(t *testing.T) {
	s := NewAgentState("run-1", "Play Imagine")

	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, "Play Imagine", s.UserInput)
	assert.NotNil(t, s.Tracks)
	assert.NotNil(t, s.Trace)
	assert.False(t, s.HasTracks())
	assert.False(t, s.IsTrivia())
}

func TestAgentState_Predicates(t *testing.T) {
	s := AgentState{QueryType: QueryTypeTrivia, Tracks: []Track{{Title: "a", Artist: "b"}}}
	assert.True(t, s.IsTrivia())
	assert.True(t, s.HasTracks())
}
