package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewAsk, "ask"},
		{ViewLibrary, "library"},
		{ViewHelp, "help"},
		{ViewSettings, "settings"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	views := []ViewType{ViewMenu, ViewAsk, ViewLibrary, ViewHelp, ViewSettings}
	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view type %d", v)
		seen[v] = true
	}
}

func TestAskCompleted(t *testing.T) {
	t.Run("with state", func(t *testing.T) {
		state := domain.NewAgentState("run-1", "who is freddie mercury")
		state.QueryType = domain.QueryTypeTrivia
		msg := AskCompleted{State: &state}

		require.NotNil(t, msg.State)
		assert.True(t, msg.State.IsTrivia())
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := AskCompleted{Err: domain.ErrLLMUnavailable}

		assert.Nil(t, msg.State)
		assert.ErrorIs(t, msg.Err, domain.ErrLLMUnavailable)
	})
}

func TestTracksLoaded(t *testing.T) {
	msg := TracksLoaded{
		Tracks: []domain.Track{{ID: 1, Title: "Hey Jude", Artist: "The Beatles"}},
		Total:  41,
		Offset: 20,
	}

	assert.Len(t, msg.Tracks, 1)
	assert.Equal(t, 41, msg.Total)
	assert.Equal(t, 20, msg.Offset)
}

func TestActionCompleted(t *testing.T) {
	track := domain.Track{Title: "Yesterday", Artist: "The Beatles"}
	msg := ActionCompleted{Action: "Play", Track: track, Err: domain.ErrAudioNotFound}

	assert.Equal(t, "Play", msg.Action)
	assert.Equal(t, "Yesterday", msg.Track.Title)
	assert.ErrorIs(t, msg.Err, domain.ErrAudioNotFound)
}

func TestErrorOccurred(t *testing.T) {
	err := errors.New("boom")
	msg := ErrorOccurred{Err: err}

	assert.Equal(t, err, msg.Err)
}

func TestSettingsMessages(t *testing.T) {
	settings := domain.DefaultAppSettings()
	loaded := SettingsLoaded{Settings: &settings}
	saved := SettingsSaved{Err: errors.New("read-only")}

	assert.Equal(t, domain.SearchProviderDuckDuckGo, loaded.Settings.WebSearch.Provider)
	assert.EqualError(t, saved.Err, "read-only")
}
