package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsLoaded MsgKind = iota
	MsgProgressUpdate
	MsgHarvestComplete
)

type songsLoaded struct {
	songs []models.Song
	err   error
}

type harvestComplete struct {
	result *tasks.HarvestResult
	err    error
}

// songsLoadedMsg is the constructor for [MsgSongsLoaded]
func songsLoadedMsg(songs []models.Song, err error) Msg {
	return Msg{kind: MsgSongsLoaded, data: songsLoaded{songs, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// harvestCompleteMsg is the constructor for [MsgHarvestComplete]
func harvestCompleteMsg(result *tasks.HarvestResult, err error) Msg {
	return Msg{kind: MsgHarvestComplete, data: harvestComplete{result, err}}
}
