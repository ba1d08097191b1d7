package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = genreItem{}
)

// genreItem is a configured genre in the genre picker.
type genreItem struct {
	genre string
	songs int // Songs in the catalog file, -1 when unknown
}

func (i genreItem) FilterValue() string { return i.genre }
func (i genreItem) Title() string       { return i.genre }
func (i genreItem) Description() string {
	if i.songs < 0 {
		return "no catalog file"
	}
	return fmt.Sprintf("%d songs in catalog", i.songs)
}
