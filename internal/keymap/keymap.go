// Package keymap holds the key bindings of the player screen.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
)

// Binding ties keys to an action. Context is "global", "transport" or "alert".
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string
}

var bindings = []Binding{
	{Keys: []string{"q", "ctrl+c"}, Action: ActionQuit, Description: "Quit", Context: "global"},
	{Keys: []string{"?"}, Action: ActionHelp, Description: "Toggle help", Context: "global"},

	{Keys: []string{" ", "p"}, Action: ActionPlayPause, Description: "Play/pause", Context: "transport"},
	{Keys: []string{"pgup", "["}, Action: ActionPrevChapter, Description: "Previous key point", Context: "transport"},
	{Keys: []string{"pgdown", "]"}, Action: ActionNextChapter, Description: "Next key point", Context: "transport"},
	{Keys: []string{"left", "h"}, Action: ActionSkipBackward, Description: "Skip back", Context: "transport"},
	{Keys: []string{"right", "l"}, Action: ActionSkipForward, Description: "Skip forward", Context: "transport"},
	{Keys: []string{"s"}, Action: ActionCycleSpeed, Description: "Change speed", Context: "transport"},
	{Keys: []string{"shift+left", "H"}, Action: ActionScrubBack, Description: "Scrub back", Context: "transport"},
	{Keys: []string{"shift+right", "L"}, Action: ActionScrubForward, Description: "Scrub forward", Context: "transport"},

	{Keys: []string{"enter", "esc"}, Action: ActionDismiss, Description: "Dismiss", Context: "alert"},
}

// All returns every binding.
func All() []Binding {
	return bindings
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	return lo.Filter(bindings, func(b Binding, _ int) bool {
		return b.Context == context
	})
}

// Help returns bubbles key bindings for the help view, short form first.
func Help() (short []key.Binding, full [][]key.Binding) {
	toKey := func(b Binding, _ int) key.Binding {
		return key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(displayKey(b.Keys[0]), b.Description),
		)
	}
	transport := lo.Map(ByContext("transport"), toKey)
	global := lo.Map(ByContext("global"), toKey)
	short = append(transport[:3:3], global...)
	return short, [][]key.Binding{transport, global}
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
