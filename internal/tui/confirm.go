package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmState is a y/N prompt guarding a destructive action.
type confirmState struct {
	active   bool
	action   string // "清除缓存"
	target   string
	callback func() tea.Msg // action to execute on confirm
}

func (cs *confirmState) activate(action, target string, callback func() tea.Msg) {
	cs.active = true
	cs.action = action
	cs.target = target
	cs.callback = callback
}

func (cs *confirmState) reset() {
	*cs = confirmState{}
}

func (cs *confirmState) isActive() bool {
	return cs.active
}

// update consumes msg while the prompt is open. The returned command is
// the confirmed action, if any.
func (cs *confirmState) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !cs.active {
		return nil, false
	}
	switch msg.String() {
	case "y", "Y":
		cb := cs.callback
		cs.reset()
		if cb != nil {
			return cb, true
		}
		return nil, true
	case "n", "N", "esc":
		cs.reset()
		return nil, true
	}
	return nil, true // absorb all other keys
}

func (cs *confirmState) view() string {
	if !cs.active {
		return ""
	}
	prompt := fmt.Sprintf("%s %s ? [y/N]", cs.action, cs.target)
	return "\n" + confirmBoxStyle.Render(prompt) + "\n"
}
