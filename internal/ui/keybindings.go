package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isForceQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

func isEdit(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyTab
}

func isHide(msg tea.KeyMsg) bool {
	return isKey(msg, "x")
}

func isRefresh(msg tea.KeyMsg) bool {
	return isKey(msg, "r")
}

func isCopy(msg tea.KeyMsg) bool {
	return isKey(msg, "y")
}
