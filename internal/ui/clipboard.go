package ui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var clipboardWriteAll = clipboard.WriteAll

type copiedMsg struct {
	uri string
	err error
}

func copyNoteCmd(uri, body string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWriteAll(body); err != nil {
			return copiedMsg{uri: uri, err: humanizeClipboardError(err)}
		}
		return copiedMsg{uri: uri}
	}
}

func humanizeClipboardError(err error) error {
	if strings.TrimSpace(err.Error()) == "exit status 1" {
		return errors.New("clipboard helper exited with status 1")
	}
	return err
}
