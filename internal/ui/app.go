package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/notes"
	"github.com/gravitrone/treenotes/internal/ui/components"
)

// --- Focus ---

type focus int

const (
	focusTree focus = iota
	focusEditor
)

// --- Messages ---

type treeLoadedMsg struct {
	root *api.TreeNode
	err  error
}
type refreshDoneMsg struct {
	res *api.RefreshResult
	err error
}
type notesLoadedMsg struct{ err error }
type activatedMsg struct {
	uri string
	ok  bool
	err error
}
type saveTickMsg struct{}
type clearToastMsg struct{ seq int }

type appToast struct {
	level string
	text  string
}

// TreeClient is the tree half of the backend.
type TreeClient interface {
	GetTree() (*api.TreeNode, error)
	RefreshTree() (*api.RefreshResult, error)
}

// Options configure NewApp.
type Options struct {
	Server   string
	Username string
	// Feed delivers pushed tree snapshots; nil disables live updates.
	Feed <-chan FeedUpdate
}

// --- App Model ---

// App is the root TUI model: the content tree on the left, the visible
// notes on the right.
type App struct {
	session *notes.Session
	trees   TreeClient
	opts    Options

	width  int
	height int
	focus  focus

	tree        *api.TreeNode
	rows        []api.TreeRow
	list        *components.List
	treeLoading bool
	activating  bool

	editor noteEditor

	err      string
	toast    *appToast
	toastSeq int
}

// NewApp creates the root application model.
func NewApp(session *notes.Session, trees TreeClient, opts Options) App {
	return App{
		session:     session,
		trees:       trees,
		opts:        opts,
		list:        components.NewList(20),
		treeLoading: trees != nil,
		editor:      newNoteEditor(),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadNotesCmd()}
	if a.trees != nil {
		cmds = append(cmds, a.loadTreeCmd())
	}
	if a.opts.Feed != nil {
		cmds = append(cmds, waitForFeed(a.opts.Feed))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case treeLoadedMsg:
		a.treeLoading = false
		if msg.err != nil {
			a.err = fmt.Sprintf("load tree: %v", msg.err)
			return a, nil
		}
		a.setTree(msg.root)
		return a, nil

	case refreshDoneMsg:
		a.treeLoading = false
		switch {
		case msg.err != nil:
			a.err = fmt.Sprintf("refresh tree: %v", msg.err)
			return a, nil
		case msg.res.NeedsCredentials():
			return a, a.setToast("warning", "backend needs credentials, run 'treenotes login'")
		case msg.res.Node == nil:
			a.err = fmt.Sprintf("refresh tree: %s", msg.res.Status)
			return a, nil
		}
		a.setTree(msg.res.Node)
		return a, a.setToast("success", "tree refreshed")

	case feedTreeMsg:
		root := msg.root
		a.setTree(&root)
		return a, waitForFeed(a.opts.Feed)

	case feedClosedMsg:
		a.opts.Feed = nil
		if msg.err != nil {
			return a, a.setToast("warning", fmt.Sprintf("live tree updates stopped: %v", msg.err))
		}
		return a, nil

	case notesLoadedMsg:
		if msg.err != nil {
			a.err = msg.err.Error()
		}
		return a, nil

	case activatedMsg:
		a.activating = false
		if msg.err != nil {
			a.err = fmt.Sprintf("open note: %v", msg.err)
			return a, nil
		}
		if !msg.ok {
			return a, a.setToast("warning", fmt.Sprintf("backend refused to create a note for %s", msg.uri))
		}
		a.syncEditor()
		return a, nil

	case copiedMsg:
		if msg.err != nil {
			return a, a.setToast("error", fmt.Sprintf("copy failed: %v", msg.err))
		}
		return a, a.setToast("success", "note copied to clipboard")

	case saveTickMsg:
		// Re-render so the status reflects a write that went out.
		return a, nil

	case clearToastMsg:
		// A newer toast owns its own clear.
		if msg.seq == a.toastSeq {
			a.toast = nil
		}
		return a, nil

	case tea.KeyMsg:
		if a.err != "" && !isForceQuit(msg) {
			a.err = ""
		}
		if a.focus == focusEditor {
			return a.handleEditorKeys(msg)
		}
		return a.handleTreeKeys(msg)
	}

	if a.focus == focusEditor {
		var cmd tea.Cmd
		a.editor.area, cmd = a.editor.area.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleTreeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isQuit(msg):
		return a, tea.Quit
	case isUp(msg):
		a.list.Up()
	case isDown(msg):
		a.list.Down()
	case isEnter(msg):
		node, ok := a.selectedNode()
		if !ok {
			return a, nil
		}
		if node.URI == "" {
			return a, a.setToast("info", "this node cannot hold a note")
		}
		a.activating = true
		return a, activateCmd(a.session, *node)
	case isHide(msg):
		uri := a.session.Selector().ActiveURI()
		if uri == "" {
			return a, nil
		}
		a.session.Hide(uri)
		a.syncEditor()
	case isBack(msg):
		a.session.ResetActive()
		a.syncEditor()
	case isEdit(msg):
		if _, ok := a.session.Active(); !ok {
			return a, a.setToast("info", "no active note, open one with enter")
		}
		a.syncEditor()
		a.focus = focusEditor
		return a, a.editor.Focus()
	case isRefresh(msg):
		if a.trees == nil {
			return a, nil
		}
		a.treeLoading = true
		return a, a.refreshTreeCmd()
	case isCopy(msg):
		note, ok := a.session.Active()
		if !ok {
			return a, nil
		}
		return a, copyNoteCmd(note.URI, note.Body)
	}
	return a, nil
}

func (a App) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isForceQuit(msg) {
		return a, tea.Quit
	}
	if isBack(msg) {
		a.editor.Blur()
		a.focus = focusTree
		return a, nil
	}

	changed, cmd := a.editor.Update(msg)
	if !changed {
		return a, cmd
	}
	if err := a.session.SetBody(a.editor.URI(), a.editor.Value()); err != nil {
		a.err = err.Error()
		return a, cmd
	}
	tick := tea.Tick(a.session.Window()+50*time.Millisecond, func(time.Time) tea.Msg {
		return saveTickMsg{}
	})
	return a, tea.Batch(cmd, tick)
}

// syncEditor binds the editor to the active note, or unbinds it and
// returns focus to the tree when there is none.
func (a *App) syncEditor() {
	active, ok := a.session.Active()
	if !ok {
		a.editor.Clear()
		a.focus = focusTree
		return
	}
	if a.editor.URI() != active.URI {
		a.editor.Load(active)
	}
}

func (a *App) setTree(root *api.TreeNode) {
	a.tree = root
	a.rows = root.Flatten()
	a.list.Replace(rowKeys(a.rows))
}

func (a *App) layout() {
	_, notesW, bodyH := a.paneSizes()
	a.list.SetPageSize(components.PaneContentHeight(bodyH))
	a.editor.SetSize(components.PaneContentWidth(notesW)-2, components.PaneContentHeight(bodyH)/2)
}

// paneSizes splits the screen: banner on top, status at the bottom.
func (a App) paneSizes() (treeW, notesW, bodyH int) {
	width := a.width
	if width <= 0 {
		width = 100
	}
	height := a.height
	if height <= 0 {
		height = 30
	}
	treeW = width * 35 / 100
	if treeW < 24 {
		treeW = 24
	}
	if treeW > width-20 {
		treeW = width / 2
	}
	notesW = width - treeW
	bodyH = height - 4
	if bodyH < 5 {
		bodyH = 5
	}
	return treeW, notesW, bodyH
}

func (a App) View() string {
	treeW, notesW, bodyH := a.paneSizes()

	banner := RenderBanner(a.opts.Server, a.opts.Username, a.width)
	treePane := components.Pane("Tree", a.renderTreeRows(components.PaneContentWidth(treeW)), treeW, bodyH, a.focus == focusTree)
	notesPane := components.Pane("Notes", a.renderNotes(components.PaneContentWidth(notesW)), notesW, bodyH, a.focus == focusEditor)
	body := lipgloss.JoinHorizontal(lipgloss.Top, treePane, notesPane)

	var footer string
	switch {
	case a.err != "":
		footer = components.ErrorBox("Error", a.err, a.width)
	case a.toast != nil:
		footer = a.renderToast()
	default:
		footer = components.StatusBar(a.statusText(), a.statusHints(), a.width)
	}
	return strings.Join([]string{banner, body, footer}, "\n")
}

func (a App) statusText() string {
	switch {
	case a.activating:
		return "opening…"
	case a.treeLoading && a.tree != nil:
		return "refreshing…"
	}
	if pending, ok := a.session.PendingWrite(); ok {
		return "saving " + pending.URI + "…"
	}
	return ""
}

func (a App) statusHints() []string {
	if a.focus == focusEditor {
		return []string{
			components.Hint("esc", "done"),
			components.Hint("ctrl+c", "quit"),
		}
	}
	return []string{
		components.Hint("↑/↓", "move"),
		components.Hint("enter", "open"),
		components.Hint("tab", "edit"),
		components.Hint("x", "hide"),
		components.Hint("esc", "unfocus"),
		components.Hint("r", "refresh"),
		components.Hint("y", "copy"),
		components.Hint("q", "quit"),
	}
}

// --- Commands ---

func (a App) loadTreeCmd() tea.Cmd {
	trees := a.trees
	return func() tea.Msg {
		root, err := trees.GetTree()
		return treeLoadedMsg{root: root, err: err}
	}
}

func (a App) refreshTreeCmd() tea.Cmd {
	trees := a.trees
	return func() tea.Msg {
		res, err := trees.RefreshTree()
		return refreshDoneMsg{res: res, err: err}
	}
}

func (a App) loadNotesCmd() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		return notesLoadedMsg{err: session.EnsureLoaded()}
	}
}

func activateCmd(session *notes.Session, node api.TreeNode) tea.Cmd {
	return func() tea.Msg {
		ok, err := session.Activate(node)
		if errors.Is(err, notes.ErrInvalidNode) {
			err = fmt.Errorf("%s: %w", node.Title, err)
		}
		return activatedMsg{uri: node.URI, ok: ok, err: err}
	}
}

// --- Toasts ---

const toastTTL = 2500 * time.Millisecond

func (a *App) setToast(level, text string) tea.Cmd {
	a.toastSeq++
	seq := a.toastSeq
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	switch a.toast.level {
	case "success":
		return SuccessStyle.Render("✓ " + a.toast.text)
	case "warning":
		return WarningStyle.Render("! " + a.toast.text)
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return MutedStyle.Render(a.toast.text)
}
