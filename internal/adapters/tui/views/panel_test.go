package views

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todopanel/internal/application"
	"todopanel/internal/domain"
)

type stubCache struct{}

func (stubCache) Fetch(context.Context) ([]domain.Item, error) { return nil, nil }
func (stubCache) Save(context.Context, []domain.Item) error    { return nil }

func newTestPanel(t *testing.T) (*PanelModel, *application.Controller) {
	t.Helper()
	ctrl := application.NewController(domain.NewStore(), stubCache{}, nil, nil)
	ctrl.Initialize(context.Background())
	t.Cleanup(ctrl.Close)
	return NewPanelModel(ctrl), ctrl
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(m *PanelModel, text string) {
	for _, r := range text {
		m.Update(keyRune(r))
	}
}

func notebookTodo(id, text string) domain.Item {
	cell, line := 0, 2
	return domain.Item{
		ID:         id,
		Text:       text,
		Source:     domain.SourceNotebook,
		OriginPath: "nb.ipynb",
		OriginCell: &cell,
		OriginLine: &line,
	}
}

func TestAddFlow(t *testing.T) {
	m, ctrl := newTestPanel(t)

	m.Update(keyRune('a'))
	if m.target != inputAdd {
		t.Fatal("'a' must open the add input")
	}
	typeText(m, "buy milk")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	items := ctrl.Store().Items()
	if len(items) != 1 || items[0].Text != "buy milk" {
		t.Fatalf("items = %+v, want the added todo", items)
	}
	if m.target != inputNone {
		t.Error("submit must close the input")
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (new item on top)", m.cursor)
	}
}

func TestAddEmptyTextIsNoOp(t *testing.T) {
	m, ctrl := newTestPanel(t)

	m.Update(keyRune('a'))
	typeText(m, "   ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if ctrl.Store().Len() != 0 {
		t.Error("whitespace-only text must not create an item")
	}
}

func TestNavigationKeys(t *testing.T) {
	m, ctrl := newTestPanel(t)
	ctrl.Store().Add("third")
	ctrl.Store().Add("second")
	ctrl.Store().Add("first")

	m.Update(keyRune('j'))
	m.Update(keyRune('j'))
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m.Update(keyRune('j'))
	if m.cursor != 2 {
		t.Error("cursor must stop at the last item")
	}
	m.Update(keyRune('k'))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
}

func TestToggleKeyMovesItemToCompletedSegment(t *testing.T) {
	m, ctrl := newTestPanel(t)
	ctrl.Store().Add("second")
	ctrl.Store().Add("first")

	m.Update(keyRune('x'))

	items := ctrl.Store().Items()
	if items[0].Text != "second" || items[0].Done {
		t.Errorf("pending head = %+v, want the untouched item", items[0])
	}
	if items[1].Text != "first" || !items[1].Done {
		t.Errorf("completed segment = %+v, want the toggled item", items[1])
	}
}

func TestDeleteKey(t *testing.T) {
	m, ctrl := newTestPanel(t)
	ctrl.Store().Add("goes away")

	m.Update(keyRune('d'))

	if ctrl.Store().Len() != 0 {
		t.Error("'d' must delete the selected item")
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestEditFlow(t *testing.T) {
	m, ctrl := newTestPanel(t)
	ctrl.Store().Add("tpyo")

	m.Update(keyRune('e'))
	if m.target != inputEdit {
		t.Fatal("'e' on a pending item must open the edit input")
	}
	if m.input.Value() != "tpyo" {
		t.Errorf("input prefilled with %q, want the item text", m.input.Value())
	}
	m.input.SetValue("typo")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := ctrl.Store().Items()[0].Text; got != "typo" {
		t.Errorf("text = %q, want the committed edit", got)
	}
}

func TestEscCancelsEdit(t *testing.T) {
	m, ctrl := newTestPanel(t)
	ctrl.Store().Add("keep me")

	m.Update(keyRune('e'))
	m.input.SetValue("discarded")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if got := ctrl.Store().Items()[0].Text; got != "keep me" {
		t.Errorf("text = %q, esc must discard the edit", got)
	}
	if m.target != inputNone {
		t.Error("esc must close the input")
	}
}

func TestNotebookItemsAreReadOnly(t *testing.T) {
	m, ctrl := newTestPanel(t)
	ctrl.SetShowNotebook(true)
	ctrl.Store().Replace([]domain.Item{notebookTodo("notebook:nb.ipynb:0:2", "from scan")})

	m.Update(keyRune('x'))
	if ctrl.Store().Items()[0].Done {
		t.Error("toggle must not touch a notebook item")
	}
	if m.status == "" {
		t.Error("the panel must explain why nothing happened")
	}

	m.Update(keyRune('e'))
	if m.target != inputNone {
		t.Error("edit must not open for a notebook item")
	}

	m.Update(keyRune('d'))
	if ctrl.Store().Len() != 1 {
		t.Error("delete must not touch a notebook item")
	}
}

func TestNotebookVisibilityKey(t *testing.T) {
	m, ctrl := newTestPanel(t)

	m.Update(keyRune('n'))
	if !ctrl.ShowNotebook() {
		t.Error("'n' must surface notebook todos")
	}
	m.Update(keyRune('n'))
	if ctrl.ShowNotebook() {
		t.Error("'n' must hide them again")
	}
}

func TestRefreshKeyInertWhileNotebookHidden(t *testing.T) {
	m, ctrl := newTestPanel(t)

	_, cmd := m.Update(keyRune('r'))
	if cmd != nil {
		t.Fatal("'r' must be inert while notebook todos are hidden")
	}

	ctrl.SetShowNotebook(true)
	_, cmd = m.Update(keyRune('r'))
	if cmd == nil {
		t.Fatal("'r' must request a refresh once notebook todos are shown")
	}
	if _, ok := cmd().(RefreshRequestedMsg); !ok {
		t.Error("the refresh key must emit RefreshRequestedMsg")
	}
}

func TestOpenKeyEmitsLocator(t *testing.T) {
	m, ctrl := newTestPanel(t)
	ctrl.SetShowNotebook(true)
	ctrl.Store().Replace([]domain.Item{notebookTodo("notebook:nb.ipynb:0:2", "from scan")})

	_, cmd := m.Update(keyRune('o'))
	if cmd == nil {
		t.Fatal("'o' on a notebook item must emit a message")
	}
	msg, ok := cmd().(OpenLocatorMsg)
	if !ok {
		t.Fatalf("msg = %T, want OpenLocatorMsg", cmd())
	}
	if msg.Path != "nb.ipynb" || msg.Line != 2 {
		t.Errorf("locator = %+v, want nb.ipynb:2", msg)
	}
}

func TestViewRendersSegments(t *testing.T) {
	m, ctrl := newTestPanel(t)
	ctrl.Store().Add("done item")
	ctrl.Store().Add("pending item")
	ctrl.Store().Toggle(ctrl.Store().Items()[1].ID)

	view := m.View()
	pendingIdx := strings.Index(view, "pending item")
	doneIdx := strings.Index(view, "done item")
	if pendingIdx < 0 || doneIdx < 0 {
		t.Fatal("both items must render")
	}
	if pendingIdx > doneIdx {
		t.Error("pending items must render above completed ones")
	}
}
