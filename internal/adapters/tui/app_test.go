package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todopanel/internal/adapters/tui/views"
	"todopanel/internal/application"
	"todopanel/internal/domain"
)

type stubCache struct {
	items []domain.Item
}

func (s *stubCache) Fetch(context.Context) ([]domain.Item, error) { return s.items, nil }
func (s *stubCache) Save(_ context.Context, items []domain.Item) error {
	s.items = append([]domain.Item(nil), items...)
	return nil
}

func newTestApp(t *testing.T, cached []domain.Item) (*App, *application.Controller) {
	t.Helper()
	ctrl := application.NewController(domain.NewStore(), &stubCache{items: cached}, nil, nil)
	app := NewApp(ctrl, nil, "")
	t.Cleanup(app.Close)
	return app, ctrl
}

// runBatch executes every command in a batch and returns the messages.
func runBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		if c != nil {
			msgs = append(msgs, c())
		}
	}
	return msgs
}

func TestInitialLoadAppliedInUpdate(t *testing.T) {
	cached := []domain.Item{{ID: "c1", Text: "from cache", Source: domain.SourceManual}}
	app, ctrl := newTestApp(t, cached)

	msgs := runBatch(t, app.Init())

	// The command only loads; the store is untouched until Update
	// applies the message on the program loop.
	if ctrl.Store().Len() != 0 {
		t.Fatal("the load command must not mutate the store")
	}
	for _, msg := range msgs {
		app.Update(msg)
	}
	items := ctrl.Store().Items()
	if len(items) != 1 || items[0].ID != "c1" {
		t.Errorf("items = %+v, want the loaded snapshot applied in Update", items)
	}
}

func TestRefreshAppliedInUpdate(t *testing.T) {
	app, ctrl := newTestApp(t, nil)
	for _, msg := range runBatch(t, app.Init()) {
		app.Update(msg)
	}
	ctrl.Store().Add("stays until the snapshot lands")

	_, cmd := app.Update(views.RefreshRequestedMsg{})
	if ctrl.RefreshState() != application.Refreshing {
		t.Fatalf("state = %v, want refreshing while the load runs", ctrl.RefreshState())
	}

	msg := cmd()
	if ctrl.Store().Len() != 1 {
		t.Fatal("the refresh command must not mutate the store")
	}

	app.Update(msg)
	if ctrl.Store().Len() != 0 {
		t.Error("Update must replace the snapshot wholesale")
	}
	if ctrl.RefreshState() != application.RefreshCompleted {
		t.Errorf("state = %v, want completed", ctrl.RefreshState())
	}
}

func TestLoadResultDiscardedAfterClose(t *testing.T) {
	cached := []domain.Item{{ID: "c1", Text: "from cache", Source: domain.SourceManual}}
	app, ctrl := newTestApp(t, cached)

	msgs := runBatch(t, app.Init())
	app.Close()
	for _, msg := range msgs {
		app.Update(msg)
	}

	if ctrl.Store().Len() != 0 {
		t.Error("a load resolving after teardown must not mutate the store")
	}
}

func TestRefreshResultDiscardedAfterClose(t *testing.T) {
	app, ctrl := newTestApp(t, nil)
	for _, msg := range runBatch(t, app.Init()) {
		app.Update(msg)
	}
	ctrl.Store().Add("survives teardown race")

	_, cmd := app.Update(views.RefreshRequestedMsg{})
	msg := cmd()
	app.Close()
	app.Update(msg)

	if ctrl.Store().Len() != 1 {
		t.Error("a refresh resolving after teardown must not mutate the store")
	}
	if ctrl.RefreshState() != application.RefreshIdle {
		t.Errorf("state = %v, want idle after teardown", ctrl.RefreshState())
	}
}
