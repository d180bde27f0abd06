// Package screentest builds screen environments backed by an in-memory
// store for screen and app tests.
package screentest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/account"
	"github.com/abhisek/skillnav/internal/i18n"
	"github.com/abhisek/skillnav/internal/navigator"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/session"
	"github.com/abhisek/skillnav/internal/share"
	"github.com/abhisek/skillnav/internal/store"
)

// Env returns an environment whose controller has not been started.
// configure may fill in optional collaborators before the controller is
// built. A non-nil user is remembered as the signed-in session.
func Env(t *testing.T, user *session.User, configure func(*navigator.Deps)) *screen.Env {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	st, err := store.Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	catalog, err := i18n.Load(zap.NewNop())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	sessions := session.NewStore(st.KVRepo(), zap.NewNop())
	if user != nil {
		if err := sessions.Persist(context.Background(), user); err != nil {
			t.Fatalf("persist session: %v", err)
		}
	}

	local := share.NewStoreResolver(st.SharedPathwayRepo())
	deps := navigator.Deps{
		Translator: i18n.NewTranslator(catalog, i18n.NewLocale("en")),
		Sessions:   sessions,
		Accounts:   account.NewRegistry(st.AccountRepo(), zap.NewNop()),
		Resolver:   local,
		Publisher:  local,
		Feedback:   st.EventRepo(),
		ShareBase:  share.DefaultBase,
	}
	if configure != nil {
		configure(&deps)
	}
	return &screen.Env{Ctx: context.Background(), Ctrl: navigator.New(deps), ExportDir: t.TempDir()}
}

// Started returns Env with the controller already started.
func Started(t *testing.T, user *session.User, configure func(*navigator.Deps)) *screen.Env {
	t.Helper()
	env := Env(t, user, configure)
	env.Ctrl.Start(env.Ctx)
	return env
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a named key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type sends each rune of s to update.
func Type(update func(tea.Msg), s string) {
	for _, r := range s {
		update(Key(r))
	}
}

// Drain runs cmd and every command it batches, feeding each resulting
// message to deliver. Ticks and other long-running commands must not be
// passed in.
func Drain(cmd tea.Cmd, deliver func(tea.Msg)) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			Drain(c, deliver)
		}
		return
	}
	if msg != nil {
		deliver(msg)
	}
}
