package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/store"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// App wires the store to a terminal. One App owns one store; the REPL and
// the bridge started by serve share it.
type App struct {
	config *config.Config
	logger logging.Logger
	store  *store.Store
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds an App reading the users API configured in c.
func NewApp(c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) *App {
	dir := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)
	return newApp(c, logger, dir, in, out)
}

func newApp(c *config.Config, logger logging.Logger, dir client.Directory, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger.With("module", "cli"),
		store:  store.New(dir, store.WithLogger(logger)),
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.watchLoading()
	return a
}

// Store returns the store behind the App.
func (a *App) Store() *store.Store {
	return a.store
}

// watchLoading logs every change of the loading flag.
func (a *App) watchLoading() {
	var (
		mu      sync.Mutex
		loading bool
	)
	a.store.Subscribe(func(st store.State) {
		mu.Lock()
		changed := st.Loading != loading
		loading = st.Loading
		mu.Unlock()
		if !changed {
			return
		}

		ctx := context.Background()
		switch {
		case st.Loading:
			a.logger.Debug(ctx, "loading users")
		case st.HasError():
			a.logger.Warn(ctx, "loading failed", "error", st.Error, "users", len(st.Users))
		default:
			a.logger.Debug(ctx, "loading finished", "users", len(st.Users))
		}
	})
}

func (a *App) getStatus() string {
	st := a.store.State()
	s := plural(len(st.Users), "user", "users")
	switch {
	case st.Loading:
		s += ", loading"
	case st.HasError():
		s += ", error"
	}
	return fmt.Sprintf("(%s)", s)
}

func interactive(in any) bool {
	f, ok := in.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}

// Run loads the collection and starts the REPL on the App's input. It
// returns when the input ends or the user quits.
func (a *App) Run(ctx context.Context) {
	if interactive(a.in) {
		fmt.Fprintln(a.out, "Welcome to userdir (type 'help' for commands)")
	}

	a.store.FetchAll(ctx, false)
	if st := a.store.State(); st.HasError() {
		renderError(a.out, st.Error)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
