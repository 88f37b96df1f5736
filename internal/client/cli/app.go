package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/purchase"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Deps are the collaborators of App.
type Deps struct {
	Auth      services.AuthService
	Catalog   services.CatalogService
	Account   services.AccountService
	History   services.HistoryService
	Sequencer *purchase.Sequencer
	Sharer    purchase.Sharer
	Log       logging.Logger

	// StrictPrices makes the purchase summary reject unparsable prices the
	// same way the sequencer does.
	StrictPrices bool

	In  io.Reader
	Out io.Writer
	Now func() time.Time
}

// App is the interactive storefront client.
type App struct {
	authService    services.AuthService
	catalogService services.CatalogService
	accountService services.AccountService
	historyService services.HistoryService
	sequencer      *purchase.Sequencer
	sharer         purchase.Sharer
	log            logging.Logger
	strictPrices   bool
	now            func() time.Time

	reader *bufio.Reader
	out    io.Writer

	loggedIn  bool
	userEmail string
	selection purchase.Selection
	current   *models.Vehicle
}

func NewApp(d Deps) *App {
	a := &App{
		authService:    d.Auth,
		catalogService: d.Catalog,
		accountService: d.Account,
		historyService: d.History,
		sequencer:      d.Sequencer,
		sharer:         d.Sharer,
		log:            d.Log,
		strictPrices:   d.StrictPrices,
		now:            d.Now,
		out:            d.Out,
	}
	in := d.In
	if in == nil {
		in = os.Stdin
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.log == nil {
		a.log = logging.Nop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	a.reader = bufio.NewReader(in)
	return a
}

// Run restores a persisted session, then serves commands until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to the storefront (type 'help' for commands)")

	loggedIn, err := a.authService.LoggedIn(ctx)
	if err != nil {
		a.log.Warn(ctx, "restoring session failed", "error", err)
	}
	if loggedIn {
		a.loggedIn = true
		if email, err := a.accountService.ResolveEmail(ctx); err == nil {
			a.userEmail = email
		}
		a.printf("Welcome back %s\n", a.userEmail)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) getStatus() string {
	parts := make([]string, 0, 3)
	if a.userEmail != "" {
		parts = append(parts, a.userEmail)
	} else if !a.loggedIn {
		parts = append(parts, "guest")
	}
	if n := a.selection.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if st := a.sequencer.State(); st != purchase.Idle {
		parts = append(parts, st.String())
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// resetShopping forgets the viewed vehicle and the selected services.
func (a *App) resetShopping() {
	a.selection.Clear()
	a.current = nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) ([]byte, error) {
	return getPassword(a.reader, prompt, a.out)
}
