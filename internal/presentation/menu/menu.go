// Package menu is the interactive text front end: a role menu leading to the
// owner and shopping menus. It reads commands line by line and writes plain
// text, so any io.Reader/io.Writer pair can drive it.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Zhima-Mochi/minishop-market/internal/application"
	appjournal "github.com/Zhima-Mochi/minishop-market/internal/application/journal"
	"github.com/Zhima-Mochi/minishop-market/internal/application/owner"
	"github.com/Zhima-Mochi/minishop-market/internal/application/shopping"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/journal"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/Zhima-Mochi/minishop-market/internal/observability/logctx"
)

const (
	rule         = "===================================="
	journalLimit = 20
)

// errQuit ends the session when input runs out.
var errQuit = errors.New("menu: input closed")

type OwnerUseCases struct {
	Buy      application.UseCase[owner.BuyFromWholesalerInput, *owner.BuyFromWholesalerResult]
	Margin   application.UseCase[owner.SetProfitMarginInput, *owner.SetProfitMarginResult]
	Products application.UseCase[owner.ListProductsInput, *owner.ListProductsResult]
	Journal  application.UseCase[appjournal.ListEntriesInput, []journal.Entry]
}

type ShoppingUseCases struct {
	Start    application.UseCase[shopping.StartSessionInput, *shopping.SessionResult]
	Session  application.UseCase[shopping.GetSessionInput, *shopping.SessionResult]
	Find     application.UseCase[shopping.FindProductInput, *catalog.Listing]
	Add      application.UseCase[shopping.AddToCartInput, *customer.Purchase]
	Checkout application.UseCase[shopping.CheckoutInput, *customer.Receipt]
	End      application.UseCase[shopping.EndSessionInput, *shopping.SessionResult]
}

type line struct {
	text string
	err  error
}

type Menu struct {
	in       io.Reader
	lines    chan line
	readOnce sync.Once
	out      io.Writer
	owner    OwnerUseCases
	shopping ShoppingUseCases
	log      observability.Logger
}

func New(in io.Reader, out io.Writer, ownerUC OwnerUseCases, shoppingUC ShoppingUseCases, log observability.Logger) *Menu {
	if log == nil {
		log = observability.NopLogger()
	}
	return &Menu{
		in:       in,
		lines:    make(chan line),
		out:      out,
		owner:    ownerUC,
		shopping: shoppingUC,
		log:      log.With(observability.F("component", "menu")),
	}
}

// Run drives the role menu until the user exits, input ends or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	ctx = logctx.With(ctx, m.log)
	m.readOnce.Do(func() { go m.readLines(ctx) })
	m.println("=== Welcome to the Market Simulation ===")

	for {
		if err := ctx.Err(); err != nil {
			return m.quit(err)
		}
		m.println("")
		m.println(rule)
		m.println("Select your role:")
		m.println("1. Market Owner")
		m.println("2. Customer")
		m.println("3. Exit")
		m.println(rule)

		role, err := m.prompt(ctx, "Choose: ")
		if err != nil {
			return m.quit(err)
		}

		switch role {
		case "1":
			err = m.ownerMenu(ctx)
		case "2":
			err = m.shoppingMenu(ctx)
		case "3":
			m.println("Exiting program...")
			return nil
		default:
			m.println("Invalid choice.")
		}
		if err != nil {
			return m.quit(err)
		}
	}
}

// quit turns end of input and cancellation into a normal exit.
func (m *Menu) quit(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		m.println("")
		m.println("Exiting program...")
		return nil
	}
	return err
}

// readLines feeds input lines to prompt. It blocks on the reader, so it
// may outlive Run when ctx is cancelled mid-prompt.
func (m *Menu) readLines(ctx context.Context) {
	defer close(m.lines)
	sc := bufio.NewScanner(m.in)
	for sc.Scan() {
		if !m.deliver(ctx, line{text: sc.Text()}) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		m.deliver(ctx, line{err: fmt.Errorf("menu: read input: %w", err)})
	}
}

func (m *Menu) deliver(ctx context.Context, l line) bool {
	select {
	case m.lines <- l:
		return true
	case <-ctx.Done():
		return false
	}
}

func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-m.lines:
		if !ok {
			return "", errQuit
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
