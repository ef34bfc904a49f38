package menu_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Zhima-Mochi/minishop-market/internal/application/shopping"
	"github.com/Zhima-Mochi/minishop-market/internal/bootstrap"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/config"
	"github.com/Zhima-Mochi/minishop-market/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-market/internal/presentation/menu"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newApp(t *testing.T) (context.Context, *bootstrap.App) {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	app := bootstrap.New(cfg, nil)
	app.Start(ctx)
	t.Cleanup(func() {
		app.Close(ctx)
		cancel()
	})
	return ctx, app
}

func run(t *testing.T, lines ...string) string {
	t.Helper()
	ctx, app := newApp(t)

	var out bytes.Buffer
	m := menu.New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, app.Owner, app.Shopping, nil)
	require.NoError(t, m.Run(ctx))
	return out.String()
}

// syncBuffer lets the test read output while Run is still writing it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type failingEnd struct{}

func (failingEnd) Execute(context.Context, shopping.EndSessionInput) (*shopping.SessionResult, error) {
	return nil, errors.New("session store unavailable")
}

func TestMenuOwnerFlow(t *testing.T) {
	out := run(t,
		"1",
		"3",
		"1", "apple", "1.00", "100",
		"1", "pear", "abc",
		"2", "0.5",
		"2", "lots",
		"3",
		"5",
		"4",
		"3",
	)

	require.Contains(t, out, "No products available.")
	require.Contains(t, out, "Bought 100 of apple for 100.00 $.")
	require.Contains(t, out, "New Market Balance: 4900.00 $")
	require.Contains(t, out, "Invalid input.")
	require.Contains(t, out, "Profit margin updated to 50%.")
	require.Contains(t, out, "apple: 100 units | Sell price: 1.50 $")
	require.Contains(t, out, "restock  apple x100 cost 100.00 $ | balance 4900.00 $")
	require.Contains(t, out, "margin   50% (1 repriced)")
	require.True(t, strings.HasSuffix(out, "Exiting program...\n"))
}

func TestMenuShoppingFlow(t *testing.T) {
	out := run(t,
		"1",
		"1", "apple", "1.00", "100",
		"1", "pear", "0.50", "5",
		"1", "plum", "2.00", "0",
		"4",
		"2",
		"2", "kiwi",
		"2", "plum",
		"2", "apple", "abc",
		"2", "apple", "0",
		"2", "apple", "1000",
		"2", "pear", "6",
		"2", "apple", "10",
		"3",
		"3",
	)

	require.Contains(t, out, "Customer Balance: 1000.00 $")
	require.Contains(t, out, "Product not found.")
	require.Contains(t, out, "Out of stock.")
	require.Contains(t, out, "Invalid input.")
	require.Contains(t, out, "Credit limit reached! Not enough balance.")
	require.Contains(t, out, "Only 5 units available.")
	require.Contains(t, out, "Added 10 x apple for 12.00 $.")
	require.Contains(t, out, "Your Balance: 988.00 $ | Market Balance: 4909.50 $")
	require.Contains(t, out, "- apple x10 = 12.00 $")
	require.Contains(t, out, "Total spent: 12.00 $")
	require.Contains(t, out, "Remaining balance: 988.00 $")
	require.Contains(t, out, "Payment completed. Thank you for shopping!")
}

func TestMenuCheckoutEmptyCart(t *testing.T) {
	out := run(t, "2", "3", "3")
	require.Contains(t, out, "Cart is empty.")
}

func TestMenuInvalidChoiceAndEOF(t *testing.T) {
	out := run(t, "9", "2", "7")
	require.Contains(t, out, "Invalid choice.")
	require.True(t, strings.HasSuffix(out, "Exiting program...\n"))
}

func TestMenuMarginRoundsHalfToEven(t *testing.T) {
	out := run(t, "1", "2", "0.125", "2", "0.135", "4", "3")
	require.Contains(t, out, "Profit margin updated to 12%.")
	require.Contains(t, out, "Profit margin updated to 14%.")
}

func TestMenuStopsWhenContextIsCancelled(t *testing.T) {
	for _, tc := range []struct {
		name   string
		input  string
		screen string
	}{
		{"RoleMenu", "", "Select your role:"},
		{"OwnerMenu", "1\n", "=== Market Owner Menu ==="},
		{"ShoppingMenu", "2\n", "=== Shopping Menu ==="},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, app := newApp(t)
			pr, pw := io.Pipe()
			t.Cleanup(func() { _ = pw.Close() })

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			out := &syncBuffer{}
			m := menu.New(pr, out, app.Owner, app.Shopping, nil)
			done := make(chan error, 1)
			go func() { done <- m.Run(ctx) }()

			if tc.input != "" {
				_, err := pw.Write([]byte(tc.input))
				require.NoError(t, err)
			}
			require.Eventually(t, func() bool {
				return strings.Contains(out.String(), tc.screen)
			}, 2*time.Second, 5*time.Millisecond)

			cancel()
			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(2 * time.Second):
				t.Fatal("menu kept waiting for input after cancellation")
			}
			require.True(t, strings.HasSuffix(out.String(), "Exiting program...\n"))
			require.Zero(t, app.Customers.Len())
		})
	}
}

func TestMenuLogsFailedSessionEnd(t *testing.T) {
	ctx, app := newApp(t)
	core, logs := observer.New(zap.ErrorLevel)

	uc := app.Shopping
	uc.End = failingEnd{}
	m := menu.New(strings.NewReader("2\n4\n3\n"), &bytes.Buffer{}, app.Owner, uc, zaplogger.New(zap.New(core)))
	require.NoError(t, m.Run(ctx))

	entries := logs.FilterMessage("menu_end_session_failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, "session store unavailable", entries[0].ContextMap()["error"])
}
