package menu

import (
	"context"
	"fmt"

	appjournal "github.com/Zhima-Mochi/minishop-market/internal/application/journal"
	"github.com/Zhima-Mochi/minishop-market/internal/application/owner"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/input"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/journal"
	"github.com/shopspring/decimal"
)

func (m *Menu) ownerMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snapshot, err := m.owner.Products.Execute(ctx, owner.ListProductsInput{})
		if err != nil {
			return err
		}
		m.println("")
		m.println("=== Market Owner Menu ===")
		m.printf("Market Balance: %s $\n", money(snapshot.MarketBalance))
		m.println("-------------------------")
		m.println("1. Buy from wholesaler")
		m.println("2. Set profit margin")
		m.println("3. View products")
		m.println("4. Back to main menu")
		m.println("5. View transaction journal")

		choice, err := m.prompt(ctx, "Choose: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = m.buyFromWholesaler(ctx, snapshot.MarketBalance)
		case "2":
			err = m.setProfitMargin(ctx)
		case "3":
			err = m.showProducts(ctx)
		case "4":
			return nil
		case "5":
			err = m.showJournal(ctx)
		default:
			m.println("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) buyFromWholesaler(ctx context.Context, balance decimal.Decimal) error {
	m.println("")
	m.printf("Current Market Balance: %s $\n", money(balance))
	m.println("--- Buy from Wholesaler ---")

	rawName, err := m.prompt(ctx, "Enter product name: ")
	if err != nil {
		return err
	}
	rawPrice, err := m.prompt(ctx, "Enter wholesale price: ")
	if err != nil {
		return err
	}
	price, priceErr := input.Amount(rawPrice)
	if priceErr != nil {
		m.println(msgInvalidInput)
		return nil
	}
	rawQty, err := m.prompt(ctx, "Enter quantity to buy: ")
	if err != nil {
		return err
	}
	qty, qtyErr := input.Quantity(rawQty)
	name, nameErr := input.ProductName(rawName)
	if qtyErr != nil || nameErr != nil {
		m.println(msgInvalidInput)
		return nil
	}

	res, err := m.owner.Buy.Execute(ctx, owner.BuyFromWholesalerInput{
		ProductName:    name,
		WholesalePrice: price,
		Quantity:       qty,
	})
	if err != nil {
		m.report(ctx, err, 0)
		return nil
	}
	m.printf("Bought %d of %s for %s $.\n", res.Quantity, res.ProductName, money(res.Cost))
	m.printf("New Market Balance: %s $\n", money(res.MarketBalance))
	return nil
}

func (m *Menu) setProfitMargin(ctx context.Context) error {
	raw, err := m.prompt(ctx, "Enter new profit margin (e.g. 0.25 for 25%): ")
	if err != nil {
		return err
	}
	margin, inErr := input.Margin(raw)
	if inErr != nil {
		m.println(msgInvalidInput)
		return nil
	}

	res, err := m.owner.Margin.Execute(ctx, owner.SetProfitMarginInput{Margin: margin})
	if err != nil {
		m.report(ctx, err, 0)
		return nil
	}
	m.printf("Profit margin updated to %s%%.\n", percent(res.Margin))
	return nil
}

func (m *Menu) showProducts(ctx context.Context) error {
	snapshot, err := m.owner.Products.Execute(ctx, owner.ListProductsInput{})
	if err != nil {
		return err
	}
	m.println("")
	m.println("--- Market Products ---")
	if snapshot.Empty() {
		m.println(msgNoProducts)
		return nil
	}
	for p := range snapshot.Products {
		m.printf("%s: %d units | Sell price: %s $\n", p.Name, p.Stock, money(p.SellPrice))
	}
	return nil
}

func (m *Menu) showJournal(ctx context.Context) error {
	entries, err := m.owner.Journal.Execute(ctx, appjournal.ListEntriesInput{Limit: journalLimit})
	if err != nil {
		m.report(ctx, err, 0)
		return nil
	}
	m.println("")
	m.println("--- Transaction Journal ---")
	if len(entries) == 0 {
		m.println("No transactions recorded.")
		return nil
	}
	for _, e := range entries {
		m.println(journalLine(e))
	}
	return nil
}

func journalLine(e journal.Entry) string {
	at := e.OccurredAt.Local().Format("15:04:05")
	switch e.Kind {
	case journal.KindRestock:
		return fmt.Sprintf("%s restock  %s x%d cost %s $ | balance %s $",
			at, e.ProductName, e.Quantity, money(e.Amount), money(e.MarketBalance))
	case journal.KindMarginChange:
		return fmt.Sprintf("%s margin   %s%% (%d repriced)", at, percent(e.Margin), e.Quantity)
	case journal.KindSale:
		return fmt.Sprintf("%s sale     %s x%d for %s $ | balance %s $",
			at, e.ProductName, e.Quantity, money(e.Amount), money(e.MarketBalance))
	case journal.KindCheckout:
		return fmt.Sprintf("%s checkout %d line(s) total %s $", at, e.Quantity, money(e.Amount))
	default:
		return fmt.Sprintf("%s %s", at, e.Kind)
	}
}

// percent renders a margin as a whole percentage, rounding half to even.
func percent(margin decimal.Decimal) string {
	return margin.Shift(2).RoundBank(0).StringFixed(0)
}
