package menu

import (
	"context"

	"github.com/Zhima-Mochi/minishop-market/internal/application/shopping"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/input"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/Zhima-Mochi/minishop-market/internal/observability/logctx"
	"github.com/shopspring/decimal"
)

func (m *Menu) shoppingMenu(ctx context.Context) error {
	session, err := m.shopping.Start.Execute(ctx, shopping.StartSessionInput{})
	if err != nil {
		return err
	}
	id := session.CustomerID
	defer func() {
		// The cart does not outlive the visit.
		if _, err := m.shopping.End.Execute(context.WithoutCancel(ctx), shopping.EndSessionInput{CustomerID: id}); err != nil {
			logctx.FromOr(ctx, m.log).Error("menu_end_session_failed",
				observability.F("customer_id", id),
				observability.F("error", err),
			)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, err := m.shopping.Session.Execute(ctx, shopping.GetSessionInput{CustomerID: id})
		if err != nil {
			return err
		}
		m.println("")
		m.println("=== Shopping Menu ===")
		m.printf("Customer Balance: %s $\n", money(current.Balance))
		m.println("-------------------------")
		m.println("1. View products")
		m.println("2. Add to cart")
		m.println("3. Checkout")
		m.println("4. Exit")

		choice, err := m.prompt(ctx, "Choose: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = m.showProducts(ctx)
		case "2":
			err = m.addToCart(ctx, id)
		case "3":
			return m.checkout(ctx, id)
		case "4":
			return nil
		default:
			m.println("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) addToCart(ctx context.Context, customerID string) error {
	rawName, err := m.prompt(ctx, "Enter product name: ")
	if err != nil {
		return err
	}
	name, nameErr := input.ProductName(rawName)
	if nameErr != nil {
		m.println(msgProductNotFound)
		return nil
	}

	listing, err := m.shopping.Find.Execute(ctx, shopping.FindProductInput{ProductName: name})
	if err != nil {
		m.report(ctx, err, 0)
		return nil
	}

	rawQty, err := m.prompt(ctx, "Enter quantity: ")
	if err != nil {
		return err
	}
	qty, qtyErr := input.Quantity(rawQty)
	if qtyErr != nil {
		m.println(msgInvalidInput)
		return nil
	}

	p, err := m.shopping.Add.Execute(ctx, shopping.AddToCartInput{
		CustomerID:  customerID,
		ProductName: name,
		Quantity:    qty,
	})
	if err != nil {
		m.report(ctx, err, listing.Stock)
		return nil
	}
	m.printf("Added %d x %s for %s $.\n", p.Quantity, p.ProductName, money(p.Cost))
	m.printf("Your Balance: %s $ | Market Balance: %s $\n", money(p.CustomerBalance), money(p.MarketBalance))
	return nil
}

func (m *Menu) checkout(ctx context.Context, customerID string) error {
	m.println("")
	m.println("--- Checkout ---")
	r, err := m.shopping.Checkout.Execute(ctx, shopping.CheckoutInput{CustomerID: customerID})
	if err != nil {
		return err
	}
	if r.Empty {
		m.println(msgEmptyCart)
		return nil
	}

	m.println("Items in cart:")
	for _, line := range r.Lines {
		m.printf("- %s x%d = %s $\n", line.ProductName, line.Quantity, money(line.Cost))
	}
	m.println("")
	m.printf("Total spent: %s $\n", money(r.Total))
	m.printf("Remaining balance: %s $\n", money(r.RemainingBalance))
	m.println("Payment completed. Thank you for shopping!")
	return nil
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
