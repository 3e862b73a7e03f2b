// Package cli is the interactive demo surface of the tracker: a menu
// loop that drives the loyalty engine from stdin.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"

	"github.com/talx-hub/fideliza/internal/model/customer"
	"github.com/talx-hub/fideliza/internal/model/reward"
	"github.com/talx-hub/fideliza/internal/model/transaction"
	"github.com/talx-hub/fideliza/internal/serviceerrs"
)

type LoyaltyEngine interface {
	RegisterCustomer(ctx context.Context, name, email string) (customer.Customer, error)
	RegisterPurchase(ctx context.Context, customerID string, amount int64,
		affiliatedCard bool, description string) (customer.Customer, int64, error)
	Redeem(ctx context.Context, customerID, rewardID string,
	) (customer.Customer, reward.Reward, error)
	ViewCustomer(ctx context.Context, ref string) (customer.Customer, error)
	ListRewards(ctx context.Context) ([]reward.Reward, error)
	History(ctx context.Context, customerID string) ([]transaction.Transaction, error)
}

type CLI struct {
	engine LoyaltyEngine
	in     *bufio.Reader
	out    io.Writer
}

func New(engine LoyaltyEngine, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		engine: engine,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

const menu = `
==================== FIDELIZA ====================
1) Register customer
2) Register purchase
3) Redeem reward
4) View customer
5) View customer history
6) List rewards
0) Quit
==================================================
Choose an option: `

func (c *CLI) Run(ctx context.Context) error {
	for {
		fmt.Fprint(c.out, menu)
		option, err := c.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out, "Bye!")
				return nil
			}
			return fmt.Errorf("failed to read menu option: %w", err)
		}

		if option == "0" {
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}
		if err := c.dispatch(ctx, option); err != nil {
			fmt.Fprintf(c.out, "[Error] %v\n", err)
		}
	}
}

func (c *CLI) dispatch(ctx context.Context, option string) error {
	switch option {
	case "1":
		return c.registerCustomer(ctx)
	case "2":
		return c.registerPurchase(ctx)
	case "3":
		return c.redeem(ctx)
	case "4":
		return c.viewCustomer(ctx)
	case "5":
		return c.history(ctx)
	case "6":
		return c.listRewards(ctx)
	default:
		return errors.New("unknown option")
	}
}

func (c *CLI) registerCustomer(ctx context.Context) error {
	name, err := c.prompt("Name: ")
	if err != nil {
		return err
	}
	email, err := c.prompt("Email: ")
	if err != nil {
		return err
	}

	created, err := c.engine.RegisterCustomer(ctx, name, email)
	if err != nil {
		return err //nolint: wrapcheck // domain error shown as is
	}
	c.printCustomer(&created)
	return nil
}

func (c *CLI) registerPurchase(ctx context.Context) error {
	id, err := c.prompt("Customer ID: ")
	if err != nil {
		return err
	}
	amountRaw, err := c.prompt("Amount: ")
	if err != nil {
		return err
	}
	amount, err := strconv.ParseInt(amountRaw, 10, 64)
	if err != nil {
		return serviceerrs.ErrInvalidAmount
	}
	cardRaw, err := c.prompt("Affiliated card number (empty for none): ")
	if err != nil {
		return err
	}
	affiliated, err := ParseCardNumber(cardRaw)
	if err != nil {
		return err
	}
	description, err := c.prompt("Description (optional): ")
	if err != nil {
		return err
	}

	updated, points, err := c.engine.RegisterPurchase(ctx, id, amount, affiliated, description)
	if err != nil {
		return err //nolint: wrapcheck // domain error shown as is
	}
	fmt.Fprintf(c.out, "\nPurchase registered. Points earned: %d\n", points)
	c.printCustomer(&updated)
	return nil
}

func (c *CLI) redeem(ctx context.Context) error {
	id, err := c.prompt("Customer ID: ")
	if err != nil {
		return err
	}
	if err := c.listRewards(ctx); err != nil {
		return err
	}
	rewardID, err := c.prompt("Reward ID: ")
	if err != nil {
		return err
	}

	updated, rw, err := c.engine.Redeem(ctx, id, rewardID)
	if err != nil {
		return err //nolint: wrapcheck // domain error shown as is
	}
	fmt.Fprintf(c.out, "\nRedeemed: %s (%d pts)\n", rw.Name, rw.PointCost)
	c.printCustomer(&updated)
	return nil
}

func (c *CLI) viewCustomer(ctx context.Context) error {
	ref, err := c.prompt("Customer ID or email: ")
	if err != nil {
		return err
	}
	found, err := c.engine.ViewCustomer(ctx, ref)
	if err != nil {
		return err //nolint: wrapcheck // domain error shown as is
	}
	c.printCustomer(&found)
	return nil
}

func (c *CLI) history(ctx context.Context) error {
	id, err := c.prompt("Customer ID: ")
	if err != nil {
		return err
	}
	history, err := c.engine.History(ctx, id)
	if err != nil {
		return err //nolint: wrapcheck // domain error shown as is
	}

	fmt.Fprintln(c.out, "\nHistory:")
	if len(history) == 0 {
		fmt.Fprintln(c.out, "  (no transactions)")
		return nil
	}
	for _, t := range history {
		card := "no"
		if t.AffiliatedCard {
			card = "yes"
		}
		fmt.Fprintf(c.out, "  %s | amount=$%d | card=%s | +%d | -%d | %s\n",
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			t.Amount, card, t.PointsEarned, t.PointsRedeemed, t.Description)
	}
	return nil
}

func (c *CLI) listRewards(ctx context.Context) error {
	rewards, err := c.engine.ListRewards(ctx)
	if err != nil {
		return err //nolint: wrapcheck // domain error shown as is
	}

	fmt.Fprintln(c.out, "\nRewards:")
	for _, rw := range rewards {
		fmt.Fprintf(c.out, "  %s) %s - %d pts [%s]\n",
			rw.ID, rw.Name, rw.PointCost, rw.Description)
	}
	return nil
}

func (c *CLI) printCustomer(cust *customer.Customer) {
	fmt.Fprintf(c.out, "\n[Customer %s] %s\n", cust.ID, cust.Name)
	fmt.Fprintf(c.out, "  Email:  %s\n", cust.Email)
	fmt.Fprintf(c.out, "  Tier:   %s (x%.4g earn rate)\n", cust.Tier, cust.Multiplier())
	fmt.Fprintf(c.out, "  Points: %d\n", cust.Points)
	fmt.Fprintln(c.out, "  Benefits:")
	for _, b := range cust.Benefits() {
		fmt.Fprintf(c.out, "   - %s\n", b)
	}
}

func (c *CLI) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

func (c *CLI) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err //nolint: wrapcheck // callers wrap with their own context
	}
	return strings.TrimSpace(line), nil
}

// ParseCardNumber reports whether a purchase was paid with an
// affiliated card. Empty input means no card; anything else must pass
// the Luhn check.
func ParseCardNumber(raw string) (bool, error) {
	number := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if number == "" {
		return false, nil
	}
	if err := goluhn.Validate(number); err != nil {
		return false, serviceerrs.ErrInvalidCardNumber
	}
	return true, nil
}
