package command

import (
	"errors"
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/domain/order"
	"sort"
	"strings"
)

const noActiveOrders = "There are no active orders. Start one by using /start <order name>"

// renderOrder lists an order's items grouped by item, most popular first.
func renderOrder(snap order.Snapshot) string {
	header := fmt.Sprintf("Orders for %s:", snap.Name)
	if snap.Status == order.Ended {
		header = fmt.Sprintf("Orders for %s (ended):", snap.Name)
	}

	if len(snap.Items) == 0 {
		return header + "\n\nNone"
	}

	groups := groupItems(snap.Items)

	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, fmt.Sprintf("%d %s: %s", len(g.names), g.item, strings.Join(g.names, ", ")))
	}

	return header + "\n\n" + strings.Join(lines, "\n")
}

type itemGroup struct {
	item  string
	names []string
}

// groupItems groups items regardless of case, most popular first. A group is shown with the spelling
// of whoever ordered it first.
func groupItems(items []order.Item) []itemGroup {
	index := make(map[string]int)
	var groups []itemGroup

	for _, it := range items {
		key := strings.ToLower(it.Item)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, itemGroup{item: it.Item})
		}
		groups[i].names = append(groups[i].names, it.Participant.Name)
	}

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].names) != len(groups[j].names) {
			return len(groups[i].names) > len(groups[j].names)
		}
		return strings.ToLower(groups[i].item) < strings.ToLower(groups[j].item)
	})

	for _, g := range groups {
		sort.Strings(g.names)
	}

	return groups
}

func renderView(res domain.OrderResult) string {
	if len(res.Orders) == 0 {
		return "There are no orders. Start one by using /start <order name>"
	}

	rendered := make([]string, len(res.Orders))
	for i, snap := range res.Orders {
		rendered[i] = renderOrder(snap)
	}

	var header string
	if len(res.Orders) > 1 {
		active := 0
		for _, s := range res.Summaries {
			if s.Status == order.Active {
				active++
			}
		}
		header = fmt.Sprintf("There are %d orders, %d active.\n\n", len(res.Orders), active)
	}

	return header + strings.Join(rendered, "\n\n")
}

// describeError turns an expected failure into a reply. It reports false for errors users cannot act
// on. example is the command usage shown when the user has to name an order, e.g. "/cancel".
func describeError(err error, orderName string, example string) (string, bool) {
	var ambiguous *order.AmbiguousOrderError
	var nameErr *OrderNameError

	switch {
	case errors.As(err, &ambiguous):
		return fmt.Sprintf("There are multiple active orders: %s. Specify the name of the order. For example, %s",
			strings.Join(ambiguous.Candidates, ", "),
			strings.Replace(example, "<order name>", ambiguous.Candidates[0], 1)), true
	case errors.As(err, &nameErr):
		return fmt.Sprintf("Order names must not contain spaces. Try /start %s", nameErr.Suggestion), true
	case errors.Is(err, ErrMissingOrderName):
		return "Specify the name of the order. For example, /start waffles", true
	case errors.Is(err, ErrMissingItem):
		return "Specify the item you wish to order. For example, /order chocolate", true
	case errors.Is(err, order.ErrAlreadyExists):
		return fmt.Sprintf("There is already an order for %s. Use /order %s <item> to add an item to it.",
			orderName, orderName), true
	case errors.Is(err, order.ErrOrderNotFound):
		return fmt.Sprintf("Order %s not found.", orderName), true
	case errors.Is(err, order.ErrNoActiveOrder):
		return noActiveOrders, true
	case errors.Is(err, order.ErrOrderClosed), errors.Is(err, order.ErrAlreadyClosed):
		return fmt.Sprintf("Order %s has already ended.", orderName), true
	case errors.Is(err, order.ErrItemNotFound):
		return fmt.Sprintf("You have not ordered anything from %s. Use /order <item> to do so.", orderName), true
	default:
		return "", false
	}
}
