package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrMissingOrderName = errors.New("missing order name")
	ErrMissingItem      = errors.New("missing item")
)

// OrderNameError is returned for order names containing spaces. Suggestion is the name with the
// spaces replaced by dashes.
type OrderNameError struct {
	Suggestion string
}

func (e *OrderNameError) Error() string {
	return fmt.Sprintf("order names must not contain spaces, try %s", e.Suggestion)
}

// ParseCommand splits the first word of a message into the lowercased command and the lowercased
// name of the bot it is addressed to, which is empty for a bare command like /view.
func ParseCommand(text string) (string, string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}

	command, mention, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	return command, mention
}

// ParseCommandArgs returns everything after the command, with runs of whitespace collapsed.
func ParseCommandArgs(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}

	return strings.Join(fields[1:], " ")
}

// ParseOrderName validates the argument of /start. Order names are single, lowercased words.
func ParseOrderName(args string) (string, error) {
	fields := strings.Fields(strings.ToLower(args))

	switch len(fields) {
	case 0:
		return "", ErrMissingOrderName
	case 1:
		return fields[0], nil
	default:
		return "", &OrderNameError{Suggestion: strings.Join(fields, "-")}
	}
}

// ParseOptionalOrderName returns the lowercased first argument, or an empty string if there is none.
func ParseOptionalOrderName(args string) string {
	fields := strings.Fields(strings.ToLower(args))
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// SplitOrderArgs separates the arguments of /order into an order name and an item. The first word is
// taken as the order name only if an order of that name exists in the chat; otherwise the whole
// argument is the item.
func SplitOrderArgs(args string, orderNames []string) (string, string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", "", ErrMissingItem
	}

	name := strings.ToLower(fields[0])
	if !slices.Contains(orderNames, name) {
		return "", strings.Join(fields, " "), nil
	}

	if len(fields) == 1 {
		return name, "", ErrMissingItem
	}

	return name, strings.Join(fields[1:], " "), nil
}
