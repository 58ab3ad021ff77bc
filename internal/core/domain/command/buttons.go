package command

import (
	"foodbot/internal/core/domain"
	"foodbot/internal/core/domain/order"
	"strings"
)

// Telegram rejects callback data longer than this many bytes.
const buttonDataLimit = 64

const buttonDataSeparator = ":"

// orderButtons offers one button per distinct item of every active order, so others can order the
// same with a tap. Buttons are labelled with the order name when several orders are active.
func orderButtons(snaps []order.Snapshot) []domain.Button {
	active := make([]order.Snapshot, 0, len(snaps))
	for _, snap := range snaps {
		if snap.Status == order.Active {
			active = append(active, snap)
		}
	}

	var buttons []domain.Button
	for _, snap := range active {
		if strings.Contains(snap.Name, buttonDataSeparator) {
			continue
		}

		for _, g := range groupItems(snap.Items) {
			data := snap.Name + buttonDataSeparator + g.item
			if len(data) > buttonDataLimit {
				continue
			}

			text := g.item
			if len(active) > 1 {
				text = snap.Name + ": " + g.item
			}

			buttons = append(buttons, domain.Button{Text: text, Data: data})
		}
	}

	return buttons
}

// ParseButtonData splits the data of an order button into the order name and the item.
func ParseButtonData(data string) (string, string, bool) {
	name, item, ok := strings.Cut(data, buttonDataSeparator)
	if !ok || name == "" || item == "" {
		return "", "", false
	}

	return name, item, true
}
