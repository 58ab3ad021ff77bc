package order

type Status string

const (
	Active Status = "active"
	Ended  Status = "ended"
)

// Participant identifies a chat member. Identity is the ID; Name is only used for display.
type Participant struct {
	ID   int64
	Name string
}

// Item is a participant's claim within an order.
type Item struct {
	Participant Participant
	Item        string
}

// Snapshot is a read-only copy of an order for rendering.
type Snapshot struct {
	Name    string
	Creator Participant
	Status  Status
	Items   []Item
}

// Summary is the condensed view of an order used when listing a chat's orders.
type Summary struct {
	Name         string
	Status       Status
	Participants int
}

// Order is one named ordering session. Each participant holds at most one item, and items keep the
// position of the participant's first assignment.
type Order struct {
	name    string
	creator Participant
	status  Status

	items map[int64]*Item
	order []int64
}

func New(name string, creator Participant) *Order {
	return &Order{
		name:    name,
		creator: creator,
		status:  Active,
		items:   make(map[int64]*Item),
	}
}

func (o *Order) Name() string {
	return o.name
}

func (o *Order) Creator() Participant {
	return o.creator
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) IsActive() bool {
	return o.status == Active
}

// Len returns the number of participants holding an item.
func (o *Order) Len() int {
	return len(o.order)
}

// SetItem records the participant's item, replacing any previous one. It returns the replaced item,
// or an empty string if the participant had none.
func (o *Order) SetItem(participant Participant, item string) (string, error) {
	if !o.IsActive() {
		return "", ErrOrderClosed
	}

	existing, ok := o.items[participant.ID]
	if ok {
		previous := existing.Item
		existing.Item = item
		existing.Participant = participant
		return previous, nil
	}

	o.items[participant.ID] = &Item{Participant: participant, Item: item}
	o.order = append(o.order, participant.ID)

	return "", nil
}

// RemoveItem drops the participant's item and returns it.
func (o *Order) RemoveItem(participantID int64) (string, error) {
	if !o.IsActive() {
		return "", ErrOrderClosed
	}

	existing, ok := o.items[participantID]
	if !ok {
		return "", ErrItemNotFound
	}

	delete(o.items, participantID)
	for i, id := range o.order {
		if id == participantID {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}

	return existing.Item, nil
}

// Close ends the order. Ended is terminal.
func (o *Order) Close() error {
	if !o.IsActive() {
		return ErrAlreadyClosed
	}

	o.status = Ended

	return nil
}

func (o *Order) Snapshot() Snapshot {
	items := make([]Item, 0, len(o.order))
	for _, id := range o.order {
		items = append(items, *o.items[id])
	}

	return Snapshot{
		Name:    o.name,
		Creator: o.creator,
		Status:  o.status,
		Items:   items,
	}
}

func (o *Order) Summary() Summary {
	return Summary{
		Name:         o.name,
		Status:       o.status,
		Participants: len(o.order),
	}
}
