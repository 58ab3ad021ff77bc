package order

// Store holds every order of a single chat, in the order they were started. Ended orders are kept so
// they can still be viewed.
//
// A Store is not safe for concurrent use; the chat registry serializes access per chat.
type Store struct {
	orders map[string]*Order
	names  []string
}

func NewStore() *Store {
	return &Store{orders: make(map[string]*Order)}
}

// StartOrder creates a new active order. Names are unique per chat, including ended orders.
func (s *Store) StartOrder(name string, creator Participant) (*Order, error) {
	if _, ok := s.orders[name]; ok {
		return nil, ErrAlreadyExists
	}

	o := New(name, creator)
	s.orders[name] = o
	s.names = append(s.names, name)

	return o, nil
}

func (s *Store) Find(name string) (*Order, bool) {
	o, ok := s.orders[name]
	return o, ok
}

func (s *Store) ActiveOrders() []*Order {
	var active []*Order
	for _, name := range s.names {
		if o := s.orders[name]; o.IsActive() {
			active = append(active, o)
		}
	}

	return active
}

func (s *Store) ListOrders() []Summary {
	summaries := make([]Summary, 0, len(s.names))
	for _, name := range s.names {
		summaries = append(summaries, s.orders[name].Summary())
	}

	return summaries
}

func (s *Store) Snapshots() []Snapshot {
	snapshots := make([]Snapshot, 0, len(s.names))
	for _, name := range s.names {
		snapshots = append(snapshots, s.orders[name].Snapshot())
	}

	return snapshots
}

// Names returns every order name in the chat, active or ended.
func (s *Store) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)

	return names
}
