package mode

// Holder is anything whose mode can be switched, normally a view.
type Holder interface {
	Mode() string
	SetMode(name string)
}

// ChangeCallback is called after a holder's mode changes.
type ChangeCallback func(from, to string)

// Manager coordinates mode transitions.
type Manager struct {
	// stacks holds the pushed modes of each holder.
	stacks map[Holder][]string

	// callbacks are notified on mode changes, keyed by registration id.
	callbacks map[int]ChangeCallback
	order     []int
	nextID    int
}

// NewManager creates a new mode manager.
func NewManager() *Manager {
	return &Manager{
		stacks:    make(map[Holder][]string),
		callbacks: make(map[int]ChangeCallback),
	}
}

// Switch sets the mode of h. Callbacks run only when the mode actually
// changes.
func (m *Manager) Switch(h Holder, name string) error {
	if err := Validate(name); err != nil {
		return err
	}
	m.set(h, name)
	return nil
}

// Push saves the current mode of h and switches to name.
func (m *Manager) Push(h Holder, name string) error {
	if err := Validate(name); err != nil {
		return err
	}
	m.stacks[h] = append(m.stacks[h], h.Mode())
	m.set(h, name)
	return nil
}

// Pop restores the mode saved by the latest Push on h.
func (m *Manager) Pop(h Holder) error {
	stack := m.stacks[h]
	if len(stack) == 0 {
		return ErrStackEmpty
	}
	prev := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(m.stacks, h)
	} else {
		m.stacks[h] = stack[:len(stack)-1]
	}
	m.set(h, prev)
	return nil
}

// Depth returns how many modes are pushed for h.
func (m *Manager) Depth(h Holder) int {
	return len(m.stacks[h])
}

// Forget drops the saved stack of h.
func (m *Manager) Forget(h Holder) {
	delete(m.stacks, h)
}

func (m *Manager) set(h Holder, name string) {
	old := h.Mode()
	if old == name {
		return
	}
	h.SetMode(name)

	// Snapshot so callbacks may register or remove callbacks.
	ids := append([]int(nil), m.order...)
	for _, id := range ids {
		if cb, ok := m.callbacks[id]; ok {
			cb(old, name)
		}
	}
}

// OnChange registers a callback for mode changes. The returned function
// removes it.
func (m *Manager) OnChange(cb ChangeCallback) (remove func()) {
	m.nextID++
	id := m.nextID
	m.callbacks[id] = cb
	m.order = append(m.order, id)
	return func() {
		delete(m.callbacks, id)
		for i, v := range m.order {
			if v == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
}
