package earnings

// Entry is a labelled amount. It is used both for aggregated game totals and
// for the filtered dataset handed to the chart and summary.
type Entry struct {
	Label string
	Value float64
}

// Map accumulates total earnings per game title.
// Names keep the order in which they were first seen so that iteration,
// and therefore tie-breaking during sorting, is deterministic.
type Map struct {
	names  []string
	totals map[string]float64
}

// NewMap creates an empty earnings map
func NewMap() *Map {
	return &Map{
		totals: make(map[string]float64),
	}
}

// Add folds amount into the running total for name.
func (m *Map) Add(name string, amount float64) {
	if _, ok := m.totals[name]; !ok {
		m.names = append(m.names, name)
	}
	m.totals[name] += amount
}

// Get returns the accumulated total for name
func (m *Map) Get(name string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.totals[name]
	return v, ok
}

// Len returns the number of distinct game titles
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Entries returns the totals in encounter order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, Entry{Label: name, Value: m.totals[name]})
	}
	return out
}

// Values returns the totals in encounter order
func (m *Map) Values() []float64 {
	if m == nil {
		return nil
	}
	out := make([]float64, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, m.totals[name])
	}
	return out
}

// Max returns the largest total, or false when the map is empty.
func (m *Map) Max() (float64, bool) {
	if m.Len() == 0 {
		return 0, false
	}
	best := m.totals[m.names[0]]
	for _, name := range m.names[1:] {
		if v := m.totals[name]; v > best {
			best = v
		}
	}
	return best, true
}

// ToMap returns a plain copy of the totals
func (m *Map) ToMap() map[string]float64 {
	out := make(map[string]float64, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.totals {
		out[k] = v
	}
	return out
}
