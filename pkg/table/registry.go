// Package table holds the column registry, row buffer and column projection
// shared by every logical table read from an ADIF Specification document.
package table

// Registry assigns a stable slot to each distinct column name.
// Slots are handed out in first-seen order and never change.
type Registry struct {
	names []string
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make([]string, 0, 20),
		index: make(map[string]int, 20),
	}
}

// Add registers name and returns its slot. A name that is already
// registered keeps its original slot.
func (r *Registry) Add(name string) int {
	if slot, ok := r.index[name]; ok {
		return slot
	}
	r.names = append(r.names, name)
	slot := len(r.names) - 1
	r.index[name] = slot
	return slot
}

// Slot returns the slot for name.
func (r *Registry) Slot(name string) (int, bool) {
	slot, ok := r.index[name]
	return slot, ok
}

// Names returns a copy of the registered names in slot order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered columns.
func (r *Registry) Len() int {
	return len(r.names)
}
