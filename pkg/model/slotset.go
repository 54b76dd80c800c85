package model

import "slices"

// SlotSet is an ordered collection of slots, deduplicated by full-field
// equality. Iteration order is insertion order until SortChrono is called.
type SlotSet struct {
	slots []Slot
}

// EmptySlotSet creates a set with no elements.
func EmptySlotSet() *SlotSet {
	return &SlotSet{}
}

// NewSlotSet creates a set from the given slots, deduplicating as it goes.
func NewSlotSet(slots ...Slot) *SlotSet {
	set := EmptySlotSet()
	for _, s := range slots {
		set.Add(s)
	}
	return set
}

// Add inserts the slot unless an equal one is already present. Returns the
// set for chaining.
func (set *SlotSet) Add(s Slot) *SlotSet {
	if !set.Contains(s) {
		set.slots = append(set.slots, s)
	}
	return set
}

// AddAll inserts every slot of the other set.
func (set *SlotSet) AddAll(other *SlotSet) *SlotSet {
	for _, s := range other.slots {
		set.Add(s)
	}
	return set
}

// Clone returns an independent copy of the set.
func (set *SlotSet) Clone() *SlotSet {
	return &SlotSet{slots: slices.Clone(set.slots)}
}

func (set *SlotSet) Contains(s Slot) bool {
	return slices.Contains(set.slots, s)
}

func (set *SlotSet) Len() int {
	return len(set.slots)
}

// Filter returns a new, independently owned set holding exactly the slots
// satisfying pred, in the same order.
func (set *SlotSet) Filter(pred func(Slot) bool) *SlotSet {
	out := EmptySlotSet()
	for _, s := range set.slots {
		if pred(s) {
			out.slots = append(out.slots, s)
		}
	}
	return out
}

// SortChrono sorts in place by weekday then start time, keeping file order
// for slots with equal keys. Returns the set for chaining.
func (set *SlotSet) SortChrono() *SlotSet {
	slices.SortStableFunc(set.slots, func(a, b Slot) int {
		if d := int(a.Day) - int(b.Day); d != 0 {
			return d
		}
		return int(a.Start) - int(b.Start)
	})
	return set
}

// Slots returns a copy of the elements in iteration order.
func (set *SlotSet) Slots() []Slot {
	return slices.Clone(set.slots)
}
