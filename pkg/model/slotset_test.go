package model

import "testing"

func TestSlotSetAddIsIdempotent(t *testing.T) {
	set := EmptySlotSet()
	set.Add(baseSlot()).Add(baseSlot())
	if set.Len() != 1 {
		t.Fatalf("Len() = %d want 1 after adding a duplicate", set.Len())
	}

	other := baseSlot()
	other.Room = "S102"
	set.Add(other)
	if set.Len() != 2 {
		t.Fatalf("Len() = %d want 2 after adding a distinct slot", set.Len())
	}
}

func TestSlotSetFilter(t *testing.T) {
	monday := baseSlot()
	tuesday := baseSlot()
	tuesday.Day = Tuesday
	friday := baseSlot()
	friday.Day = Friday

	set := NewSlotSet(monday, tuesday, friday)
	got := set.Filter(func(s Slot) bool { return s.Day == Monday })

	if got.Len() != 1 {
		t.Fatalf("filtered Len() = %d want 1", got.Len())
	}
	for _, s := range got.Slots() {
		if s.Day != Monday {
			t.Fatalf("filter kept slot failing the predicate: %v", s)
		}
	}
	// filtering must not alias or shrink the source
	if set.Len() != 3 {
		t.Fatalf("source set changed by Filter: Len() = %d", set.Len())
	}
	got.Add(tuesday)
	if set.Len() != 3 {
		t.Fatal("adding to the filtered set leaked into the source")
	}
}

func TestSlotSetSortChrono(t *testing.T) {
	late := baseSlot()
	late.Day = Wednesday
	late.Start = NewClock(14, 0)
	early := baseSlot()
	early.Day = Wednesday
	early.Start = NewClock(8, 0)
	mondaySlot := baseSlot()

	set := NewSlotSet(late, early, mondaySlot)
	slots := set.SortChrono().Slots()

	want := []Slot{mondaySlot, early, late}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slot %d = %v want %v", i, slots[i], want[i])
		}
	}
}

func TestSlotSetSlotsIsASnapshot(t *testing.T) {
	set := NewSlotSet(baseSlot())
	slots := set.Slots()
	slots[0].Room = "XXXX"
	if set.Slots()[0].Room != "S101" {
		t.Fatal("Slots() must return an independent copy")
	}
}
