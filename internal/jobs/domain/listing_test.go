package domain

import (
	"testing"
	"time"
)

func TestCursorPrecedes(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Cursor{PostedAt: at, ID: "m"}

	tests := []struct {
		name     string
		postedAt time.Time
		id       string
		want     bool
	}{
		{name: "older listing", postedAt: at.Add(-time.Minute), id: "z", want: true},
		{name: "newer listing", postedAt: at.Add(time.Minute), id: "a", want: false},
		{name: "same time lower id", postedAt: at, id: "a", want: true},
		{name: "same time higher id", postedAt: at, id: "z", want: false},
		{name: "cursor record itself", postedAt: at, id: "m", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Precedes(tt.postedAt, tt.id); got != tt.want {
				t.Fatalf("Precedes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListingPatchIsEmpty(t *testing.T) {
	if !(ListingPatch{}).IsEmpty() {
		t.Fatal("zero patch should be empty")
	}
	active := false
	if (ListingPatch{IsActive: &active}).IsEmpty() {
		t.Fatal("patch with isActive should not be empty")
	}
}
