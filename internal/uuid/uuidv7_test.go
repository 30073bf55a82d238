package uuid

import (
	"testing"
	"time"
)

func TestNewAt(t *testing.T) {
	t.Run("embeds_timestamp", func(t *testing.T) {
		at := time.UnixMilli(1_760_000_000_123)
		id := NewAt(at)

		got, err := Timestamp(id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(at) {
			t.Errorf("expected %v, got %v", at, got)
		}
	})

	t.Run("unique_within_same_millisecond", func(t *testing.T) {
		at := time.Now()
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewAt(at)
			if seen[id] {
				t.Fatalf("duplicate id generated: %s", id)
			}
			seen[id] = true
		}
	})

	t.Run("sorts_by_time", func(t *testing.T) {
		earlier := NewAt(time.UnixMilli(1_000))
		later := NewAt(time.UnixMilli(2_000))
		if earlier >= later {
			t.Errorf("expected %s < %s", earlier, later)
		}
	})
}

func TestTimestamp_RejectsNonV7(t *testing.T) {
	if _, err := Timestamp("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); err == nil {
		t.Error("expected error for version 1 uuid")
	}
	if _, err := Timestamp("not-a-uuid"); err == nil {
		t.Error("expected error for malformed uuid")
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(New()) {
		t.Error("expected generated id to be valid")
	}
	if IsValid("123") {
		t.Error("expected short string to be invalid")
	}
}
