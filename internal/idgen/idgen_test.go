package idgen

import "testing"

func TestGeneratorIsMonotonic(t *testing.T) {
	g, err := New(1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	prev := g.NextID()
	for i := 0; i < 1000; i++ {
		id := g.NextID()
		if id <= prev {
			t.Fatalf("id %d not greater than %d", id, prev)
		}
		prev = id
	}
}

func TestNewRejectsOutOfRangeNode(t *testing.T) {
	if _, err := New(-1); err == nil {
		t.Fatalf("expected error for negative node id")
	}
}
