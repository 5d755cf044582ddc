package ports

import "testing"

func TestNewEvent_AssignsUniqueIdentifierAndType(t *testing.T) {
	a := NewEvent(EventCompileSucceeded, map[string]any{"checksum": "abc"})
	b := NewEvent(EventCompileSucceeded, map[string]any{"checksum": "abc"})

	if a.Identifier == "" || b.Identifier == "" {
		t.Fatal("expected a non-empty identifier")
	}
	if a.Identifier == b.Identifier {
		t.Error("expected distinct events to get distinct identifiers")
	}
	if a.Type != EventCompileSucceeded {
		t.Errorf("unexpected type: %q", a.Type)
	}
	if a.OccurredAt.IsZero() {
		t.Error("expected OccurredAt to be set")
	}
}
