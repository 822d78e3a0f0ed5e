package guide

import (
	"encoding/json"
	"testing"
)

func TestReflectionsValidate(t *testing.T) {
	good := Reflections{
		"0-0": "I kept showing up.",
		"0-1": "One day at a time.",
		"2-3": "",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid map rejected: %v", err)
	}

	bad := Reflections{"part-one": "nope"}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for non-numeric key")
	}
}

func TestReflectionsRoundTrip(t *testing.T) {
	original := Reflections{
		"0-0": "Admitting it was the hardest part.",
		"1-2": "Calling my sponsor before the craving wins.",
		"3-0": "Gratitude list every morning.",
	}

	// Encode/decode the same way the store does.
	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored Reflections
	if err := json.Unmarshal(payload, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(restored) != len(original) {
		t.Fatalf("round-trip changed size: %d -> %d", len(original), len(restored))
	}
	for key, want := range original {
		if got, ok := restored[key]; !ok || got != want {
			t.Fatalf("round-trip lost %q: got %q, want %q", key, got, want)
		}
	}
}
