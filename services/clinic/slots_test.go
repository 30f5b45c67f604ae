package clinic

import (
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain calendar date", raw: "2025-06-03", want: "2025-06-03"},
		{name: "rfc3339 utc", raw: "2025-06-03T14:00:00Z", want: "2025-06-03"},
		// Time zone noise collapses to the UTC calendar day.
		{name: "rfc3339 with offset", raw: "2025-06-03T01:00:00+05:00", want: "2025-06-02"},
		{name: "not a date", raw: "tomorrow", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "partial date", raw: "2025-06", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeDate(%q) expected error, got %q", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDefaultSlotsAreValid(t *testing.T) {
	if len(DefaultSlots) != 5 {
		t.Fatalf("expected 5 default slots, got %d", len(DefaultSlots))
	}

	prevEnd := -1
	for _, slot := range DefaultSlots {
		start, end, err := ParseSlotRange(slot)
		if err != nil {
			t.Fatalf("default slot %q does not parse: %v", slot, err)
		}
		if got := end.minutes() - start.minutes(); got != 20 {
			t.Errorf("slot %q spans %d minutes, want 20", slot, got)
		}
		if start.minutes() < prevEnd {
			t.Errorf("slot %q overlaps the previous slot", slot)
		}
		prevEnd = end.minutes()
	}
}
