package utils

import "testing"

func TestFormatTime(t *testing.T) {
	got := FormatTime("2024-03-05T10:00:00Z")
	want := "05/03/2024, 10:00:00"
	if got != want {
		t.Fatalf("FormatTime = %q, want %q", got, want)
	}
}

func TestFormatTimeToDateString(t *testing.T) {
	got := FormatTimeToDateString("2024-03-05T10:00:00Z")
	want := "05/03/2024"
	if got != want {
		t.Fatalf("FormatTimeToDateString = %q, want %q", got, want)
	}
}

func TestFormatTimeDeterministic(t *testing.T) {
	first := FormatTime("2024-12-31T23:59:59Z")
	for i := 0; i < 5; i++ {
		if again := FormatTime("2024-12-31T23:59:59Z"); again != first {
			t.Fatalf("FormatTime not deterministic: %q vs %q", first, again)
		}
	}
}

func TestFormatTimeUnparseableInputReturnedUnchanged(t *testing.T) {
	for _, in := range []string{"", "not a date", "2024-13-45"} {
		if got := FormatTime(in); got != in {
			t.Fatalf("FormatTime(%q) = %q, want input unchanged", in, got)
		}
		if got := FormatTimeToDateString(in); got != in {
			t.Fatalf("FormatTimeToDateString(%q) = %q, want input unchanged", in, got)
		}
	}
}
