package firetime

import (
	"testing"
	"time"
)

func TestAt(t *testing.T) {
	day := time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC)

	got, err := At(day, "04:26")
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	want := time.Date(2025, time.April, 13, 4, 26, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCompute(t *testing.T) {
	day := time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC)

	got, err := Compute(day, "19:41", 10)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	want := time.Date(2025, time.April, 13, 19, 31, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestComputeCrossesMidnightBackward(t *testing.T) {
	day := time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC)

	got, err := Compute(day, "00:10", 15)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	want := time.Date(2025, time.April, 12, 23, 55, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected previous-day %v, got %v", want, got)
	}
}

func TestComputeKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5:30", 5*3600+1800)
	day := time.Date(2025, time.April, 13, 0, 0, 0, 0, loc)

	got, err := Compute(day, "05:00", 30)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	want := time.Date(2025, time.April, 13, 4, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseRejectsBadClocks(t *testing.T) {
	day := time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC)
	cases := []string{"", "0426", "24:00", "12:60", "ab:cd", "4:26:00", "-1:30"}
	for _, c := range cases {
		if _, err := At(day, c); err == nil {
			t.Errorf("expected error for %q", c)
		}
	}
}
