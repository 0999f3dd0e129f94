package openai

import (
	"testing"
	"time"
)

func TestBuildTimeContext(t *testing.T) {
	now := time.Date(2023, 6, 8, 9, 30, 45, 0, time.UTC)
	tc := BuildTimeContext(now)

	if tc.NowISO != "2023-06-08T09:30:45Z" {
		t.Errorf("NowISO = %q, want 2023-06-08T09:30:45Z", tc.NowISO)
	}
	if tc.TodayDate != "2023-06-08" {
		t.Errorf("TodayDate = %q, want 2023-06-08", tc.TodayDate)
	}
	if tc.TomorrowNoon != "2023-06-09T12:00:00Z" {
		t.Errorf("TomorrowNoon = %q, want 2023-06-09T12:00:00Z", tc.TomorrowNoon)
	}
	if tc.EndOfWeek != "2023-06-15T17:00:00Z" {
		t.Errorf("EndOfWeek = %q, want 2023-06-15T17:00:00Z", tc.EndOfWeek)
	}
	if tc.EndOfMonth != "2023-07-08T17:00:00Z" {
		t.Errorf("EndOfMonth = %q, want 2023-07-08T17:00:00Z", tc.EndOfMonth)
	}
}

func TestBuildTimeContext_Idempotent(t *testing.T) {
	now := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	first := BuildTimeContext(now)
	second := BuildTimeContext(now)

	if first != second {
		t.Errorf("same instant produced different contexts:\n%+v\n%+v", first, second)
	}
}

func TestBuildTimeContext_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	local := time.Date(2023, 6, 9, 2, 0, 0, 0, loc) // 2023-06-08T19:00:00Z

	tc := BuildTimeContext(local)
	if tc.TodayDate != "2023-06-08" {
		t.Errorf("TodayDate = %q, want the UTC date 2023-06-08", tc.TodayDate)
	}
	if tc.TomorrowNoon != "2023-06-09T12:00:00Z" {
		t.Errorf("TomorrowNoon = %q, want 2023-06-09T12:00:00Z", tc.TomorrowNoon)
	}
}
