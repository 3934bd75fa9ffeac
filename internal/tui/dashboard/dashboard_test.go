// ABOUTME: Tests for dashboard stat derivation and rendering
// ABOUTME: Uses a fixed clock so month counts are deterministic

package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/krills/birthday-tracker/cli/internal/api"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	all := []api.Friend{
		{ID: "1", BirthDate: "1990-06-20"},
		{ID: "2", BirthDate: "1985-06-01"},
		{ID: "3", BirthDate: "1992-12-25"},
		{ID: "4", BirthDate: "not-a-date"},
	}
	upcoming := []api.Friend{
		{ID: "1", DaysUntilBirthday: 5},
		{ID: "2", DaysUntilBirthday: 0, IsBirthdayToday: true},
		{ID: "3", DaysUntilBirthday: 30},
	}

	stats := computeStats(all, upcoming, now)

	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.ThisMonth != 2 {
		t.Errorf("ThisMonth = %d, want 2", stats.ThisMonth)
	}
	if stats.Soon != 2 {
		t.Errorf("Soon = %d, want 2", stats.Soon)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := computeStats(nil, nil, time.Now())
	if stats.Total != 0 || stats.ThisMonth != 0 || stats.Soon != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}
}

func TestViewShowsLoadingBeforeData(t *testing.T) {
	m := New(&api.User{Username: "kara"}, 100, 30)
	if !strings.Contains(m.View(), "Loading") {
		t.Error("View before SetData should show a loading hint")
	}
}

func TestViewGreetsByFirstName(t *testing.T) {
	m := New(&api.User{Username: "kara", FirstName: "Kara"}, 100, 30)
	m.SetData(nil, nil)
	if !strings.Contains(m.View(), "Kara") {
		t.Error("View should greet the user by first name")
	}
}

func TestViewFallsBackToUsername(t *testing.T) {
	m := New(&api.User{Username: "kara"}, 100, 30)
	m.SetData(nil, nil)
	if !strings.Contains(m.View(), "kara") {
		t.Error("View should fall back to the username")
	}
}

func TestViewCapsUpcomingRows(t *testing.T) {
	upcoming := make([]api.Friend, 12)
	for i := range upcoming {
		upcoming[i] = api.Friend{
			ID:                string(rune('a' + i)),
			FirstName:         "Friend",
			LastName:          string(rune('A' + i)),
			BirthDate:         "1990-01-01",
			DaysUntilBirthday: i,
		}
	}
	m := New(&api.User{Username: "kara"}, 100, 30)
	m.SetData(upcoming, upcoming)

	if !strings.Contains(m.View(), "and 4 more") {
		t.Error("View should mention overflow beyond the row cap")
	}
}
