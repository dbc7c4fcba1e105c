package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campusevents/internal/domain/entities"
)

func TestSearch(t *testing.T) {
	now := t1
	cs := published("cs", now.Add(48*time.Hour))
	cs.OrganizerDepartment = "Computer Science"
	cs.Type = entities.EventTypeOnline
	cs.Category = entities.CategoryWorkshop
	cs.Venue = "Main Hall"

	eco := published("eco", now.Add(-48*time.Hour))
	eco.OrganizerDepartment = "Economics"
	eco.Type = entities.EventTypeOffline
	eco.Category = entities.CategorySeminar
	eco.Campus = "North Campus"

	undated := published("undated", time.Time{})
	undated.OrganizerDepartment = "Economics"
	undated.Type = entities.EventTypeHybrid
	undated.Category = entities.CategorySeminar

	events := []entities.Event{cs, eco, undated}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"empty criteria keeps everything", Criteria{Now: now}, []string{"cs", "eco", "undated"}},
		{"department", Criteria{Departments: []string{"Economics"}, Now: now}, []string{"eco", "undated"}},
		{"types multi", Criteria{Types: []entities.EventType{entities.EventTypeOnline, entities.EventTypeHybrid}, Now: now}, []string{"cs", "undated"}},
		{"category", Criteria{Categories: []entities.Category{entities.CategoryWorkshop}, Now: now}, []string{"cs"}},
		{"location matches venue or campus", Criteria{Location: "north", Now: now}, []string{"eco"}},
		{"range skips undated bounds", Criteria{From: now, Now: now}, []string{"cs", "undated"}},
		{"range upper bound", Criteria{To: now, Now: now}, []string{"eco", "undated"}},
		{"upcoming", Criteria{When: WhenUpcoming, Now: now}, []string{"cs", "undated"}},
		{"past", Criteria{When: WhenPast, Now: now}, []string{"eco"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Search(events, tc.criteria)))
		})
	}
}

func TestCriteriaPushDown(t *testing.T) {
	c := Criteria{Types: []entities.EventType{entities.EventTypeOnline}}
	typ, ok := c.SingleType()
	assert.True(t, ok)
	assert.Equal(t, entities.EventTypeOnline, typ)

	_, ok = c.SingleCategory()
	assert.False(t, ok)

	c.Categories = []entities.Category{entities.CategorySports, entities.CategoryCultural}
	_, ok = c.SingleCategory()
	assert.False(t, ok)
}
