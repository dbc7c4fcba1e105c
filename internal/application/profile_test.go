package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
)

func TestProfileLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	newManager := entities.Identity{UID: "m9", Email: "chess@uni.edu", Role: entities.RoleManager}

	p, err := f.profileSvc.Me(ctx, newManager)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleManager, p.Role)
	assert.False(t, p.ProfileComplete)

	_, err = f.eventSvc.CreateEvent(ctx, newManager, EventInput{Title: "Blitz"})
	assert.ErrorIs(t, err, domain.ErrProfileIncomplete)

	p, err = f.profileSvc.Update(ctx, newManager, ProfileInput{
		SocietyName:  "Chess Club",
		Category:     "Games",
		Description:  "We play chess.",
		ContactEmail: "chess@uni.edu",
		Department:   "ignored for managers",
	})
	require.NoError(t, err)
	assert.True(t, p.ProfileComplete)
	assert.Equal(t, "Chess Club", p.SocietyName)
	assert.Empty(t, p.Department)

	e, err := f.eventSvc.CreateEvent(ctx, newManager, EventInput{Title: "Blitz"})
	require.NoError(t, err)

	society, events, err := f.profileSvc.Society(ctx, newManager.UID)
	require.NoError(t, err)
	assert.Equal(t, "Chess Club", society.SocietyName)
	require.Len(t, events, 1)
	assert.Equal(t, e.ID, events[0].ID)
}

func TestProfileStudent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.profileSvc.Update(ctx, student, ProfileInput{
		FirstName:   " Ada ",
		Department:  "CS",
		Semester:    "5",
		SocietyName: "ignored for students",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "CS", p.Department)
	assert.Empty(t, p.SocietyName)

	_, _, err = f.profileSvc.Society(ctx, student.UID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = f.profileSvc.Update(ctx, student, ProfileInput{LogoURL: "not a url"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.profileSvc.Me(ctx, entities.Identity{})
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}
