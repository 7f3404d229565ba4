package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentormatch/apiserver/types"
)

func mentorNames(mentors []types.UserResponse) []string {
	names := make([]string, 0, len(mentors))
	for _, m := range mentors {
		names = append(names, m.Profile.Name)
	}
	return names
}

func TestListMentorsFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createUser(t, "c@x.io", types.RoleMentor, "Charlie", []string{"React", "Go"})
	f.createUser(t, "a@x.io", types.RoleMentor, "Alice", []string{"Python"})
	f.createUser(t, "b@x.io", types.RoleMentor, "Bob", []string{"ReactNative"})
	mentee := f.createUser(t, "m@x.io", types.RoleMentee, "Mentee", nil)

	all, err := f.mentors.ListMentors(ctx, mentee, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie", "Alice", "Bob"}, mentorNames(all))
	assert.Equal(t, []string{"React", "Go"}, all[0].Profile.Skills)
	assert.Equal(t, types.RoleMentor, all[0].Role)

	byName, err := f.mentors.ListMentors(ctx, mentee, "", OrderByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, mentorNames(byName))

	// Ordered by the raw stored JSON text.
	bySkill, err := f.mentors.ListMentors(ctx, mentee, "", OrderBySkill)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Charlie", "Bob"}, mentorNames(bySkill))

	react, err := f.mentors.ListMentors(ctx, mentee, " react ", OrderByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Charlie"}, mentorNames(react))

	none, err := f.mentors.ListMentors(ctx, mentee, "rust", "")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestListMentorsSkipsMalformedSkillsWhenFiltering(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.store.Users().Create(ctx, types.User{Email: "bad@x.io", Role: types.RoleMentor, Name: "Bad", Skills: "React,Go"})
	require.NoError(t, err)
	f.createUser(t, "ok@x.io", types.RoleMentor, "Ok", []string{"React"})
	mentee := f.createUser(t, "m@x.io", types.RoleMentee, "Mentee", nil)

	filtered, err := f.mentors.ListMentors(ctx, mentee, "React", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ok"}, mentorNames(filtered))

	all, err := f.mentors.ListMentors(ctx, mentee, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{}, all[0].Profile.Skills)
}

func TestListMentorsRequiresMentee(t *testing.T) {
	f := newFixture(t)
	mentor := f.createUser(t, "mentor@x.io", types.RoleMentor, "Mentor", nil)

	_, err := f.mentors.ListMentors(context.Background(), mentor, "", "")
	assert.ErrorIs(t, err, ErrForbidden)
}
