package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mentormatch/apiserver/types"
)

const (
	OrderByName  = "name"
	OrderBySkill = "skill"
)

// MentorService serves the mentor directory.
type MentorService struct {
	users UserRepository
}

func NewMentorService(users UserRepository) *MentorService {
	return &MentorService{users: users}
}

// ListMentors returns mentors visible to caller.
//
// A non-empty skill keeps mentors with at least one skill containing it, case
// insensitively; mentors whose stored skills cannot be decoded are dropped. orderBy
// "name" sorts by name, "skill" by the stored skills text as-is, anything else by id.
// Sorting is stable.
func (s *MentorService) ListMentors(ctx context.Context, caller types.User, skill, orderBy string) ([]types.UserResponse, error) {
	if !caller.IsMentee() {
		return nil, forbiddenError("Only mentees can view mentors")
	}

	mentors, err := s.users.ListByRole(ctx, types.RoleMentor)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}

	if skill = strings.TrimSpace(skill); skill != "" {
		mentors = slices.DeleteFunc(mentors, func(m types.User) bool {
			skills, ok := types.DecodeSkills(m.Skills)
			return !ok || !types.HasSkill(skills, skill)
		})
	}

	switch orderBy {
	case OrderByName:
		slices.SortStableFunc(mentors, func(a, b types.User) int { return cmp.Compare(a.Name, b.Name) })
	case OrderBySkill:
		slices.SortStableFunc(mentors, func(a, b types.User) int { return cmp.Compare(a.Skills, b.Skills) })
	default:
		slices.SortStableFunc(mentors, func(a, b types.User) int { return cmp.Compare(a.ID, b.ID) })
	}

	out := make([]types.UserResponse, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, types.NewUserResponse(m))
	}
	return out, nil
}
