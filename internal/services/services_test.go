package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentormatch/apiserver/internal/auth"
	"github.com/mentormatch/apiserver/internal/store/memory"
	"github.com/mentormatch/apiserver/types"
)

type fixture struct {
	store    *memory.Store
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	users    *UserService
	matches  *MatchService
	mentors  *MentorService
	profiles *ProfileService
	admin    *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService("test-secret", auth.DefaultIssuer, auth.DefaultAudience, time.Hour)
	return &fixture{
		store:    st,
		hasher:   hasher,
		tokens:   tokens,
		users:    NewUserService(st.Users(), hasher, tokens),
		matches:  NewMatchService(st.MatchRequests(), st.Users()),
		mentors:  NewMentorService(st.Users()),
		profiles: NewProfileService(st.Users(), nil),
		admin:    NewAdminService(st.Admin(), hasher),
	}
}

func (f *fixture) createUser(t *testing.T, email string, role types.Role, name string, skills []string) types.User {
	t.Helper()
	user, err := f.store.Users().Create(context.Background(), types.User{
		Email:  email,
		Role:   role,
		Name:   name,
		Skills: types.EncodeSkills(skills),
	})
	require.NoError(t, err)
	return user
}
