// Package memory provides in-memory implementations of the repositories in
// package store. They enforce the same uniqueness rules as the PostgreSQL schema
// and return the same sentinel errors.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mentormatch/apiserver/internal/store"
	"github.com/mentormatch/apiserver/types"
)

type userRecord struct {
	user  types.User
	image []byte
}

// Store holds users and match requests behind a single lock.
type Store struct {
	mu            sync.RWMutex
	users         map[int]*userRecord
	requests      map[int]types.MatchRequest
	nextUserID    int
	nextRequestID int
	now           func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:         make(map[int]*userRecord),
		requests:      make(map[int]types.MatchRequest),
		nextUserID:    1,
		nextRequestID: 1,
		now:           time.Now,
	}
}

// Users returns the user repository view of s.
func (s *Store) Users() *UserStore {
	return &UserStore{s: s}
}

// MatchRequests returns the match request repository view of s.
func (s *Store) MatchRequests() *MatchRequestStore {
	return &MatchRequestStore{s: s}
}

// Admin returns the maintenance view of s.
func (s *Store) Admin() *AdminStore {
	return &AdminStore{s: s}
}

// insertUserLocked requires s.mu held for writing.
func (s *Store) insertUserLocked(user types.User) (types.User, error) {
	for _, rec := range s.users {
		if rec.user.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	now := s.now()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.nextUserID++
	s.users[user.ID] = &userRecord{user: user}
	return user, nil
}

// UserStore implements the user repository.
type UserStore struct {
	s *Store
}

func (u *UserStore) GetByID(_ context.Context, id int) (types.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	rec, ok := u.s.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return rec.user, nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (types.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, rec := range u.s.users {
		if rec.user.Email == email {
			return rec.user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (u *UserStore) ListByRole(_ context.Context, role types.Role) ([]types.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	users := make([]types.User, 0)
	for _, rec := range u.s.users {
		if rec.user.Role == role {
			users = append(users, rec.user)
		}
	}
	slices.SortFunc(users, func(a, b types.User) int { return cmp.Compare(a.ID, b.ID) })
	return users, nil
}

func (u *UserStore) Create(_ context.Context, user types.User) (types.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	return u.s.insertUserLocked(user)
}

// UpdateProfile leaves the stored image untouched when image is nil.
func (u *UserStore) UpdateProfile(_ context.Context, user types.User, image []byte) (types.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	rec, ok := u.s.users[user.ID]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	rec.user.Name = user.Name
	rec.user.Bio = user.Bio
	rec.user.Skills = user.Skills
	rec.user.UpdatedAt = u.s.now()
	if image != nil {
		rec.image = slices.Clone(image)
	}
	return rec.user, nil
}

func (u *UserStore) GetProfileImage(_ context.Context, userID int) ([]byte, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	rec, ok := u.s.users[userID]
	if !ok || len(rec.image) == 0 {
		return nil, store.ErrNotFound
	}
	return slices.Clone(rec.image), nil
}

// MatchRequestStore implements the match request repository.
type MatchRequestStore struct {
	s *Store
}

func (m *MatchRequestStore) Get(_ context.Context, id int) (types.MatchRequest, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	req, ok := m.s.requests[id]
	if !ok {
		return types.MatchRequest{}, store.ErrNotFound
	}
	return req, nil
}

func (m *MatchRequestStore) Create(_ context.Context, req types.MatchRequest) (types.MatchRequest, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if req.Status == types.StatusPending && m.menteeHasLocked(req.MenteeID, types.StatusPending) {
		return types.MatchRequest{}, store.ErrConflict
	}
	if req.Status == types.StatusAccepted && m.mentorHasOtherLocked(req.MentorID, 0, types.StatusAccepted) {
		return types.MatchRequest{}, store.ErrConflict
	}

	now := m.s.now()
	req.ID = m.s.nextRequestID
	req.CreatedAt = now
	req.UpdatedAt = now
	m.s.nextRequestID++
	m.s.requests[req.ID] = req
	return req, nil
}

func (m *MatchRequestStore) UpdateStatus(_ context.Context, id int, status types.RequestStatus) (types.MatchRequest, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	req, ok := m.s.requests[id]
	if !ok {
		return types.MatchRequest{}, store.ErrNotFound
	}
	if status == types.StatusAccepted && m.mentorHasOtherLocked(req.MentorID, id, types.StatusAccepted) {
		return types.MatchRequest{}, store.ErrConflict
	}
	if status == types.StatusPending && req.Status != types.StatusPending && m.menteeHasLocked(req.MenteeID, types.StatusPending) {
		return types.MatchRequest{}, store.ErrConflict
	}

	req.Status = status
	req.UpdatedAt = m.s.now()
	m.s.requests[id] = req
	return req, nil
}

func (m *MatchRequestStore) ListByMentor(_ context.Context, mentorID int) ([]types.MatchRequest, error) {
	return m.filter(func(req types.MatchRequest) bool { return req.MentorID == mentorID }), nil
}

func (m *MatchRequestStore) ListByMentee(_ context.Context, menteeID int) ([]types.MatchRequest, error) {
	return m.filter(func(req types.MatchRequest) bool { return req.MenteeID == menteeID }), nil
}

func (m *MatchRequestStore) MenteeHasStatus(_ context.Context, menteeID int, status types.RequestStatus) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	return m.menteeHasLocked(menteeID, status), nil
}

func (m *MatchRequestStore) MentorHasOtherWithStatus(_ context.Context, mentorID, excludeID int, status types.RequestStatus) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	return m.mentorHasOtherLocked(mentorID, excludeID, status), nil
}

func (m *MatchRequestStore) filter(keep func(types.MatchRequest) bool) []types.MatchRequest {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := make([]types.MatchRequest, 0)
	for _, req := range m.s.requests {
		if keep(req) {
			out = append(out, req)
		}
	}
	slices.SortFunc(out, func(a, b types.MatchRequest) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (m *MatchRequestStore) menteeHasLocked(menteeID int, status types.RequestStatus) bool {
	for _, req := range m.s.requests {
		if req.MenteeID == menteeID && req.Status == status {
			return true
		}
	}
	return false
}

func (m *MatchRequestStore) mentorHasOtherLocked(mentorID, excludeID int, status types.RequestStatus) bool {
	for _, req := range m.s.requests {
		if req.MentorID == mentorID && req.ID != excludeID && req.Status == status {
			return true
		}
	}
	return false
}

// AdminStore implements whole-store maintenance.
type AdminStore struct {
	s *Store
}

// Reset clears the store and inserts seed atomically. Ids keep counting upward.
func (a *AdminStore) Reset(_ context.Context, seed []types.User) ([]types.User, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	prevUsers, prevRequests, prevNext := a.s.users, a.s.requests, a.s.nextUserID
	a.s.users = make(map[int]*userRecord)
	a.s.requests = make(map[int]types.MatchRequest)

	created := make([]types.User, 0, len(seed))
	for _, user := range seed {
		inserted, err := a.s.insertUserLocked(user)
		if err != nil {
			a.s.users, a.s.requests, a.s.nextUserID = prevUsers, prevRequests, prevNext
			return nil, err
		}
		created = append(created, inserted)
	}
	return created, nil
}
