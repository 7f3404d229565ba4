package services

import (
	"context"
	"fmt"

	"github.com/mentormatch/apiserver/internal/auth"
	"github.com/mentormatch/apiserver/types"
)

const seedPassword = "password123"

// ResetRepository wipes and reseeds the whole store atomically.
type ResetRepository interface {
	Reset(ctx context.Context, seed []types.User) ([]types.User, error)
}

type seedUser struct {
	Email  string
	Name   string
	Role   types.Role
	Bio    string
	Skills []string
}

var seedMentors = []seedUser{
	{
		Email:  "mentor1@example.com",
		Name:   "김개발",
		Role:   types.RoleMentor,
		Bio:    "10년 경력의 풀스택 개발자입니다. React, Node.js, Python 전문가입니다.",
		Skills: []string{"React", "Node.js", "Python", "TypeScript", "AWS"},
	},
	{
		Email:  "mentor2@example.com",
		Name:   "이디자인",
		Role:   types.RoleMentor,
		Bio:    "UI/UX 디자이너이자 프론트엔드 개발자입니다. 사용자 경험을 중시합니다.",
		Skills: []string{"UI/UX", "Figma", "React", "CSS", "JavaScript"},
	},
	{
		Email:  "mentor3@example.com",
		Name:   "박데이터",
		Role:   types.RoleMentor,
		Bio:    "데이터 사이언티스트이자 머신러닝 엔지니어입니다. AI 전문가입니다.",
		Skills: []string{"Python", "TensorFlow", "PyTorch", "SQL", "Machine Learning"},
	},
	{
		Email:  "mentor4@example.com",
		Name:   "최모바일",
		Role:   types.RoleMentor,
		Bio:    "iOS/Android 앱 개발 전문가입니다. 크로스 플랫폼 개발 경험이 풍부합니다.",
		Skills: []string{"Swift", "Kotlin", "React Native", "Flutter", "iOS"},
	},
	{
		Email:  "mentor5@example.com",
		Name:   "정클라우드",
		Role:   types.RoleMentor,
		Bio:    "클라우드 아키텍트이자 DevOps 엔지니어입니다. 인프라 구축 전문가입니다.",
		Skills: []string{"AWS", "Docker", "Kubernetes", "Terraform", "DevOps"},
	},
}

var seedMentee = seedUser{
	Email:  "mentee@example.com",
	Name:   "김멘티",
	Role:   types.RoleMentee,
	Bio:    "개발을 배우고 싶은 신입 개발자입니다.",
	Skills: []string{},
}

// SeededMentor is a mentor created by a reset.
type SeededMentor struct {
	ID     int      `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// TestAccount describes the seeded mentee credentials.
type TestAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// ResetResult summarizes a reset.
type ResetResult struct {
	Message        string         `json:"message"`
	MentorsCreated int            `json:"mentors_created"`
	Mentors        []SeededMentor `json:"mentors"`
	TestMentee     TestAccount    `json:"test_mentee"`
}

// AdminService wipes the database and loads fixed test data.
type AdminService struct {
	repo   ResetRepository
	hasher *auth.PasswordHasher
}

func NewAdminService(repo ResetRepository, hasher *auth.PasswordHasher) *AdminService {
	return &AdminService{repo: repo, hasher: hasher}
}

// Reset replaces all data with five mentors and one mentee.
func (s *AdminService) Reset(ctx context.Context) (ResetResult, error) {
	seed := make([]types.User, 0, len(seedMentors)+1)
	for _, su := range append(append([]seedUser{}, seedMentors...), seedMentee) {
		hashed, err := s.hasher.Hash(seedPassword)
		if err != nil {
			return ResetResult{}, fmt.Errorf("hash seed password: %w", err)
		}
		seed = append(seed, types.User{
			Email:        su.Email,
			PasswordHash: hashed,
			Role:         su.Role,
			Name:         su.Name,
			Bio:          su.Bio,
			Skills:       types.EncodeSkills(su.Skills),
		})
	}

	created, err := s.repo.Reset(ctx, seed)
	if err != nil {
		return ResetResult{}, fmt.Errorf("reset database: %w", err)
	}

	mentors := make([]SeededMentor, 0, len(seedMentors))
	for _, user := range created {
		if !user.IsMentor() {
			continue
		}
		mentors = append(mentors, SeededMentor{
			ID:     user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Skills: types.DecodeSkillsOrEmpty(user.Skills),
		})
	}

	return ResetResult{
		Message:        "Database reset completed",
		MentorsCreated: len(mentors),
		Mentors:        mentors,
		TestMentee: TestAccount{
			Email:    seedMentee.Email,
			Password: seedPassword,
			Name:     seedMentee.Name,
		},
	}, nil
}
