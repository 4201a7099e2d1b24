// Package mocks provides testify mocks for the domain ports.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
)

// MockUserRepository mocks domain.UserRepository.
type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByExternalID(ctx domain.Context, externalID string) (domain.User, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx domain.Context, u domain.User) (domain.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockInsightRepository mocks domain.InsightRepository.
type MockInsightRepository struct{ mock.Mock }

func (m *MockInsightRepository) Get(ctx domain.Context, industry string) (domain.IndustryInsight, error) {
	args := m.Called(ctx, industry)
	return args.Get(0).(domain.IndustryInsight), args.Error(1)
}

func (m *MockInsightRepository) Create(ctx domain.Context, ins domain.IndustryInsight) (domain.IndustryInsight, error) {
	args := m.Called(ctx, ins)
	return args.Get(0).(domain.IndustryInsight), args.Error(1)
}

func (m *MockInsightRepository) Update(ctx domain.Context, ins domain.IndustryInsight) error {
	args := m.Called(ctx, ins)
	return args.Error(0)
}

func (m *MockInsightRepository) ListIndustries(ctx domain.Context) ([]string, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAssessmentRepository mocks domain.AssessmentRepository.
type MockAssessmentRepository struct{ mock.Mock }

func (m *MockAssessmentRepository) Create(ctx domain.Context, a domain.Assessment) (domain.Assessment, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) ListByUser(ctx domain.Context, userID string) ([]domain.Assessment, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]domain.Assessment), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockResumeRepository mocks domain.ResumeRepository.
type MockResumeRepository struct{ mock.Mock }

func (m *MockResumeRepository) Upsert(ctx domain.Context, r domain.Resume) (domain.Resume, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(domain.Resume), args.Error(1)
}

func (m *MockResumeRepository) GetByUser(ctx domain.Context, userID string) (domain.Resume, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Resume), args.Error(1)
}

// MockGenerator mocks domain.Generator.
type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) Generate(ctx domain.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
