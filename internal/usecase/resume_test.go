package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-career-coach/internal/domain"
	"github.com/fairyhunter13/ai-career-coach/internal/domain/mocks"
	"github.com/fairyhunter13/ai-career-coach/internal/usecase"
)

func TestResumeSave(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	resumes := &mocks.MockResumeRepository{}
	svc := usecase.NewResumeService(users, resumes, &mocks.MockGenerator{})

	users.On("FindByExternalID", mock.Anything, "ext-1").Return(onboardedUser(), nil)
	resumes.On("Upsert", mock.Anything, mock.MatchedBy(func(r domain.Resume) bool {
		return r.UserID == "u-1" && r.Content == "# Resume\n\nSome content"
	})).Return(domain.Resume{UserID: "u-1", Content: "# Resume\n\nSome content"}, nil)

	saved, err := svc.Save(context.Background(), "ext-1", "# Resume\n\nSome content")
	require.NoError(t, err)
	assert.Equal(t, "u-1", saved.UserID)
	resumes.AssertExpectations(t)
}

func TestResumeSave_EmptyContent(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	resumes := &mocks.MockResumeRepository{}
	svc := usecase.NewResumeService(users, resumes, &mocks.MockGenerator{})

	users.On("FindByExternalID", mock.Anything, "ext-1").Return(onboardedUser(), nil)

	_, err := svc.Save(context.Background(), "ext-1", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	resumes.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestResumeGet(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	resumes := &mocks.MockResumeRepository{}
	svc := usecase.NewResumeService(users, resumes, &mocks.MockGenerator{})

	users.On("FindByExternalID", mock.Anything, "ext-1").Return(onboardedUser(), nil)
	resumes.On("GetByUser", mock.Anything, "u-1").Return(domain.Resume{UserID: "u-1", Content: "# Resume"}, nil)

	res, err := svc.Get(context.Background(), "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "# Resume", res.Content)
}

func TestResumeGet_Missing(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	resumes := &mocks.MockResumeRepository{}
	svc := usecase.NewResumeService(users, resumes, &mocks.MockGenerator{})

	users.On("FindByExternalID", mock.Anything, "ext-1").Return(onboardedUser(), nil)
	resumes.On("GetByUser", mock.Anything, "u-1").
		Return(domain.Resume{}, fmt.Errorf("%w: resume", domain.ErrNotFound))

	_, err := svc.Get(context.Background(), "ext-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImproveEntry(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	gen := &mocks.MockGenerator{}
	svc := usecase.NewResumeService(users, &mocks.MockResumeRepository{}, gen)

	users.On("FindByExternalID", mock.Anything, "ext-1").Return(onboardedUser(), nil)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "experience description") &&
			strings.Contains(p, "tech-software_engineering professional")
	})).Return("  Led migration of billing services to Go, cutting latency 40%.  ", nil)

	improved, err := svc.ImproveEntry(context.Background(), "ext-1", "", "Did backend work")
	require.NoError(t, err)
	assert.Equal(t, "Led migration of billing services to Go, cutting latency 40%.", improved)
}

func TestImproveEntry_EmptyResponse(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	gen := &mocks.MockGenerator{}
	svc := usecase.NewResumeService(users, &mocks.MockResumeRepository{}, gen)

	users.On("FindByExternalID", mock.Anything, "ext-1").Return(onboardedUser(), nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return("```\n```", nil)

	_, err := svc.ImproveEntry(context.Background(), "ext-1", "education", "BSc CS")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestImproveEntry_RequiresOnboarding(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	gen := &mocks.MockGenerator{}
	svc := usecase.NewResumeService(users, &mocks.MockResumeRepository{}, gen)

	users.On("FindByExternalID", mock.Anything, "ext-1").Return(domain.User{ID: "u-1"}, nil)

	_, err := svc.ImproveEntry(context.Background(), "ext-1", "experience", "Did backend work")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestImproveEntry_EmptyCurrent(t *testing.T) {
	t.Parallel()
	users := &mocks.MockUserRepository{}
	svc := usecase.NewResumeService(users, &mocks.MockResumeRepository{}, &mocks.MockGenerator{})

	_, err := svc.ImproveEntry(context.Background(), "ext-1", "experience", "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	users.AssertNotCalled(t, "FindByExternalID", mock.Anything, mock.Anything)
}
