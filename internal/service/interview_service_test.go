package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/model"
	"github.com/dhanyabad11/PrepForge-Backend/internal/repository"
	"github.com/dhanyabad11/PrepForge-Backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenInterviewRepo struct{ repository.InterviewRepository }

func (brokenInterviewRepo) Create(context.Context, *model.Interview) error {
	return errors.New("connection reset by peer")
}

func newInterviewService(t *testing.T, gen *fakeGenerator) (InterviewService, repository.InterviewRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	interviews := repository.NewInterviewRepository(db)
	generator := NewQuestionGeneratorService(gen, newMemo(), testConfig())
	return NewInterviewService(generator, repository.NewUserRepository(db), interviews), interviews
}

func TestGenerateInterviewPersists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInterviewService(t, &fakeGenerator{response: mixedQuestions})

	resp, err := svc.GenerateInterview(ctx, dto.GenerateQuestionsRequest{
		JobRole: " Backend Engineer ", Company: "Acme", NumberOfQuestions: 3, QuestionType: "technical", UserID: "alice",
	})
	require.NoError(t, err)
	assert.True(t, resp.Saved)
	assert.False(t, resp.Offline)
	assert.False(t, resp.Fallback)
	require.NotNil(t, resp.InterviewID)
	require.Len(t, resp.Questions, 3)

	detail, err := svc.GetDetails(ctx, *resp.InterviewID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", detail.JobRole)
	assert.Equal(t, model.InterviewStatusInProgress, detail.Status)
	assert.Equal(t, resp.Questions, detail.Questions)
	assert.Empty(t, detail.Answers)

	history, err := svc.GetHistory(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].QuestionCount)
}

func TestGenerateInterviewDegradesWhenSaveFails(t *testing.T) {
	db := testutil.NewDB(t)
	generator := NewQuestionGeneratorService(&fakeGenerator{err: errors.New("down")}, newMemo(), testConfig())
	svc := NewInterviewService(generator, repository.NewUserRepository(db),
		brokenInterviewRepo{repository.NewInterviewRepository(db)})

	resp, err := svc.GenerateInterview(context.Background(), dto.GenerateQuestionsRequest{
		JobRole: "SRE", Company: "Acme", UserID: "alice",
	})
	require.NoError(t, err)
	assert.False(t, resp.Saved)
	assert.True(t, resp.Offline)
	assert.True(t, resp.Fallback)
	assert.Nil(t, resp.InterviewID)
	assert.Len(t, resp.Questions, DefaultQuestionCount)
}

func TestCompleteInterview(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInterviewService(t, &fakeGenerator{response: mixedQuestions})
	resp, err := svc.GenerateInterview(ctx, dto.GenerateQuestionsRequest{JobRole: "Backend", Company: "Acme", UserID: "alice"})
	require.NoError(t, err)
	id := *resp.InterviewID

	_, err = svc.Complete(ctx, id, dto.CompleteInterviewRequest{UserID: "mallory"})
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))

	duration := 1800
	detail, err := svc.Complete(ctx, id, dto.CompleteInterviewRequest{UserID: "alice", Duration: &duration})
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStatusCompleted, detail.Status)
	require.NotNil(t, detail.Duration)
	assert.Equal(t, 1800, *detail.Duration)

	_, err = svc.GetDetails(ctx, id+42)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}
