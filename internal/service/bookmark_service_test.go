package service

import (
	"context"
	"testing"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/repository"
	"github.com/dhanyabad11/PrepForge-Backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "system design"}, normalizeTags([]string{" Go", "system design", "GO", "", "  "}))
	assert.Equal(t, []string{}, normalizeTags(nil))
}

func TestBookmarkLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewBookmarkService(repository.NewUserRepository(db), repository.NewSavedQuestionSetRepository(db)).(*bookmarkService)
	practicedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return practicedAt }

	saved, err := svc.Save(ctx, dto.SaveQuestionSetRequest{
		UserID: "alice",
		Name:   " Go basics ",
		Questions: []dto.QuestionInput{
			{Question: "Explain goroutines.", Type: "technical"},
			{Question: "Explain channels.", Type: "technical", Difficulty: "hard"},
		},
		Tags: []string{"Go", "go", "Concurrency"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Go basics", saved.Name)
	assert.Equal(t, []string{"concurrency", "go"}, saved.Tags)
	assert.Equal(t, 1, saved.Questions[0].ID)
	assert.Equal(t, "medium", saved.Questions[0].Difficulty)
	assert.Equal(t, "hard", saved.Questions[1].Difficulty)

	_, err = svc.ToggleFavorite(ctx, saved.ID, "mallory")
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))

	toggled, err := svc.ToggleFavorite(ctx, saved.ID, "alice")
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	favorites, err := svc.ListForUser(ctx, "alice", true)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	practiced, err := svc.RecordPractice(ctx, saved.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, practiced.PracticeCount)
	require.NotNil(t, practiced.LastPracticedAt)
	assert.True(t, practicedAt.Equal(*practiced.LastPracticedAt))

	toggled, err = svc.ToggleFavorite(ctx, saved.ID, "alice")
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
	favorites, err = svc.ListForUser(ctx, "alice", true)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	assert.True(t, apperror.IsCode(svc.Delete(ctx, saved.ID, "mallory"), apperror.CodeNotFound))
	require.NoError(t, svc.Delete(ctx, saved.ID, "alice"))
	assert.True(t, apperror.IsCode(svc.Delete(ctx, saved.ID, "alice"), apperror.CodeNotFound))

	all, err := svc.ListForUser(ctx, "alice", false)
	require.NoError(t, err)
	assert.Empty(t, all)
}
