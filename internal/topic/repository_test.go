package topic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/testutils"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/topic"
)

func TestRepository_SectionLifecycle(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := topic.NewRepository(db)
	ctx := context.Background()

	first := &topicModel.TopicSection{ID: "repo-first", Title: "First"}
	second := &topicModel.TopicSection{ID: "repo-second", Title: "Second"}
	require.NoError(t, repo.CreateSection(ctx, first))
	require.NoError(t, repo.CreateSection(ctx, second))
	assert.Equal(t, first.Order+1, second.Order)

	err := repo.CreateSection(ctx, &topicModel.TopicSection{ID: "repo-first", Title: "Dup"})
	assert.ErrorIs(t, err, topic.ErrAlreadyExists)

	a := &topicModel.SubTopic{ID: "repo-a", Title: "A", TopicSectionID: first.ID}
	b := &topicModel.SubTopic{ID: "repo-b", Title: "B", TopicSectionID: first.ID}
	require.NoError(t, repo.CreateSubTopic(ctx, a))
	require.NoError(t, repo.CreateSubTopic(ctx, b))
	assert.Equal(t, 1, a.Order)
	assert.Equal(t, 2, b.Order)

	err = repo.CreateSubTopic(ctx, &topicModel.SubTopic{ID: "repo-c", Title: "C", TopicSectionID: "missing"})
	assert.ErrorIs(t, err, topic.ErrSectionNotFound)

	sections, err := repo.ListSections(ctx)
	require.NoError(t, err)
	var found *topicModel.TopicSection
	for i := range sections {
		if sections[i].ID == first.ID {
			found = &sections[i]
		}
	}
	require.NotNil(t, found)
	require.Len(t, found.SubTopics, 2)
	assert.Equal(t, "repo-a", found.SubTopics[0].ID)
	assert.Equal(t, "repo-b", found.SubTopics[1].ID)

	require.NoError(t, repo.DeleteSection(ctx, first.ID))
	_, err = repo.GetSubTopic(ctx, "repo-a")
	assert.ErrorIs(t, err, topic.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteSection(ctx, first.ID), topic.ErrNotFound)
}

func TestRepository_UpdateContent(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := topic.NewRepository(db)
	ctx := context.Background()

	section := testutils.CreateTestTopic(db)
	st := testutils.CreateTestSubTopic(db, section.ID)

	require.NoError(t, repo.UpdateContent(ctx, st.ID, topic.FieldImplementation, "<p>steps</p>"))
	got, err := repo.GetSubTopic(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>steps</p>", got.Implementation)
	assert.Equal(t, st.Explanation, got.Explanation)

	assert.Error(t, repo.UpdateContent(ctx, st.ID, topic.ContentField("example"), "x"))
	assert.ErrorIs(t, repo.UpdateContent(ctx, "missing", topic.FieldExplanation, "x"), topic.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteSubTopic(ctx, "missing"), topic.ErrNotFound)
}

func TestRepository_SeedAndPremiumFlags(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := topic.NewRepository(db)
	ctx := context.Background()

	sections := []topicModel.TopicSection{
		{ID: "seed-one", Title: "One", Order: 1, SubTopics: []topicModel.SubTopic{
			{ID: "seed-one-a", Title: "A", Order: 1},
			{ID: "seed-one-b", Title: "B", Order: 2},
		}},
		{ID: "seed-two", Title: "Two", Order: 2, SubTopics: []topicModel.SubTopic{
			{ID: "seed-two-a", Title: "A", Order: 1},
		}},
	}
	require.NoError(t, repo.SeedSections(ctx, sections))

	// 重复导入覆盖标题而不是报错
	sections[0].Title = "One (v2)"
	require.NoError(t, repo.SeedSections(ctx, sections))

	n, err := repo.MarkPremium(ctx, []string{"seed-one"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	st, err := repo.GetSubTopic(ctx, "seed-one-b")
	require.NoError(t, err)
	assert.True(t, st.IsPremium)
	assert.Equal(t, "seed-one", st.TopicSectionID)

	n, err = repo.UnlockAll(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(2))

	st, err = repo.GetSubTopic(ctx, "seed-one-a")
	require.NoError(t, err)
	assert.False(t, st.IsPremium)

	var titles []string
	require.NoError(t, db.Model(&topicModel.TopicSection{}).Where("id = ?", "seed-one").Pluck("title", &titles).Error)
	assert.Equal(t, []string{"One (v2)"}, titles)
}
