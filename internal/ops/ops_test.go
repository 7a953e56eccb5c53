package ops

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/testutils"
)

const adminEmail = "admin@example.com"

const sampleCurriculum = `
sections:
  - id: basics
    title: Pega Basics
    sub_topics:
      - id: intro
        title: Introduction
        introduction: What Pega is
        explanation: Case management
      - id: data-model
        title: Data Model
        ppt_url: https://cdn.example.com/data-model.pptx
  - id: integration
    title: Integration
    sub_topics:
      - id: connectors
        title: Connectors
        premium: true
`

type fakeCurriculum struct {
	seeded   []topicModel.TopicSection
	premium  []string
	unlocked bool
	err      error
}

func (f *fakeCurriculum) SeedSections(_ context.Context, sections []topicModel.TopicSection) error {
	f.seeded = sections
	return f.err
}

func (f *fakeCurriculum) MarkPremium(_ context.Context, ids []string) (int64, error) {
	f.premium = ids
	return int64(len(ids) * 2), f.err
}

func (f *fakeCurriculum) UnlockAll(context.Context) (int64, error) {
	f.unlocked = true
	return 7, f.err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "curriculum.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newOperator(users *testutils.MemoryUserStore, curriculum *fakeCurriculum) (*Operator, *bytes.Buffer) {
	var out bytes.Buffer
	return NewOperator(users, curriculum, adminEmail, &out), &out
}

func TestLoadCurriculum(t *testing.T) {
	sections, err := LoadCurriculum(writeFile(t, sampleCurriculum))
	require.NoError(t, err)
	require.Len(t, sections, 2)

	basics := sections[0]
	assert.Equal(t, "basics", basics.ID)
	assert.Equal(t, 1, basics.Order)
	require.Len(t, basics.SubTopics, 2)
	assert.Equal(t, "intro", basics.SubTopics[0].ID)
	assert.Equal(t, "Case management", basics.SubTopics[0].Explanation)
	assert.Nil(t, basics.SubTopics[0].PptURL)
	assert.Equal(t, 2, basics.SubTopics[1].Order)
	require.NotNil(t, basics.SubTopics[1].PptURL)
	assert.Equal(t, "https://cdn.example.com/data-model.pptx", *basics.SubTopics[1].PptURL)

	integration := sections[1]
	assert.Equal(t, 2, integration.Order)
	assert.Equal(t, "integration", integration.SubTopics[0].TopicSectionID)
	assert.True(t, integration.SubTopics[0].IsPremium)
}

func TestLoadCurriculum_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"没有章节", "sections: []\n", "没有章节"},
		{"章节缺少标题", "sections:\n  - id: a\n", "缺少 id 或 title"},
		{"课时缺少 id", "sections:\n  - id: a\n    title: A\n    sub_topics:\n      - title: x\n", "缺少 id 或 title"},
		{"课时 id 重复", "sections:\n  - id: a\n    title: A\n    sub_topics:\n      - id: x\n        title: X\n  - id: b\n    title: B\n    sub_topics:\n      - id: x\n        title: X\n", "重复"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCurriculum(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := LoadCurriculum(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOperator_ApproveAdmin(t *testing.T) {
	users := testutils.NewMemoryUserStore(testutils.NewTestUser(testutils.WithEmail(adminEmail)))
	op, out := newOperator(users, &fakeCurriculum{})

	require.NoError(t, op.Run(context.Background(), []string{"approve-admin"}))
	u, err := users.GetByEmail(context.Background(), adminEmail)
	require.NoError(t, err)
	assert.True(t, u.IsApproved)
	assert.Contains(t, out.String(), adminEmail)

	require.NoError(t, op.Run(context.Background(), []string{"inspect-admin"}))
	assert.Contains(t, out.String(), `"is_approved": true`)
	assert.NotContains(t, out.String(), "password")
}

func TestOperator_ApproveAdmin_Missing(t *testing.T) {
	op, _ := newOperator(testutils.NewMemoryUserStore(), &fakeCurriculum{})
	err := op.Run(context.Background(), []string{"approve-admin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "不存在")
}

func TestOperator_Curriculum(t *testing.T) {
	curriculum := &fakeCurriculum{}
	op, out := newOperator(testutils.NewMemoryUserStore(), curriculum)
	ctx := context.Background()

	require.NoError(t, op.Run(ctx, []string{"seed", "-file", writeFile(t, sampleCurriculum)}))
	assert.Len(t, curriculum.seeded, 2)
	assert.Contains(t, out.String(), "2 个章节，3 个课时")

	require.NoError(t, op.Run(ctx, []string{"mark-premium", "integration", "advanced"}))
	assert.Equal(t, []string{"integration", "advanced"}, curriculum.premium)

	require.NoError(t, op.Run(ctx, []string{"unlock-all"}))
	assert.True(t, curriculum.unlocked)

	assert.ErrorIs(t, op.Run(ctx, []string{"mark-premium"}), ErrUsage)

	curriculum.err = errors.New("db down")
	assert.Error(t, op.Run(ctx, []string{"unlock-all"}))
}

func TestOperator_SetPassword(t *testing.T) {
	users := testutils.NewMemoryUserStore(testutils.NewTestUser(testutils.WithEmail("alice@x.com")))
	op, _ := newOperator(users, &fakeCurriculum{})
	ctx := context.Background()

	original := readPassword
	t.Cleanup(func() { readPassword = original })

	tests := []struct {
		name     string
		args     []string
		password string
		wantErr  bool
	}{
		{"成功", []string{"alice@x.com"}, "newpass1", false},
		{"密码过短", []string{"alice@x.com"}, "123", true},
		{"用户不存在", []string{"ghost@x.com"}, "newpass1", true},
		{"缺少邮箱", nil, "newpass1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readPassword = func(int) ([]byte, error) { return []byte(tt.password), nil }
			err := op.Run(ctx, append([]string{"set-password"}, tt.args...))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			u, err := users.GetByEmail(ctx, "alice@x.com")
			require.NoError(t, err)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(tt.password)))
		})
	}
}

func TestOperator_Usage(t *testing.T) {
	op, out := newOperator(testutils.NewMemoryUserStore(), &fakeCurriculum{})
	assert.ErrorIs(t, op.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, op.Run(context.Background(), []string{"drop-db"}), ErrUsage)
	assert.Contains(t, out.String(), "未知命令")
	assert.NoError(t, op.Run(context.Background(), []string{"help"}))
}

func TestLoadCurriculum_ExampleFile(t *testing.T) {
	sections, err := LoadCurriculum(filepath.Join("..", "..", "curriculum.example.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, sections)
	for _, s := range sections {
		assert.NotEmpty(t, s.SubTopics, s.ID)
	}
}
