package topic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/config"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/admin"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/middleware"
	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/pkg"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/testutils"
)

const adminEmail = "admin@example.com"

// memoryStore 内存版 Store
type memoryStore struct {
	mu        sync.Mutex
	sections  map[string]*topicModel.TopicSection
	subTopics map[string]*topicModel.SubTopic
	err       error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sections:  map[string]*topicModel.TopicSection{},
		subTopics: map[string]*topicModel.SubTopic{},
	}
}

func (m *memoryStore) ListSections(context.Context) ([]topicModel.TopicSection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]topicModel.TopicSection, 0, len(m.sections))
	for _, s := range m.sections {
		cp := *s
		cp.SubTopics = nil
		for _, st := range m.subTopics {
			if st.TopicSectionID == s.ID {
				cp.SubTopics = append(cp.SubTopics, *st)
			}
		}
		sort.Slice(cp.SubTopics, func(i, j int) bool { return cp.SubTopics[i].Order < cp.SubTopics[j].Order })
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result, nil
}

func (m *memoryStore) GetSubTopic(_ context.Context, id string) (*topicModel.SubTopic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	st, ok := m.subTopics[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (m *memoryStore) CreateSection(_ context.Context, s *topicModel.TopicSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.sections[s.ID]; ok {
		return ErrAlreadyExists
	}
	s.Order = len(m.sections) + 1
	cp := *s
	m.sections[s.ID] = &cp
	return nil
}

func (m *memoryStore) DeleteSection(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sections[id]; !ok {
		return ErrNotFound
	}
	delete(m.sections, id)
	for k, st := range m.subTopics {
		if st.TopicSectionID == id {
			delete(m.subTopics, k)
		}
	}
	return nil
}

func (m *memoryStore) CreateSubTopic(_ context.Context, st *topicModel.SubTopic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sections[st.TopicSectionID]; !ok {
		return ErrSectionNotFound
	}
	if _, ok := m.subTopics[st.ID]; ok {
		return ErrAlreadyExists
	}
	count := 0
	for _, existing := range m.subTopics {
		if existing.TopicSectionID == st.TopicSectionID {
			count++
		}
	}
	st.Order = count + 1
	cp := *st
	m.subTopics[st.ID] = &cp
	return nil
}

func (m *memoryStore) DeleteSubTopic(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subTopics[id]; !ok {
		return ErrNotFound
	}
	delete(m.subTopics, id)
	return nil
}

func (m *memoryStore) UpdateContent(_ context.Context, id string, field ContentField, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.subTopics[id]
	if !ok {
		return ErrNotFound
	}
	switch field {
	case FieldExplanation:
		st.Explanation = content
	case FieldImplementation:
		st.Implementation = content
	}
	return nil
}

type fixture struct {
	svc     *TopicService
	store   *memoryStore
	users   *testutils.MemoryUserStore
	free    pkg.Principal
	premium pkg.Principal
	admin   pkg.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemoryStore()
	users := testutils.NewMemoryUserStore()
	free := testutils.NewTestUser(testutils.WithApproved(true))
	paid := testutils.NewTestUser(testutils.WithApproved(true), testutils.WithPremium(true))
	boss := testutils.NewTestUser(testutils.WithApproved(true), testutils.WithEmail(adminEmail))
	require.NoError(t, users.Create(context.Background(), free))
	require.NoError(t, users.Create(context.Background(), paid))
	require.NoError(t, users.Create(context.Background(), boss))

	svc := NewTopicService(store, users, admin.NewGate(adminEmail), logging.Discard())
	ctx := context.Background()
	_, berr := svc.CreateSection(ctx, CreateSectionRequest{ID: "basics", Title: "Basics"})
	require.Nil(t, berr)
	_, berr = svc.CreateSubTopic(ctx, CreateSubTopicRequest{ID: "intro", Title: "Intro", TopicSectionID: "basics"})
	require.Nil(t, berr)
	_, berr = svc.CreateSubTopic(ctx, CreateSubTopicRequest{ID: "advanced", Title: "Advanced", TopicSectionID: "basics"})
	require.Nil(t, berr)
	store.subTopics["advanced"].IsPremium = true

	return &fixture{
		svc:     svc,
		store:   store,
		users:   users,
		free:    pkg.Principal{UserID: free.ID, Email: free.Email},
		premium: pkg.Principal{UserID: paid.ID, Email: paid.Email, IsPremium: true},
		admin:   pkg.Principal{UserID: boss.ID, Email: boss.Email},
	}
}

func TestTopicService_List(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		principal  pkg.Principal
		wantLocked bool
	}{
		{"普通用户看到锁定标记", f.free, true},
		{"高级会员无锁定", f.premium, false},
		{"管理员无锁定", f.admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := f.svc.List(context.Background(), tt.principal)
			require.Nil(t, err)
			require.Len(t, sections, 1)
			subs := sections[0].SubTopics
			require.Len(t, subs, 2)
			assert.Equal(t, "intro", subs[0].ID)
			assert.False(t, subs[0].Locked)
			assert.Equal(t, "advanced", subs[1].ID)
			assert.True(t, subs[1].IsPremium)
			assert.Equal(t, tt.wantLocked, subs[1].Locked)
		})
	}
}

func TestTopicService_GetSubTopic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		principal pkg.Principal
		id        string
		wantCode  response.ResponseCode
	}{
		{"免费课时所有人可见", f.free, "intro", response.Success},
		{"普通用户访问高级课时", f.free, "advanced", response.Forbidden},
		{"高级会员访问高级课时", f.premium, "advanced", response.Success},
		{"管理员访问高级课时", f.admin, "advanced", response.Success},
		{"课时不存在", f.free, "missing", response.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := f.svc.GetSubTopic(ctx, tt.principal, tt.id)
			if tt.wantCode == response.Success {
				require.Nil(t, err)
				assert.Equal(t, tt.id, st.ID)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestTopicService_PremiumReadFresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 会话签发后才完成支付，会话中的 is_premium 仍为 false
	stale := f.free
	require.NoError(t, f.users.SetPremiumByEmail(ctx, stale.Email))

	st, err := f.svc.GetSubTopic(ctx, stale, "advanced")
	require.Nil(t, err)
	assert.Equal(t, "advanced", st.ID)

	// 会话声称是高级会员，但数据库里不是
	forged := pkg.Principal{UserID: 999, Email: "ghost@example.com", IsPremium: true}
	_, err = f.svc.GetSubTopic(ctx, forged, "advanced")
	require.NotNil(t, err)
	assert.Equal(t, response.Forbidden, err.Code)
}

func TestTopicService_Mutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("章节序号递增", func(t *testing.T) {
		s, err := f.svc.CreateSection(ctx, CreateSectionRequest{ID: "advanced-topics", Title: "Advanced"})
		require.Nil(t, err)
		assert.Equal(t, 2, s.Order)
	})

	t.Run("章节重复", func(t *testing.T) {
		_, err := f.svc.CreateSection(ctx, CreateSectionRequest{ID: "basics", Title: "Again"})
		require.NotNil(t, err)
		assert.Equal(t, response.Conflict, err.Code)
	})

	t.Run("空白 id", func(t *testing.T) {
		_, err := f.svc.CreateSection(ctx, CreateSectionRequest{ID: "  ", Title: "Blank"})
		require.NotNil(t, err)
		assert.Equal(t, response.InvalidParameter, err.Code)
	})

	t.Run("课时带默认正文", func(t *testing.T) {
		st, err := f.svc.CreateSubTopic(ctx, CreateSubTopicRequest{ID: "third", Title: "Third", TopicSectionID: "basics"})
		require.Nil(t, err)
		assert.Equal(t, 3, st.Order)
		assert.Equal(t, DefaultIntroduction, st.Introduction)
		assert.Equal(t, DefaultExample, st.Example)
		assert.False(t, st.IsPremium)
	})

	t.Run("章节不存在", func(t *testing.T) {
		_, err := f.svc.CreateSubTopic(ctx, CreateSubTopicRequest{ID: "orphan", Title: "Orphan", TopicSectionID: "nope"})
		require.NotNil(t, err)
		assert.Equal(t, response.NotFound, err.Code)
	})

	t.Run("删除课时", func(t *testing.T) {
		require.Nil(t, f.svc.DeleteSubTopic(ctx, "third"))
		err := f.svc.DeleteSubTopic(ctx, "third")
		require.NotNil(t, err)
		assert.Equal(t, response.NotFound, err.Code)
	})

	t.Run("删除章节同时删除课时", func(t *testing.T) {
		require.Nil(t, f.svc.DeleteSection(ctx, "basics"))
		_, err := f.svc.GetSubTopic(ctx, f.admin, "intro")
		require.NotNil(t, err)
		assert.Equal(t, response.NotFound, err.Code)
	})

	t.Run("存储故障", func(t *testing.T) {
		f.store.err = errors.New("connection reset")
		defer func() { f.store.err = nil }()
		_, err := f.svc.List(ctx, f.free)
		require.NotNil(t, err)
		assert.Equal(t, response.Fail, err.Code)
	})
}

func TestTopicRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = &config.AppConfig{JWT: config.JWTConfig{Secret: "topic-secret", ExpireTime: 1}}
	f := newFixture(t)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewTopicHandler(f.svc), admin.NewGate(adminEmail))

	freeToken, err := pkg.GenerateAccessToken(f.free)
	require.NoError(t, err)
	adminToken, err := pkg.GenerateAccessToken(f.admin)
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		token    string
		wantCode response.ResponseCode
	}{
		{"未登录浏览目录", http.MethodGet, "/api/v1/topics", "", "", response.Unauthorized},
		{"登录浏览目录", http.MethodGet, "/api/v1/topics", "", freeToken, response.Success},
		{"普通用户读取高级课时", http.MethodGet, "/api/v1/subtopics/advanced", "", freeToken, response.Forbidden},
		{"普通用户新建章节", http.MethodPost, "/api/v1/topics", `{"id":"x","title":"X"}`, freeToken, response.Forbidden},
		{"管理员新建章节", http.MethodPost, "/api/v1/topics", `{"id":"x","title":"X"}`, adminToken, response.Success},
		{"管理员新建课时缺少章节", http.MethodPost, "/api/v1/subtopics", `{"id":"y","title":"Y"}`, adminToken, response.InvalidParameter},
		{"管理员删除课时", http.MethodDelete, "/api/v1/subtopics/intro", "", adminToken, response.Success},
		{"普通用户删除章节", http.MethodDelete, "/api/v1/topics/basics", "", freeToken, response.Forbidden},
		{"管理员删除不存在的章节", http.MethodDelete, "/api/v1/topics/nope", "", adminToken, response.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: tt.token})
			}
			r.ServeHTTP(w, req)

			var got response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}

	// 普通用户的请求不应修改任何数据
	_, ok := f.store.sections["basics"]
	assert.True(t, ok)
}
