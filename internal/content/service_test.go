package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/logging"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/response"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/topic"
)

type fakeUpdater struct {
	fields map[string]map[topic.ContentField]string
	err    error
}

func (f *fakeUpdater) UpdateContent(_ context.Context, id string, field topic.ContentField, content string) error {
	if f.err != nil {
		return f.err
	}
	row, ok := f.fields[id]
	if !ok {
		return topic.ErrNotFound
	}
	row[field] = content
	return nil
}

func newUpdater() *fakeUpdater {
	return &fakeUpdater{fields: map[string]map[topic.ContentField]string{"intro": {}}}
}

func TestContentService_Update(t *testing.T) {
	tests := []struct {
		name     string
		req      UpdateContentRequest
		storeErr error
		wantCode response.ResponseCode
	}{
		{"更新讲解", UpdateContentRequest{SubTopicID: "intro", Field: "explanation", Content: "<p>new</p>"}, nil, response.Success},
		{"更新实现", UpdateContentRequest{SubTopicID: "intro", Field: "implementation", Content: ""}, nil, response.Success},
		{"不支持的字段", UpdateContentRequest{SubTopicID: "intro", Field: "example", Content: "x"}, nil, response.InvalidParameter},
		{"课时不存在", UpdateContentRequest{SubTopicID: "missing", Field: "explanation", Content: "x"}, nil, response.NotFound},
		{"存储故障", UpdateContentRequest{SubTopicID: "intro", Field: "explanation", Content: "x"}, errors.New("db down"), response.Fail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newUpdater()
			store.err = tt.storeErr
			err := NewContentService(store, logging.Discard()).Update(context.Background(), tt.req)
			if tt.wantCode == response.Success {
				require.Nil(t, err)
				assert.Equal(t, tt.req.Content, store.fields["intro"][topic.ContentField(tt.req.Field)])
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestContentHandler_Binding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewContentHandler(NewContentService(newUpdater(), logging.Discard())))

	tests := []struct {
		name     string
		body     string
		wantCode response.ResponseCode
	}{
		{"合法请求", `{"sub_topic_id":"intro","field":"explanation","content":"hi"}`, response.Success},
		{"字段不在枚举中", `{"sub_topic_id":"intro","field":"example","content":"hi"}`, response.InvalidParameter},
		{"缺少课时", `{"field":"explanation","content":"hi"}`, response.InvalidParameter},
		{"非法 JSON", `{`, response.ParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/content", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			var got response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}
