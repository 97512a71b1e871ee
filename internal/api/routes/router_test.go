package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Chirp/internal/core/engagement"
	"Chirp/internal/core/posts"
	"Chirp/internal/core/users"
	"Chirp/internal/db/memory"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	log := memory.NewEventLog()
	userService := users.NewUserService(memory.NewUserRepository(), nil, nil)
	postService := posts.NewPostService(log, userService, nil)
	engagementService := engagement.NewService(log, postService, userService, nil)

	return &testServer{t: t, router: NewRouter(Services{
		Posts:      postService,
		Engagement: engagementService,
		Users:      userService,
	}, nil)}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (s *testServer) login() string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/login", nil)
	require.Equal(s.t, http.StatusOK, w.Code)
	userID, _ := decode(s.t, w)["userId"].(string)
	require.NotEmpty(s.t, userID)
	return userID
}

func (s *testServer) createPost(userID, content string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/posts", map[string]string{"userId": userID, "content": content})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	postID, _ := decode(s.t, w)["postId"].(string)
	return postID
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	first := s.login()
	second := s.login()
	assert.True(t, strings.HasPrefix(first, "did:plc:"))
	assert.NotEqual(t, first, second)
}

func TestCreateAndGetPost(t *testing.T) {
	s := newTestServer(t)
	alice := s.login()

	w := s.do(http.MethodPost, "/posts", map[string]string{"userId": alice, "content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, alice, created["userId"])
	assert.Equal(t, "hello", created["content"])
	assert.NotEmpty(t, created["createdAt"])

	w = s.do(http.MethodGet, "/posts/"+created["postId"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)
	assert.Equal(t, "hello", view["content"])
	assert.Equal(t, float64(0), view["likeCount"])
	assert.Equal(t, float64(0), view["repostCount"])
	assert.Equal(t, float64(0), view["replyCount"])
	assert.Nil(t, view["isLikedByCurrentUser"])
	assert.Nil(t, view["isRepostedByCurrentUser"])
}

func TestCreatePost_Errors(t *testing.T) {
	s := newTestServer(t)
	alice := s.login()

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{name: "blank content", body: map[string]string{"userId": alice, "content": "   "}, status: http.StatusBadRequest, code: "InvalidContent"},
		{name: "too long", body: map[string]string{"userId": alice, "content": strings.Repeat("x", 281)}, status: http.StatusBadRequest, code: "InvalidContent"},
		{name: "unknown author", body: map[string]string{"userId": "did:plc:nobody", "content": "hi"}, status: http.StatusBadRequest, code: "AuthorNotFound"},
		{name: "missing user", body: map[string]string{"content": "hi"}, status: http.StatusBadRequest, code: "InvalidRequest"},
		{name: "unknown field", body: map[string]string{"userId": alice, "content": "hi", "title": "x"}, status: http.StatusBadRequest, code: "InvalidRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/posts", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["error"])
		})
	}
}

func TestCreatePost_MalformedJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"userId":`))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPost_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/posts/3kmissing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFound", decode(t, w)["error"])
}

func TestDeletePost(t *testing.T) {
	s := newTestServer(t)
	alice := s.login()
	bob := s.login()
	postID := s.createPost(alice, "x")

	w := s.do(http.MethodDelete, "/posts/"+postID, map[string]string{"userId": bob})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/posts/"+postID, nil).Code)

	w = s.do(http.MethodDelete, "/posts/"+postID, map[string]string{"userId": alice})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/posts/"+postID, nil).Code)

	w = s.do(http.MethodDelete, "/posts/"+postID, map[string]string{"userId": alice})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/posts/"+postID+"/likes", map[string]string{"userId": bob})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PostNotFound", decode(t, w)["error"])
}

func TestDeletePost_UserIDFromQuery(t *testing.T) {
	s := newTestServer(t)
	alice := s.login()
	postID := s.createPost(alice, "x")

	w := s.do(http.MethodDelete, "/posts/"+postID+"?userId="+alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLikes(t *testing.T) {
	s := newTestServer(t)
	alice := s.login()
	bob := s.login()
	postID := s.createPost(alice, "x")

	w := s.do(http.MethodPost, "/posts/"+postID+"/likes", map[string]string{"userId": bob})
	require.Equal(t, http.StatusCreated, w.Code)
	liked := decode(t, w)
	assert.Equal(t, postID, liked["postId"])
	assert.Equal(t, bob, liked["userId"])
	assert.NotEmpty(t, liked["likedAt"])

	// Duplicate like is fine
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/posts/"+postID+"/likes", map[string]string{"userId": bob}).Code)

	view := decode(t, s.do(http.MethodGet, "/posts/"+postID+"?userId="+bob, nil))
	assert.Equal(t, float64(1), view["likeCount"])
	assert.Equal(t, true, view["isLikedByCurrentUser"])
	assert.Equal(t, false, view["isRepostedByCurrentUser"])

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/posts/"+postID+"/likes", map[string]string{"userId": bob}).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/posts/"+postID+"/likes", map[string]string{"userId": bob}).Code)

	view = decode(t, s.do(http.MethodGet, "/posts/"+postID+"?userId="+bob, nil))
	assert.Equal(t, float64(0), view["likeCount"])
	assert.Equal(t, false, view["isLikedByCurrentUser"])

	w = s.do(http.MethodPost, "/posts/"+postID+"/likes", map[string]string{"userId": "did:plc:nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UserNotFound", decode(t, w)["error"])

	w = s.do(http.MethodPost, "/posts/"+postID+"/likes", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReposts(t *testing.T) {
	s := newTestServer(t)
	alice := s.login()
	bob := s.login()
	postID := s.createPost(alice, "x")

	w := s.do(http.MethodPost, "/posts/"+postID+"/reposts", map[string]string{"userId": bob})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decode(t, w)["repostedAt"])

	view := decode(t, s.do(http.MethodGet, "/posts/"+postID+"?userId="+bob, nil))
	assert.Equal(t, float64(1), view["repostCount"])
	assert.Equal(t, true, view["isRepostedByCurrentUser"])
	assert.Equal(t, float64(0), view["likeCount"])

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/posts/"+postID+"/reposts", map[string]string{"userId": bob}).Code)

	view = decode(t, s.do(http.MethodGet, "/posts/"+postID, nil))
	assert.Equal(t, float64(0), view["repostCount"])
}

func TestReplies(t *testing.T) {
	s := newTestServer(t)
	alice := s.login()
	carol := s.login()
	parentID := s.createPost(alice, "root")

	w := s.do(http.MethodPost, "/posts/"+parentID+"/replies", map[string]string{"userId": carol, "content": "hi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reply := decode(t, w)
	assert.Equal(t, parentID, reply["replyToPostId"])
	assert.Equal(t, carol, reply["userId"])
	replyID := reply["replyPostId"].(string)

	w = s.do(http.MethodGet, "/posts/"+parentID+"/replies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Replies []map[string]interface{} `json:"replies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Replies, 1)
	assert.Equal(t, replyID, list.Replies[0]["postId"])

	w = s.do(http.MethodGet, "/posts/"+parentID+"/replies?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/posts/3kmissing/replies", map[string]string{"userId": carol, "content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ParentNotFound", decode(t, w)["error"])

	w = s.do(http.MethodGet, "/posts/3kmissing/replies", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	view := decode(t, s.do(http.MethodGet, "/posts/"+parentID, nil))
	assert.Equal(t, float64(1), view["replyCount"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/metrics", nil).Code)
}

func TestCancelledRequest(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/posts/3kmissing", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "InternalServerError", decode(t, w)["error"])
}
