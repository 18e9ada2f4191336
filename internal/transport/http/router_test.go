package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"
	"time"

	"conduit/internal/logger"
	"conduit/internal/model"
	"conduit/internal/repository/memory"
	"conduit/internal/service"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	router, err := NewAPI(Deps{
		Store:        memory.NewStore(),
		Tokens:       service.NewTokenService("test-secret", time.Hour),
		AuthScheme:   "Token",
		MaxBodyBytes: 1 << 20,
		Log:          logger.Discard(),
	})
	if err != nil {
		t.Fatalf("NewAPI() error = %v", err)
	}
	return &testAPI{t: t, handler: router}
}

// do sends body as-is when it is a string and JSON-encodes it otherwise.
func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(username, email, password string) model.UserBody {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/users", "", map[string]any{
		"user": map[string]any{"username": username, "email": email, "password": password},
	})
	if rec.Code != http.StatusCreated {
		a.t.Fatalf("register %s: status = %d, body = %s", username, rec.Code, rec.Body)
	}
	var resp model.UserResponse
	decode(a.t, rec, &resp)
	return resp.User
}

func (a *testAPI) createArticle(token, title string, tags ...string) model.ArticleView {
	a.t.Helper()

	article := map[string]any{"title": title, "description": "about " + title, "body": "text of " + title}
	if len(tags) > 0 {
		article["tagList"] = tags
	}
	rec := a.do(http.MethodPost, "/articles", token, map[string]any{"article": article})
	if rec.Code != http.StatusCreated {
		a.t.Fatalf("create %q: status = %d, body = %s", title, rec.Code, rec.Body)
	}
	var resp model.ArticleResponse
	decode(a.t, rec, &resp)
	return resp.Article
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %s: %v", rec.Body, err)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body)
	}
}

func assertJSON(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	var got, exp any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %s", rec.Body)
	}
	if err := json.Unmarshal([]byte(want), &exp); err != nil {
		t.Fatalf("bad expectation %s: %v", want, err)
	}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("body = %s, want %s", rec.Body, want)
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/health", "", nil)

	assertStatus(t, rec, http.StatusOK)
	assertJSON(t, rec, `{"status":"ok"}`)
}

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/users", "", map[string]any{
		"user": map[string]any{"username": "jake", "email": "jake@jake.jake", "password": "jakejake"},
	})
	assertStatus(t, rec, http.StatusCreated)
	var registered model.UserResponse
	decode(t, rec, &registered)
	if registered.User.Username != "jake" || registered.User.Email != "jake@jake.jake" || registered.User.Token == "" {
		t.Fatalf("registered user = %+v", registered.User)
	}
	if got := rec.Header().Get("Authorization"); got != "Token "+registered.User.Token {
		t.Errorf("Authorization header = %q", got)
	}

	rec = api.do(http.MethodPost, "/users/login", "", map[string]any{
		"user": map[string]any{"email": "jake@jake.jake", "password": "jakejake"},
	})
	assertStatus(t, rec, http.StatusOK)
	var login model.UserResponse
	decode(t, rec, &login)
	if login.User.Token == "" {
		t.Fatal("login returned no token")
	}

	rec = api.do(http.MethodGet, "/user", login.User.Token, nil)
	assertStatus(t, rec, http.StatusOK)
	var current model.UserResponse
	decode(t, rec, &current)
	if current.User.Email != "jake@jake.jake" || current.User.Token != login.User.Token {
		t.Errorf("current user = %+v", current.User)
	}
}

func TestLoginFailures(t *testing.T) {
	api := newTestAPI(t)
	api.register("jake", "jake@jake.jake", "jakejake")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "jake@jake.jake", password: "wrongpass"},
		{name: "unknown email", email: "nobody@jake.jake", password: "jakejake"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/users/login", "", map[string]any{
				"user": map[string]any{"email": tt.email, "password": tt.password},
			})
			assertStatus(t, rec, http.StatusUnprocessableEntity)
			assertJSON(t, rec, `{"errors":{"email or password":["is invalid"]}}`)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)
	api.register("jake", "jake@jake.jake", "jakejake")

	tests := []struct {
		name string
		user map[string]any
		want string
	}{
		{
			name: "duplicate email",
			user: map[string]any{"username": "other", "email": "jake@jake.jake", "password": "password1"},
			want: `{"errors":{"email":["has already been taken"]}}`,
		},
		{
			name: "duplicate username",
			user: map[string]any{"username": "jake", "email": "other@jake.jake", "password": "password1"},
			want: `{"errors":{"username":["has already been taken"]}}`,
		},
		{
			name: "malformed email",
			user: map[string]any{"username": "newuser", "email": "newuser@example", "password": "password1"},
			want: `{"errors":{"email":["Not valid email"]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/users", "", map[string]any{"user": tt.user})
			assertStatus(t, rec, http.StatusUnprocessableEntity)
			assertJSON(t, rec, tt.want)
		})
	}
}

func TestInvalidJSON(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/users", "", `{"user": `)

	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertJSON(t, rec, `{"errors":{"request":["is not valid JSON"]}}`)
}

func TestUpdateUser(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")
	api.register("jane", "jane@jane.jane", "janejane")

	t.Run("anonymous", func(t *testing.T) {
		rec := api.do(http.MethodPut, "/user", "", `{"user":{"bio":"x"}}`)
		assertStatus(t, rec, http.StatusUnauthorized)
		assertJSON(t, rec, `{"errors":{"authorization":["authentication required"]}}`)
	})

	t.Run("taken username", func(t *testing.T) {
		rec := api.do(http.MethodPut, "/user", jake.Token, `{"user":{"username":"jane"}}`)
		assertStatus(t, rec, http.StatusUnprocessableEntity)
		assertJSON(t, rec, `{"errors":{"username":["has already been taken"]}}`)
	})

	t.Run("bio and password", func(t *testing.T) {
		rec := api.do(http.MethodPut, "/user", jake.Token, `{"user":{"bio":"I work at statefarm","password":"newpassword"}}`)
		assertStatus(t, rec, http.StatusOK)
		var resp model.UserResponse
		decode(t, rec, &resp)
		if resp.User.Bio != "I work at statefarm" {
			t.Errorf("bio = %q", resp.User.Bio)
		}

		rec = api.do(http.MethodPost, "/users/login", "", `{"user":{"email":"jake@jake.jake","password":"newpassword"}}`)
		assertStatus(t, rec, http.StatusOK)
	})
}

func TestAuthorizationSchemes(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "token scheme", header: "Token " + jake.Token, want: http.StatusOK},
		{name: "bearer scheme", header: "Bearer " + jake.Token, want: http.StatusOK},
		{name: "lowercase scheme", header: "token " + jake.Token, want: http.StatusOK},
		{name: "unknown scheme", header: "Basic " + jake.Token, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Token not-a-jwt", want: http.StatusUnauthorized},
		{name: "missing", header: "", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			api.handler.ServeHTTP(rec, req)
			assertStatus(t, rec, tt.want)
		})
	}
}

func TestProfilesAndFollow(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")
	api.register("jane", "jane@jane.jane", "janejane")

	rec := api.do(http.MethodGet, "/profiles/nobody", "", nil)
	assertStatus(t, rec, http.StatusNotFound)

	rec = api.do(http.MethodPost, "/profiles/jane/follow", "", nil)
	assertStatus(t, rec, http.StatusForbidden)
	assertJSON(t, rec, `{"errors":{"authorization":["permission denied"]}}`)

	for i := 0; i < 2; i++ {
		rec = api.do(http.MethodPost, "/profiles/jane/follow", jake.Token, nil)
		assertStatus(t, rec, http.StatusOK)
		assertJSON(t, rec, `{"profile":{"username":"jane","bio":"","image":"","following":true}}`)
	}

	rec = api.do(http.MethodGet, "/profiles/jane", "", nil)
	assertJSON(t, rec, `{"profile":{"username":"jane","bio":"","image":"","following":false}}`)

	for i := 0; i < 2; i++ {
		rec = api.do(http.MethodDelete, "/profiles/jane/follow", jake.Token, nil)
		assertStatus(t, rec, http.StatusOK)
		assertJSON(t, rec, `{"profile":{"username":"jane","bio":"","image":"","following":false}}`)
	}
}

func TestArticleSlugs(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")

	first := api.createArticle(jake.Token, "How to train your dragon")
	second := api.createArticle(jake.Token, "How to Train Your Dragon!")
	if first.Slug == second.Slug {
		t.Fatalf("both articles got slug %q", first.Slug)
	}

	for _, a := range []model.ArticleView{first, second} {
		rec := api.do(http.MethodGet, "/articles/"+a.Slug, "", nil)
		assertStatus(t, rec, http.StatusOK)
		var resp model.ArticleResponse
		decode(t, rec, &resp)
		if resp.Article.Title != a.Title {
			t.Errorf("GET %s title = %q, want %q", a.Slug, resp.Article.Title, a.Title)
		}
	}

	rec := api.do(http.MethodPut, "/articles/"+first.Slug, jake.Token, `{"article":{"body":"new body"}}`)
	assertStatus(t, rec, http.StatusOK)
	var kept model.ArticleResponse
	decode(t, rec, &kept)
	if kept.Article.Slug != first.Slug || kept.Article.Body != "new body" {
		t.Errorf("update without title: slug %q body %q", kept.Article.Slug, kept.Article.Body)
	}

	rec = api.do(http.MethodPut, "/articles/"+first.Slug, jake.Token, `{"article":{"title":"Fly, dragon"}}`)
	assertStatus(t, rec, http.StatusOK)
	var renamed model.ArticleResponse
	decode(t, rec, &renamed)
	if renamed.Article.Slug == first.Slug {
		t.Errorf("slug %q not re-derived after title change", renamed.Article.Slug)
	}
	assertStatus(t, api.do(http.MethodGet, "/articles/"+first.Slug, "", nil), http.StatusNotFound)
}

func TestArticleWriteRules(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")
	article := api.createArticle(jake.Token, "Original title")

	t.Run("anonymous create", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/articles", "", `not even json`)
		assertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/articles", jake.Token, `{"article":{"title":"t"}}`)
		assertStatus(t, rec, http.StatusUnprocessableEntity)
		assertJSON(t, rec, `{"errors":{"description":["required field"],"body":["required field"]}}`)
	})

	t.Run("unknown article before permission", func(t *testing.T) {
		rec := api.do(http.MethodPut, "/articles/no-such-article", "", `{"article":{"body":"x"}}`)
		assertStatus(t, rec, http.StatusNotFound)
		assertJSON(t, rec, `{"errors":{"article":["not found"]}}`)
	})

	t.Run("anonymous update", func(t *testing.T) {
		rec := api.do(http.MethodPut, "/articles/"+article.Slug, "", `{"article":{"body":"x"}}`)
		assertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("non-string body leaves article untouched", func(t *testing.T) {
		rec := api.do(http.MethodPut, "/articles/"+article.Slug, jake.Token, `{"article":{"body":123}}`)
		assertStatus(t, rec, http.StatusUnprocessableEntity)
		assertJSON(t, rec, `{"errors":{"body":["must be of string type"]}}`)

		rec = api.do(http.MethodGet, "/articles/"+article.Slug, "", nil)
		var resp model.ArticleResponse
		decode(t, rec, &resp)
		if resp.Article.Body != article.Body {
			t.Errorf("body = %q, want %q", resp.Article.Body, article.Body)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := api.do(http.MethodDelete, "/articles/"+article.Slug, jake.Token, nil)
		assertStatus(t, rec, http.StatusOK)
		assertJSON(t, rec, `{}`)

		rec = api.do(http.MethodDelete, "/articles/"+article.Slug, jake.Token, nil)
		assertStatus(t, rec, http.StatusNotFound)
	})
}

func TestUnknownArticleBeforePayload(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
	}{
		{name: "update with bad body", method: http.MethodPut, path: "/articles/no-such-article", token: jake.Token, body: `{"article":{"body":123}}`},
		{name: "update with malformed JSON", method: http.MethodPut, path: "/articles/no-such-article", token: jake.Token, body: `{"article":`},
		{name: "comment with missing body", method: http.MethodPost, path: "/articles/no-such-article/comments", token: jake.Token, body: `{"comment":{}}`},
		{name: "anonymous comment", method: http.MethodPost, path: "/articles/no-such-article/comments", body: `{"comment":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, tt.token, tt.body)
			assertStatus(t, rec, http.StatusNotFound)
			assertJSON(t, rec, `{"errors":{"article":["not found"]}}`)
		})
	}

	t.Run("anonymous write to existing article ignores payload", func(t *testing.T) {
		article := api.createArticle(jake.Token, "Exists")
		rec := api.do(http.MethodPost, "/articles/"+article.Slug+"/comments", "", `{"comment":{}}`)
		assertStatus(t, rec, http.StatusForbidden)
	})
}

func TestFavorites(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")
	jane := api.register("jane", "jane@jane.jane", "janejane")
	article := api.createArticle(jake.Token, "Favorite me")

	var resp model.ArticleResponse
	for i := 0; i < 2; i++ {
		rec := api.do(http.MethodPost, "/articles/"+article.Slug+"/favorite", jane.Token, nil)
		assertStatus(t, rec, http.StatusOK)
		decode(t, rec, &resp)
		if !resp.Article.Favorited || resp.Article.FavoritesCount != 1 {
			t.Fatalf("after favorite #%d: favorited=%v count=%d", i+1, resp.Article.Favorited, resp.Article.FavoritesCount)
		}
	}

	rec := api.do(http.MethodGet, "/articles?favorited=jane", "", nil)
	var list model.ArticleListResponse
	decode(t, rec, &list)
	if list.ArticlesCount != 1 || list.Articles[0].Slug != article.Slug {
		t.Fatalf("favorited=jane list = %+v", list)
	}

	for i := 0; i < 2; i++ {
		rec = api.do(http.MethodDelete, "/articles/"+article.Slug+"/favorite", jane.Token, nil)
		assertStatus(t, rec, http.StatusOK)
		decode(t, rec, &resp)
		if resp.Article.Favorited || resp.Article.FavoritesCount != 0 {
			t.Fatalf("after unfavorite #%d: favorited=%v count=%d", i+1, resp.Article.Favorited, resp.Article.FavoritesCount)
		}
	}
}

func TestListArticles(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")
	jane := api.register("jane", "jane@jane.jane", "janejane")

	api.createArticle(jake.Token, "One", "dragons")
	api.createArticle(jane.Token, "Two", "dragons", "angular")
	api.createArticle(jake.Token, "Three", "angular")
	api.createArticle(jake.Token, "Four", "dragons")

	tests := []struct {
		name      string
		query     string
		wantTitle []string
		wantCount int
	}{
		{name: "all newest first", query: "", wantTitle: []string{"Four", "Three", "Two", "One"}, wantCount: 4},
		{name: "by tag", query: "?tag=dragons", wantTitle: []string{"Four", "Two", "One"}, wantCount: 3},
		{name: "by author", query: "?author=jake", wantTitle: []string{"Four", "Three", "One"}, wantCount: 3},
		{name: "tag and author", query: "?tag=dragons&author=jake", wantTitle: []string{"Four", "One"}, wantCount: 2},
		{name: "paginated", query: "?tag=dragons&limit=1&offset=1", wantTitle: []string{"Two"}, wantCount: 3},
		{name: "unknown author", query: "?author=nobody", wantTitle: []string{}, wantCount: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodGet, "/articles"+tt.query, "", nil)
			assertStatus(t, rec, http.StatusOK)
			var list model.ArticleListResponse
			decode(t, rec, &list)

			titles := []string{}
			for _, a := range list.Articles {
				titles = append(titles, a.Title)
			}
			if !reflect.DeepEqual(titles, tt.wantTitle) {
				t.Errorf("titles = %v, want %v", titles, tt.wantTitle)
			}
			if list.ArticlesCount != tt.wantCount {
				t.Errorf("articlesCount = %d, want %d", list.ArticlesCount, tt.wantCount)
			}
		})
	}

	t.Run("tags sorted", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/tags", "", nil)
		assertStatus(t, rec, http.StatusOK)
		assertJSON(t, rec, `{"tags":["angular","dragons"]}`)
	})
}

func TestListArticlesBadPage(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		query string
		want  string
	}{
		{query: "?limit=abc", want: `{"errors":{"limit":["must be of integer type"]}}`},
		{query: "?offset=-1", want: `{"errors":{"offset":["min value is 0"]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := api.do(http.MethodGet, "/articles"+tt.query, "", nil)
			assertStatus(t, rec, http.StatusUnprocessableEntity)
			assertJSON(t, rec, tt.want)
		})
	}
}

func TestFeed(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "alice@example.com", "alicepass")
	bob := api.register("bob", "bob@example.com", "bobpass1")

	api.createArticle(alice.Token, "Alice writes")
	bobs := api.createArticle(bob.Token, "Bob writes")
	assertStatus(t, api.do(http.MethodPost, "/profiles/bob/follow", alice.Token, nil), http.StatusOK)

	assertStatus(t, api.do(http.MethodGet, "/articles/feed", "", nil), http.StatusUnauthorized)

	rec := api.do(http.MethodGet, "/articles/feed", alice.Token, nil)
	assertStatus(t, rec, http.StatusOK)
	var feed model.ArticleListResponse
	decode(t, rec, &feed)
	if feed.ArticlesCount != 1 || len(feed.Articles) != 1 {
		t.Fatalf("feed = %+v, want only bob's article", feed)
	}
	got := feed.Articles[0]
	if got.Slug != bobs.Slug || got.Author.Username != "bob" || !got.Author.Following {
		t.Errorf("feed article = %+v", got)
	}
}

func TestComments(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")
	article := api.createArticle(jake.Token, "Commented")
	base := "/articles/" + article.Slug + "/comments"

	assertStatus(t, api.do(http.MethodPost, "/articles/missing/comments", "", `{}`), http.StatusNotFound)
	assertStatus(t, api.do(http.MethodPost, base, "", `{"comment":{"body":"hi"}}`), http.StatusForbidden)

	rec := api.do(http.MethodPost, base, jake.Token, `{"comment":{"body":""}}`)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	rec = api.do(http.MethodPost, base, jake.Token, `{"comment":{"body":"first"}}`)
	assertStatus(t, rec, http.StatusCreated)
	var first model.CommentResponse
	decode(t, rec, &first)
	rec = api.do(http.MethodPost, base, jake.Token, `{"comment":{"body":"second"}}`)
	assertStatus(t, rec, http.StatusCreated)

	rec = api.do(http.MethodGet, base, "", nil)
	assertStatus(t, rec, http.StatusOK)
	var list model.CommentListResponse
	decode(t, rec, &list)
	if len(list.Comments) != 2 || list.Comments[0].Body != "second" {
		t.Fatalf("comments = %+v", list.Comments)
	}

	for _, bad := range []string{"abc", "0", "-3", "999"} {
		rec = api.do(http.MethodGet, base+"/"+bad, "", nil)
		assertStatus(t, rec, http.StatusNotFound)
		assertJSON(t, rec, `{"errors":{"comment":["not found"]}}`)
	}

	path := base + "/" + strconv.FormatInt(first.Comment.ID, 10)
	assertStatus(t, api.do(http.MethodGet, path, "", nil), http.StatusOK)
	assertStatus(t, api.do(http.MethodDelete, path, "", nil), http.StatusForbidden)

	rec = api.do(http.MethodDelete, path, jake.Token, nil)
	assertStatus(t, rec, http.StatusOK)
	assertJSON(t, rec, `{}`)
	assertStatus(t, api.do(http.MethodGet, path, "", nil), http.StatusNotFound)
}

func TestAvatarUploadDisabled(t *testing.T) {
	api := newTestAPI(t)
	jake := api.register("jake", "jake@jake.jake", "jakejake")

	assertStatus(t, api.do(http.MethodPost, "/user/image", "", nil), http.StatusUnauthorized)

	rec := api.do(http.MethodPost, "/user/image", jake.Token, nil)
	assertStatus(t, rec, http.StatusNotImplemented)
	assertJSON(t, rec, `{"errors":{"image":["uploads are not configured"]}}`)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/nope", "", nil)

	assertStatus(t, rec, http.StatusNotFound)
}
