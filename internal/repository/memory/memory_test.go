package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"conduit/internal/model"
	"conduit/internal/repository"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return NewStore(WithClock(tickingClock()))
}

func mustCreateUser(t *testing.T, s *repository.Store, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", PasswordHashed: "x"}
	if err := s.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return u
}

func mustCreateArticle(t *testing.T, s *repository.Store, author *model.User, slug string, tags ...string) *model.Article {
	t.Helper()
	a := &model.Article{Slug: &slug, Title: slug, Description: "d", Body: "b", AuthorID: author.ID}
	if err := s.Articles.Create(context.Background(), a, tags); err != nil {
		t.Fatalf("create article %q: %v", slug, err)
	}
	return a
}

func TestUsers_UniqueFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "alice")

	err := s.Users.Create(ctx, &model.User{Username: "alice2", Email: "alice@example.com"})
	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("duplicate email: err = %v, want ErrEmailExists", err)
	}

	err = s.Users.Create(ctx, &model.User{Username: "alice", Email: "other@example.com"})
	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("duplicate username: err = %v, want ErrUsernameExists", err)
	}
}

func TestUsers_UpdateKeepsOwnValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "alice")
	mustCreateUser(t, s, "bob")

	u.Bio = "hello"
	if err := s.Users.Update(ctx, u); err != nil {
		t.Fatalf("update own values: %v", err)
	}

	u.Username = "bob"
	if err := s.Users.Update(ctx, u); !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("rename to taken username: err = %v, want ErrUsernameExists", err)
	}

	got, err := s.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "alice" || got.Bio != "hello" {
		t.Errorf("stored user = %+v", got)
	}
}

func TestFollows_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, _ := s.Follows.Add(ctx, 1, 2)
	again, _ := s.Follows.Add(ctx, 1, 2)
	if !added || again {
		t.Errorf("Add = %v then %v, want true then false", added, again)
	}

	got, _ := s.Follows.CheckFollows(ctx, 1, []int64{2, 3})
	if !got[2] || got[3] {
		t.Errorf("CheckFollows = %v", got)
	}

	removed, _ := s.Follows.Remove(ctx, 1, 2)
	removedAgain, _ := s.Follows.Remove(ctx, 1, 2)
	if !removed || removedAgain {
		t.Errorf("Remove = %v then %v, want true then false", removed, removedAgain)
	}
}

func TestArticles_SlugConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	first := mustCreateArticle(t, s, alice, "hello")

	slug := "hello"
	err := s.Articles.Create(ctx, &model.Article{Slug: &slug, AuthorID: alice.ID}, nil)
	if !errors.Is(err, model.ErrSlugExists) {
		t.Errorf("err = %v, want ErrSlugExists", err)
	}

	taken, _ := s.Articles.SlugExists(ctx, "hello", 0)
	ownSlug, _ := s.Articles.SlugExists(ctx, "hello", first.ID)
	if !taken || ownSlug {
		t.Errorf("SlugExists = %v (any), %v (excluding owner); want true, false", taken, ownSlug)
	}
}

func TestArticles_TagsSortedAndReplaced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	a := mustCreateArticle(t, s, alice, "tagged", "zeta", "alpha", "zeta")

	if want := []string{"alpha", "zeta"}; !reflect.DeepEqual(a.TagList, want) {
		t.Errorf("TagList = %v, want %v", a.TagList, want)
	}

	replacement := []string{"beta"}
	if err := s.Articles.Update(ctx, a, &replacement); err != nil {
		t.Fatal(err)
	}
	got, err := s.Articles.GetBySlug(ctx, "tagged")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.TagList, replacement) {
		t.Errorf("TagList after update = %v, want %v", got.TagList, replacement)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("UpdatedAt %v not after CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}

	all, _ := s.Tags.List(ctx)
	if want := []string{"alpha", "beta", "zeta"}; !reflect.DeepEqual(all, want) {
		t.Errorf("tags = %v, want %v", all, want)
	}
}

func TestArticles_ListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	a1 := mustCreateArticle(t, s, alice, "a1", "go")
	mustCreateArticle(t, s, alice, "a2")
	mustCreateArticle(t, s, bob, "b1", "go")

	if _, err := s.Articles.Favorite(ctx, bob.ID, a1.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Follows.Add(ctx, alice.ID, bob.ID); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		filter    model.ArticleFilter
		wantSlugs []string
		wantTotal int
	}{
		{"all newest first", model.ArticleFilter{}, []string{"b1", "a2", "a1"}, 3},
		{"by tag", model.ArticleFilter{Tag: "go"}, []string{"b1", "a1"}, 2},
		{"by author", model.ArticleFilter{Author: "alice"}, []string{"a2", "a1"}, 2},
		{"favorited by", model.ArticleFilter{FavoritedBy: "bob"}, []string{"a1"}, 1},
		{"unknown author", model.ArticleFilter{Author: "nobody"}, []string{}, 0},
		{"feed", model.ArticleFilter{FeedOf: alice.ID}, []string{"b1"}, 1},
		{"combined", model.ArticleFilter{Tag: "go", Author: "bob"}, []string{"b1"}, 1},
		{"limit", model.ArticleFilter{Limit: 1}, []string{"b1"}, 3},
		{"offset", model.ArticleFilter{Limit: 2, Offset: 2}, []string{"a1"}, 3},
		{"offset past end", model.ArticleFilter{Offset: 10}, []string{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total, err := s.Articles.List(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			slugs := make([]string, 0, len(page))
			for _, a := range page {
				slugs = append(slugs, a.SlugValue())
			}
			if !reflect.DeepEqual(slugs, tt.wantSlugs) {
				t.Errorf("slugs = %v, want %v", slugs, tt.wantSlugs)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
		})
	}
}

func TestArticles_FavoriteStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")
	a := mustCreateArticle(t, s, alice, "a")

	first, _ := s.Articles.Favorite(ctx, alice.ID, a.ID)
	second, _ := s.Articles.Favorite(ctx, alice.ID, a.ID)
	if !first || second {
		t.Errorf("Favorite = %v then %v, want true then false", first, second)
	}
	s.Articles.Favorite(ctx, bob.ID, a.ID)

	stats, _ := s.Articles.FavoriteStats(ctx, alice.ID, []int64{a.ID})
	if got := stats[a.ID]; got.Count != 2 || !got.Favorited {
		t.Errorf("stats for alice = %+v, want count 2 favorited", got)
	}

	stats, _ = s.Articles.FavoriteStats(ctx, 0, []int64{a.ID})
	if got := stats[a.ID]; got.Count != 2 || got.Favorited {
		t.Errorf("stats for anonymous = %+v, want count 2 not favorited", got)
	}
}

func TestArticles_DeleteCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	a := mustCreateArticle(t, s, alice, "doomed", "go")

	c := &model.Comment{ArticleID: a.ID, AuthorID: alice.ID, Body: "hi"}
	if err := s.Comments.Create(ctx, c); err != nil {
		t.Fatal(err)
	}
	s.Articles.Favorite(ctx, alice.ID, a.ID)

	if err := s.Articles.Delete(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Articles.GetBySlug(ctx, "doomed"); !errors.Is(err, model.ErrArticleNotFound) {
		t.Errorf("GetBySlug after delete: err = %v", err)
	}
	if _, err := s.Comments.GetByID(ctx, a.ID, c.ID); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("comment survived delete: err = %v", err)
	}
	if err := s.Articles.Delete(ctx, a.ID); !errors.Is(err, model.ErrArticleNotFound) {
		t.Errorf("second delete: err = %v, want ErrArticleNotFound", err)
	}
}

func TestComments_ScopedToArticle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	a := mustCreateArticle(t, s, alice, "a")
	b := mustCreateArticle(t, s, alice, "b")

	first := &model.Comment{ArticleID: a.ID, AuthorID: alice.ID, Body: "first"}
	second := &model.Comment{ArticleID: a.ID, AuthorID: alice.ID, Body: "second"}
	s.Comments.Create(ctx, first)
	s.Comments.Create(ctx, second)

	list, _ := s.Comments.ListByArticle(ctx, a.ID)
	if len(list) != 2 || list[0].Body != "second" {
		t.Errorf("ListByArticle = %+v, want newest first", list)
	}

	if _, err := s.Comments.GetByID(ctx, b.ID, first.ID); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("GetByID on wrong article: err = %v", err)
	}
	if err := s.Comments.Delete(ctx, b.ID, first.ID); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("Delete on wrong article: err = %v", err)
	}
	if err := s.Comments.Delete(ctx, a.ID, first.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
}
