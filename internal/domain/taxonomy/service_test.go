package taxonomy

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/pkg/cache"
)

type fakeRepo struct {
	categories map[string]*Category
	tags       map[string]*Tag
	tagsByID   map[uuid.UUID]*Tag
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[string]*Category{},
		tags:       map[string]*Tag{},
		tagsByID:   map[uuid.UUID]*Tag{},
	}
}

func (f *fakeRepo) CreateCategory(ctx context.Context, c *Category) error {
	f.categories[c.Slug] = c
	return nil
}
func (f *fakeRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeRepo) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return f.categories[slug], nil
}
func (f *fakeRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	out := []*Category{}
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}
func (f *fakeRepo) CreateTag(ctx context.Context, t *Tag) error {
	f.tags[t.Slug] = t
	f.tagsByID[t.ID] = t
	return nil
}
func (f *fakeRepo) GetTagBySlug(ctx context.Context, slug string) (*Tag, error) {
	return f.tags[slug], nil
}
func (f *fakeRepo) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Tag, error) {
	out := []*Tag{}
	for _, id := range ids {
		if t, ok := f.tagsByID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeRepo) ListTags(ctx context.Context) ([]*Tag, error) { return nil, nil }
func (f *fakeRepo) AttachTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	return nil
}
func (f *fakeRepo) TagsForPost(ctx context.Context, postID uuid.UUID) ([]*Tag, error) {
	return nil, nil
}
func (f *fakeRepo) AdjustCategoryPostCount(ctx context.Context, categoryID uuid.UUID, delta int) error {
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, cache.NewStore(nil))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"General Discussion":   "general-discussion",
		"  Show & Tell  ":      "show-tell",
		"C++ / Systems":        "c-systems",
		"Go":                   "go",
		"--Already--Slugged--": "already-slugged",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateCategorySlugConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	if _, err := svc.CreateCategory(context.Background(), &CreateCategoryRequest{Name: "General Discussion"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	// Different display name, same slug
	_, err := svc.CreateCategory(context.Background(), &CreateCategoryRequest{Name: "general discussion"})
	if err != ErrSlugTaken {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestResolveTagsMissingID(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.CreateTag(context.Background(), &CreateTagRequest{Name: "golang"})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	if _, err := svc.ResolveTags(context.Background(), []uuid.UUID{created.ID}); err != nil {
		t.Fatalf("ResolveTags existing: %v", err)
	}

	_, err = svc.ResolveTags(context.Background(), []uuid.UUID{created.ID, uuid.New()})
	if err != ErrTagNotFound {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestGetCategoryByIDMissing(t *testing.T) {
	svc := newTestService(newFakeRepo())

	if _, err := svc.GetCategoryByID(context.Background(), uuid.New()); err != ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
