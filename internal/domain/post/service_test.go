package post

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/taxonomy"
	"github.com/forumhub/forum-api/internal/pkg/cache"
)

type fakeRepo struct {
	posts map[uuid.UUID]*Post

	softDeleted  map[uuid.UUID]string
	hardDeleted  map[uuid.UUID]bool
	pinned       map[uuid.UUID]bool
	likesDelta   int
	commentDelta int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts:       map[uuid.UUID]*Post{},
		softDeleted: map[uuid.UUID]string{},
		hardDeleted: map[uuid.UUID]bool{},
		pinned:      map[uuid.UUID]bool{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, p *Post) error {
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakeRepo) Update(ctx context.Context, p *Post) error {
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}
func (f *fakeRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	delete(f.posts, id)
	f.hardDeleted[id] = true
	return nil
}
func (f *fakeRepo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	if p, ok := f.posts[id]; ok {
		p.IsActive = false
	}
	f.softDeleted[id] = reason
	return nil
}
func (f *fakeRepo) List(ctx context.Context, filter *ListFilter) ([]*Post, int, error) {
	return nil, 0, nil
}
func (f *fakeRepo) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	f.pinned[id] = pinned
	return nil
}
func (f *fakeRepo) AddViews(ctx context.Context, id uuid.UUID, count int64) error { return nil }
func (f *fakeRepo) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error {
	f.likesDelta += delta
	return nil
}
func (f *fakeRepo) AdjustCommentsCount(ctx context.Context, id uuid.UUID, delta int) error {
	f.commentDelta += delta
	return nil
}
func (f *fakeRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return 0, nil
}

type fakeTaxonomyRepo struct {
	categories map[uuid.UUID]*taxonomy.Category
	tags       map[uuid.UUID]*taxonomy.Tag
	attached   map[uuid.UUID][]uuid.UUID
	countDelta map[uuid.UUID]int
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{
		categories: map[uuid.UUID]*taxonomy.Category{},
		tags:       map[uuid.UUID]*taxonomy.Tag{},
		attached:   map[uuid.UUID][]uuid.UUID{},
		countDelta: map[uuid.UUID]int{},
	}
}

func (f *fakeTaxonomyRepo) CreateCategory(ctx context.Context, c *taxonomy.Category) error {
	f.categories[c.ID] = c
	return nil
}
func (f *fakeTaxonomyRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (*taxonomy.Category, error) {
	return f.categories[id], nil
}
func (f *fakeTaxonomyRepo) GetCategoryBySlug(ctx context.Context, slug string) (*taxonomy.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeTaxonomyRepo) ListCategories(ctx context.Context) ([]*taxonomy.Category, error) {
	return nil, nil
}
func (f *fakeTaxonomyRepo) CreateTag(ctx context.Context, t *taxonomy.Tag) error {
	f.tags[t.ID] = t
	return nil
}
func (f *fakeTaxonomyRepo) GetTagBySlug(ctx context.Context, slug string) (*taxonomy.Tag, error) {
	return nil, nil
}
func (f *fakeTaxonomyRepo) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*taxonomy.Tag, error) {
	out := []*taxonomy.Tag{}
	for _, id := range ids {
		if t, ok := f.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeTaxonomyRepo) ListTags(ctx context.Context) ([]*taxonomy.Tag, error) { return nil, nil }
func (f *fakeTaxonomyRepo) AttachTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	f.attached[postID] = tagIDs
	return nil
}
func (f *fakeTaxonomyRepo) TagsForPost(ctx context.Context, postID uuid.UUID) ([]*taxonomy.Tag, error) {
	return nil, nil
}
func (f *fakeTaxonomyRepo) AdjustCategoryPostCount(ctx context.Context, categoryID uuid.UUID, delta int) error {
	f.countDelta[categoryID] += delta
	return nil
}

type fakeNotifier struct {
	senderID    uuid.UUID
	recipientID uuid.UUID
	message     string
	calls       int
}

func (f *fakeNotifier) Moderation(ctx context.Context, senderID, recipientID uuid.UUID, message string) error {
	f.senderID = senderID
	f.recipientID = recipientID
	f.message = message
	f.calls++
	return nil
}

func newTestService(repo *fakeRepo, taxRepo *fakeTaxonomyRepo, notifier *fakeNotifier) *Service {
	taxSvc := taxonomy.NewService(taxRepo, cache.NewStore(nil))
	views := cache.NewViewCounter(nil, 100, func(ctx context.Context, key string, count int64) error {
		return nil
	})
	return NewService(repo, taxSvc, views, notifier)
}

func seedPost(repo *fakeRepo, authorID uuid.UUID, createdAt time.Time) *Post {
	p := &Post{
		ID:         uuid.New(),
		AuthorID:   authorID,
		CategoryID: uuid.New(),
		Title:      "Weekly thread",
		Content:    "What are you working on?",
		IsActive:   true,
		CreatedAt:  createdAt,
	}
	repo.posts[p.ID] = p
	return p
}

func TestDeleteWithinWindow(t *testing.T) {
	repo := newFakeRepo()
	author := uuid.New()
	p := seedPost(repo, author, time.Now().Add(-time.Minute))

	svc := newTestService(repo, newFakeTaxonomyRepo(), &fakeNotifier{})

	if err := svc.Delete(context.Background(), author, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !repo.hardDeleted[p.ID] {
		t.Error("expected post to be hard deleted")
	}
}

func TestDeleteAfterWindowExpires(t *testing.T) {
	repo := newFakeRepo()
	author := uuid.New()
	p := seedPost(repo, author, time.Now().Add(-6*time.Minute))

	svc := newTestService(repo, newFakeTaxonomyRepo(), &fakeNotifier{})

	err := svc.Delete(context.Background(), author, p.ID)
	if err != ErrDeleteWindowExpired {
		t.Fatalf("expected ErrDeleteWindowExpired, got %v", err)
	}
	if repo.hardDeleted[p.ID] {
		t.Error("post must not be deleted after the window")
	}
}

func TestDeleteNotAuthor(t *testing.T) {
	repo := newFakeRepo()
	p := seedPost(repo, uuid.New(), time.Now())

	svc := newTestService(repo, newFakeTaxonomyRepo(), &fakeNotifier{})

	if err := svc.Delete(context.Background(), uuid.New(), p.ID); err != ErrNotPostAuthor {
		t.Fatalf("expected ErrNotPostAuthor, got %v", err)
	}
}

func TestDeleteClearsTagLinks(t *testing.T) {
	repo := newFakeRepo()
	taxRepo := newFakeTaxonomyRepo()
	author := uuid.New()
	p := seedPost(repo, author, time.Now())

	svc := newTestService(repo, taxRepo, &fakeNotifier{})

	if err := svc.Delete(context.Background(), author, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, ok := taxRepo.attached[p.ID]; !ok || len(got) != 0 {
		t.Errorf("expected tag links cleared, got %v (present=%v)", got, ok)
	}
	if taxRepo.countDelta[p.CategoryID] != -1 {
		t.Errorf("expected category count -1, got %d", taxRepo.countDelta[p.CategoryID])
	}
}

func TestModerateDeleteNotifiesAuthorWithReason(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	author := uuid.New()
	staff := uuid.New()
	p := seedPost(repo, author, time.Now().Add(-48*time.Hour))

	svc := newTestService(repo, newFakeTaxonomyRepo(), notifier)

	req := &ModerateDeleteRequest{Reason: "Spam links in the body"}
	if err := svc.ModerateDelete(context.Background(), staff, p.ID, req); err != nil {
		t.Fatalf("ModerateDelete: %v", err)
	}

	if repo.softDeleted[p.ID] != "Spam links in the body" {
		t.Errorf("stored reason = %q", repo.softDeleted[p.ID])
	}
	if notifier.calls != 1 {
		t.Fatalf("expected one notification, got %d", notifier.calls)
	}
	if notifier.recipientID != author || notifier.senderID != staff {
		t.Error("notification addressed to the wrong users")
	}
	if !strings.Contains(notifier.message, "Spam links in the body") {
		t.Errorf("notification must quote the reason, got %q", notifier.message)
	}
}

func TestModerateDeleteRequiresReason(t *testing.T) {
	repo := newFakeRepo()
	p := seedPost(repo, uuid.New(), time.Now())

	svc := newTestService(repo, newFakeTaxonomyRepo(), &fakeNotifier{})

	err := svc.ModerateDelete(context.Background(), uuid.New(), p.ID, &ModerateDeleteRequest{Reason: "   "})
	if err != ErrDeleteReasonRequired {
		t.Fatalf("expected ErrDeleteReasonRequired, got %v", err)
	}
}

func TestModerateDeleteTwice(t *testing.T) {
	repo := newFakeRepo()
	p := seedPost(repo, uuid.New(), time.Now())

	svc := newTestService(repo, newFakeTaxonomyRepo(), &fakeNotifier{})

	req := &ModerateDeleteRequest{Reason: "duplicate"}
	if err := svc.ModerateDelete(context.Background(), uuid.New(), p.ID, req); err != nil {
		t.Fatalf("first ModerateDelete: %v", err)
	}
	if err := svc.ModerateDelete(context.Background(), uuid.New(), p.ID, req); err != ErrAlreadyDeleted {
		t.Fatalf("expected ErrAlreadyDeleted, got %v", err)
	}
}

func TestGetHidesInactiveFromNonStaff(t *testing.T) {
	repo := newFakeRepo()
	author := uuid.New()
	p := seedPost(repo, author, time.Now())
	repo.posts[p.ID].IsActive = false

	svc := newTestService(repo, newFakeTaxonomyRepo(), &fakeNotifier{})

	if _, err := svc.Get(context.Background(), p.ID, false); err != ErrPostNotFound {
		t.Fatalf("non-staff viewer: expected ErrPostNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID, true); err != nil {
		t.Fatalf("staff: %v", err)
	}
}

func TestInactivePostHiddenFromItsAuthor(t *testing.T) {
	p := &Post{AuthorID: uuid.New(), IsActive: false}

	if p.CanBeViewedBy(false) {
		t.Error("a removed post must not be visible to non-staff, author included")
	}
	if !p.CanBeViewedBy(true) {
		t.Error("staff should still see removed posts")
	}
}

func TestUpdateRejectsNonAuthor(t *testing.T) {
	repo := newFakeRepo()
	p := seedPost(repo, uuid.New(), time.Now())

	svc := newTestService(repo, newFakeTaxonomyRepo(), &fakeNotifier{})

	title := "New title"
	_, err := svc.Update(context.Background(), uuid.New(), p.ID, &UpdatePostRequest{Title: &title})
	if err != ErrNotPostAuthor {
		t.Fatalf("expected ErrNotPostAuthor, got %v", err)
	}
}

func TestWithinSelfDeleteWindowBoundary(t *testing.T) {
	created := time.Now()
	p := &Post{CreatedAt: created}

	if !p.WithinSelfDeleteWindow(created.Add(5 * time.Minute)) {
		t.Error("exactly five minutes should still be allowed")
	}
	if p.WithinSelfDeleteWindow(created.Add(5*time.Minute + time.Second)) {
		t.Error("past five minutes should be rejected")
	}
}
