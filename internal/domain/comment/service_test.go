package comment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/post"
)

type fakeRepo struct {
	comments    map[uuid.UUID]*Comment
	threadSizes map[uuid.UUID]int
	hardDeleted map[uuid.UUID]bool
	softDeleted map[uuid.UUID]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		comments:    map[uuid.UUID]*Comment{},
		threadSizes: map[uuid.UUID]int{},
		hardDeleted: map[uuid.UUID]bool{},
		softDeleted: map[uuid.UUID]string{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, c *Comment) error {
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (f *fakeRepo) Update(ctx context.Context, c *Comment) error {
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}
func (f *fakeRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	f.hardDeleted[id] = true
	return nil
}
func (f *fakeRepo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	if c, ok := f.comments[id]; ok {
		c.IsActive = false
	}
	f.softDeleted[id] = reason
	return nil
}
func (f *fakeRepo) ListByPost(ctx context.Context, postID uuid.UUID, includeInactive bool) ([]*Comment, error) {
	out := []*Comment{}
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeRepo) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error { return nil }
func (f *fakeRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return 0, nil
}
func (f *fakeRepo) CountThread(ctx context.Context, id uuid.UUID) (int, error) {
	if n, ok := f.threadSizes[id]; ok {
		return n, nil
	}
	return 1, nil
}

type fakePostRepo struct {
	posts        map[uuid.UUID]*post.Post
	commentDelta map[uuid.UUID]int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:        map[uuid.UUID]*post.Post{},
		commentDelta: map[uuid.UUID]int{},
	}
}

func (f *fakePostRepo) Create(ctx context.Context, p *post.Post) error { return nil }
func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return f.posts[id], nil
}
func (f *fakePostRepo) Update(ctx context.Context, p *post.Post) error      { return nil }
func (f *fakePostRepo) HardDelete(ctx context.Context, id uuid.UUID) error  { return nil }
func (f *fakePostRepo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	return nil
}
func (f *fakePostRepo) List(ctx context.Context, filter *post.ListFilter) ([]*post.Post, int, error) {
	return nil, 0, nil
}
func (f *fakePostRepo) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error { return nil }
func (f *fakePostRepo) AddViews(ctx context.Context, id uuid.UUID, count int64) error  { return nil }
func (f *fakePostRepo) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (f *fakePostRepo) AdjustCommentsCount(ctx context.Context, id uuid.UUID, delta int) error {
	f.commentDelta[id] += delta
	return nil
}
func (f *fakePostRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return 0, nil
}

type fakeNotifier struct {
	commentCalls    int
	lastRecipient   uuid.UUID
	lastMessage     string
	moderationCalls int
}

func (f *fakeNotifier) CommentCreated(ctx context.Context, senderID, recipientID, postID, commentID uuid.UUID, message string) error {
	f.commentCalls++
	f.lastRecipient = recipientID
	f.lastMessage = message
	return nil
}
func (f *fakeNotifier) Moderation(ctx context.Context, senderID, recipientID uuid.UUID, message string) error {
	f.moderationCalls++
	f.lastRecipient = recipientID
	f.lastMessage = message
	return nil
}

func seedPost(repo *fakePostRepo, authorID uuid.UUID) *post.Post {
	p := &post.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Title:    "Launch day",
		IsActive: true,
	}
	repo.posts[p.ID] = p
	return p
}

func seedComment(repo *fakeRepo, postID, authorID uuid.UUID, parentID *uuid.UUID) *Comment {
	c := &Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   "nice work",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if parentID != nil {
		c.ParentID = uuid.NullUUID{UUID: *parentID, Valid: true}
	}
	repo.comments[c.ID] = c
	return c
}

func TestCreateReplyToReplyRejected(t *testing.T) {
	repo := newFakeRepo()
	postRepo := newFakePostRepo()
	p := seedPost(postRepo, uuid.New())
	top := seedComment(repo, p.ID, uuid.New(), nil)
	reply := seedComment(repo, p.ID, uuid.New(), &top.ID)

	svc := NewService(repo, postRepo, &fakeNotifier{})

	_, err := svc.Create(context.Background(), uuid.New(), p.ID, &CreateCommentRequest{
		Content:  "deep reply",
		ParentID: &reply.ID,
	})
	if err != ErrNestingTooDeep {
		t.Fatalf("expected ErrNestingTooDeep, got %v", err)
	}
}

func TestCreateReplyOnOtherPostRejected(t *testing.T) {
	repo := newFakeRepo()
	postRepo := newFakePostRepo()
	p1 := seedPost(postRepo, uuid.New())
	p2 := seedPost(postRepo, uuid.New())
	parent := seedComment(repo, p1.ID, uuid.New(), nil)

	svc := NewService(repo, postRepo, &fakeNotifier{})

	_, err := svc.Create(context.Background(), uuid.New(), p2.ID, &CreateCommentRequest{
		Content:  "wrong thread",
		ParentID: &parent.ID,
	})
	if err != ErrParentWrongPost {
		t.Fatalf("expected ErrParentWrongPost, got %v", err)
	}
}

func TestCreateNotifiesPostAuthor(t *testing.T) {
	repo := newFakeRepo()
	postRepo := newFakePostRepo()
	notifier := &fakeNotifier{}
	postAuthor := uuid.New()
	p := seedPost(postRepo, postAuthor)

	svc := NewService(repo, postRepo, notifier)

	_, err := svc.Create(context.Background(), uuid.New(), p.ID, &CreateCommentRequest{Content: "first"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if notifier.commentCalls != 1 {
		t.Fatalf("expected one notification, got %d", notifier.commentCalls)
	}
	if notifier.lastRecipient != postAuthor {
		t.Error("notification should go to the post author")
	}
	if postRepo.commentDelta[p.ID] != 1 {
		t.Errorf("comment count delta = %d", postRepo.commentDelta[p.ID])
	}
}

func TestCreateReplyNotifiesParentAuthor(t *testing.T) {
	repo := newFakeRepo()
	postRepo := newFakePostRepo()
	notifier := &fakeNotifier{}
	p := seedPost(postRepo, uuid.New())
	parentAuthor := uuid.New()
	parent := seedComment(repo, p.ID, parentAuthor, nil)

	svc := NewService(repo, postRepo, notifier)

	_, err := svc.Create(context.Background(), uuid.New(), p.ID, &CreateCommentRequest{
		Content:  "agreed",
		ParentID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if notifier.lastRecipient != parentAuthor {
		t.Error("reply notification should go to the parent comment author")
	}
	if !strings.Contains(notifier.lastMessage, "replied") {
		t.Errorf("unexpected message %q", notifier.lastMessage)
	}
}

func TestDeleteRemovesWholeThreadFromCounter(t *testing.T) {
	repo := newFakeRepo()
	postRepo := newFakePostRepo()
	author := uuid.New()
	p := seedPost(postRepo, uuid.New())
	c := seedComment(repo, p.ID, author, nil)
	repo.threadSizes[c.ID] = 3

	svc := NewService(repo, postRepo, &fakeNotifier{})

	if err := svc.Delete(context.Background(), author, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if postRepo.commentDelta[p.ID] != -3 {
		t.Errorf("expected counter delta -3, got %d", postRepo.commentDelta[p.ID])
	}
}

func TestDeleteAfterWindow(t *testing.T) {
	repo := newFakeRepo()
	postRepo := newFakePostRepo()
	author := uuid.New()
	p := seedPost(postRepo, uuid.New())
	c := seedComment(repo, p.ID, author, nil)
	repo.comments[c.ID].CreatedAt = time.Now().Add(-10 * time.Minute)

	svc := NewService(repo, postRepo, &fakeNotifier{})

	if err := svc.Delete(context.Background(), author, c.ID); err != ErrDeleteWindowExpired {
		t.Fatalf("expected ErrDeleteWindowExpired, got %v", err)
	}
}

func TestModerateDeleteQuotesReason(t *testing.T) {
	repo := newFakeRepo()
	postRepo := newFakePostRepo()
	notifier := &fakeNotifier{}
	author := uuid.New()
	p := seedPost(postRepo, uuid.New())
	c := seedComment(repo, p.ID, author, nil)

	svc := NewService(repo, postRepo, notifier)

	err := svc.ModerateDelete(context.Background(), uuid.New(), c.ID, &ModerateDeleteRequest{
		Reason: "Personal attacks",
	})
	if err != nil {
		t.Fatalf("ModerateDelete: %v", err)
	}
	if notifier.moderationCalls != 1 || notifier.lastRecipient != author {
		t.Error("author should receive the removal notice")
	}
	if !strings.Contains(notifier.lastMessage, "Personal attacks") {
		t.Errorf("notice must quote the reason, got %q", notifier.lastMessage)
	}
}

func TestBuildThreadNestsOneLevel(t *testing.T) {
	postID := uuid.New()
	top1 := &Comment{ID: uuid.New(), PostID: postID, IsActive: true}
	top2 := &Comment{ID: uuid.New(), PostID: postID, IsActive: true}
	reply := &Comment{
		ID:       uuid.New(),
		PostID:   postID,
		ParentID: uuid.NullUUID{UUID: top1.ID, Valid: true},
		IsActive: true,
	}

	thread := BuildThread([]*Comment{top1, top2, reply})

	if len(thread) != 2 {
		t.Fatalf("expected 2 top-level comments, got %d", len(thread))
	}
	if len(thread[0].Replies) != 1 || thread[0].Replies[0].ID != reply.ID {
		t.Error("reply should be nested under its parent")
	}
	if len(thread[1].Replies) != 0 {
		t.Error("second top-level comment should have no replies")
	}
}

func TestListForPostHidesInactiveFromNonStaff(t *testing.T) {
	repo := newFakeRepo()
	postRepo := newFakePostRepo()
	author := uuid.New()
	p := seedPost(postRepo, uuid.New())
	keep := seedComment(repo, p.ID, author, nil)
	removed := seedComment(repo, p.ID, author, nil)
	repo.comments[removed.ID].IsActive = false

	svc := NewService(repo, postRepo, &fakeNotifier{})

	thread, err := svc.ListForPost(context.Background(), p.ID, false)
	if err != nil {
		t.Fatalf("ListForPost: %v", err)
	}
	if len(thread) != 1 || thread[0].ID != keep.ID {
		t.Errorf("non-staff viewers should only see active comments, got %d", len(thread))
	}

	asStaff, err := svc.ListForPost(context.Background(), p.ID, true)
	if err != nil {
		t.Fatalf("ListForPost staff: %v", err)
	}
	if len(asStaff) != 2 {
		t.Errorf("staff should see removed comments too, got %d", len(asStaff))
	}
}

func TestInactiveCommentContentBlanked(t *testing.T) {
	c := &Comment{
		ID:       uuid.New(),
		Content:  "hidden now",
		IsActive: false,
	}

	resp := NewCommentResponse(c)
	if resp.Content != "" {
		t.Errorf("inactive comment content should be blank, got %q", resp.Content)
	}
}
