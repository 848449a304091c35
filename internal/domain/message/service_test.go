package message

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/user"
)

type fakeRepo struct {
	messages   map[uuid.UUID]*Message
	markedRead []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{messages: map[uuid.UUID]*Message{}}
}

func (f *fakeRepo) Create(ctx context.Context, m *Message) error {
	cp := *m
	f.messages[m.ID] = &cp
	return nil
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Message, error) {
	return f.messages[id], nil
}
func (f *fakeRepo) ListBetween(ctx context.Context, userA, userB uuid.UUID, limit, offset int) ([]*Message, error) {
	out := []*Message{}
	for _, m := range f.messages {
		if (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}
func (f *fakeRepo) MarkConversationRead(ctx context.Context, recipientID, senderID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range f.messages {
		if m.RecipientID == recipientID && m.SenderID == senderID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	f.markedRead = append(f.markedRead, senderID)
	return n, nil
}
func (f *fakeRepo) ListConversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error) {
	return nil, nil
}
func (f *fakeRepo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	count := 0
	for _, m := range f.messages {
		if m.RecipientID == recipientID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}
func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return nil
}
func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, ip string) error {
	return nil
}
func (f *fakeUserRepo) SetBan(ctx context.Context, id uuid.UUID, kind user.BanKind, reason string, expiresAt *time.Time) error {
	return nil
}
func (f *fakeUserRepo) ClearBan(ctx context.Context, id uuid.UUID) error { return nil }

type fakeNotifier struct {
	calls     int
	recipient uuid.UUID
	messageID uuid.UUID
}

func (f *fakeNotifier) MessageReceived(ctx context.Context, senderID, recipientID, messageID uuid.UUID, message string) error {
	f.calls++
	f.recipient = recipientID
	f.messageID = messageID
	return nil
}

func TestSendMessage(t *testing.T) {
	repo := newFakeRepo()
	sender := &user.User{ID: uuid.New(), Username: "alice"}
	recipient := &user.User{ID: uuid.New(), Username: "bob"}
	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{sender.ID: sender, recipient.ID: recipient}}
	notifier := &fakeNotifier{}

	svc := NewService(repo, users, notifier)

	m, err := svc.Send(context.Background(), sender.ID, recipient.ID, &SendMessageRequest{Content: "hi"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if m.Content != "hi" {
		t.Errorf("content = %q", m.Content)
	}
	if notifier.calls != 1 || notifier.recipient != recipient.ID || notifier.messageID != m.ID {
		t.Error("recipient should be notified about the message")
	}
}

func TestSendToSelfRejected(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeUserRepo{users: map[uuid.UUID]*user.User{}}, &fakeNotifier{})
	id := uuid.New()

	_, err := svc.Send(context.Background(), id, id, &SendMessageRequest{Content: "hi"})
	if err != ErrCannotMessageSelf {
		t.Fatalf("expected ErrCannotMessageSelf, got %v", err)
	}
}

func TestSendToUnknownRecipient(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeUserRepo{users: map[uuid.UUID]*user.User{}}, &fakeNotifier{})

	_, err := svc.Send(context.Background(), uuid.New(), uuid.New(), &SendMessageRequest{Content: "hi"})
	if err != ErrRecipientNotFound {
		t.Fatalf("expected ErrRecipientNotFound, got %v", err)
	}
}

func TestConversationMarksIncomingRead(t *testing.T) {
	repo := newFakeRepo()
	me := &user.User{ID: uuid.New(), Username: "me"}
	peer := &user.User{ID: uuid.New(), Username: "peer"}
	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{me.ID: me, peer.ID: peer}}

	incoming := &Message{ID: uuid.New(), SenderID: peer.ID, RecipientID: me.ID, Content: "ping"}
	repo.messages[incoming.ID] = incoming

	svc := NewService(repo, users, &fakeNotifier{})

	messages, err := svc.Conversation(context.Background(), me.ID, peer.ID, 0, 0)
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages", len(messages))
	}
	if !repo.messages[incoming.ID].IsRead {
		t.Error("incoming messages should be marked read")
	}

	unread, err := svc.UnreadCount(context.Background(), me.ID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread = %d", unread)
	}
}
