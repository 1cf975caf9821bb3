package services

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/chat"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubLLM struct {
	reply  string
	tokens int
	err    error
	calls  int
	turns  []llm.Turn
}

func (s *stubLLM) GenerateChat(ctx context.Context, systemPrompt string, turns []llm.Turn) (*llm.Result, error) {
	s.calls++
	s.turns = turns
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Result{Text: s.reply, TokensUsed: s.tokens}, nil
}

func (s *stubLLM) GetProviderName() string { return "stub" }

type stubUploader struct {
	uploads  int
	lastName string
}

func (u *stubUploader) Upload(ctx context.Context, file io.Reader, filename string, opts *upload.Options) (*upload.Result, error) {
	return nil, errors.New("not supported")
}

func (u *stubUploader) UploadMultipart(ctx context.Context, fileHeader *multipart.FileHeader, opts *upload.Options) (*upload.Result, error) {
	u.uploads++
	u.lastName = fileHeader.Filename
	return &upload.Result{
		URL:      "https://files.test/" + fileHeader.Filename,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
	}, nil
}

func (u *stubUploader) Delete(ctx context.Context, publicID string) error { return nil }

func (u *stubUploader) SignedURL(ctx context.Context, publicID string, expiry time.Duration) (string, error) {
	return "https://files.test/" + publicID, nil
}

func (u *stubUploader) GetProviderName() string { return "stub" }

func newChatService(t *testing.T, provider llm.Provider) (*ChatService, *gorm.DB, uuid.UUID) {
	return newChatServiceWith(t, provider, nil)
}

func newChatServiceWith(t *testing.T, provider llm.Provider, uploader upload.Provider) (*ChatService, *gorm.DB, uuid.UUID) {
	t.Helper()

	db := newTestDB(t,
		&models.Client{}, &models.BusinessInfo{}, &models.AssistantConfig{},
		&models.Subscription{}, &models.Conversation{}, &models.Message{},
		&models.TokenUsage{},
	)

	client := models.Client{Name: "Acme", BusinessName: "Acme Bakery"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	svc := NewChatService(
		repositories.NewConversationRepo(db),
		repositories.NewSubscriptionRepo(db),
		repositories.NewTokenUsageRepo(db),
		kb.NewRetriever(db, nil),
		llm.NewServiceWithProvider(provider),
		upload.NewServiceWithProvider(uploader),
		chat.NewStore(),
		events.NewBus(),
	)
	return svc, db, client.ID
}

func activateSub(t *testing.T, db *gorm.DB, clientID uuid.UUID, tokens int) {
	t.Helper()

	periodEnd := time.Now().AddDate(0, 1, 0)
	sub := models.Subscription{
		ClientID:         clientID,
		Plan:             models.PlanStarter,
		Status:           models.SubscriptionActive,
		TokensRemaining:  tokens,
		CurrentPeriodEnd: &periodEnd,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("create subscription: %v", err)
	}
}

func TestSendMessageRequiresSubscription(t *testing.T) {
	svc, _, clientID := newChatService(t, &stubLLM{reply: "hi"})

	_, err := svc.SendMessage(context.Background(), clientID, "", "", "hello")
	if !errors.Is(err, ErrNoActiveSubscription) {
		t.Fatalf("err = %v, want ErrNoActiveSubscription", err)
	}
}

func TestSendMessageRequiresTokens(t *testing.T) {
	svc, db, clientID := newChatService(t, &stubLLM{reply: "hi"})
	activateSub(t, db, clientID, 0)

	_, err := svc.SendMessage(context.Background(), clientID, "", "", "hello")
	if !errors.Is(err, ErrTokensExhausted) {
		t.Fatalf("err = %v, want ErrTokensExhausted", err)
	}
}

func TestSendMessageCreatesThreadAndMeters(t *testing.T) {
	provider := &stubLLM{reply: "We open at 9am.", tokens: 42}
	svc, db, clientID := newChatService(t, provider)
	activateSub(t, db, clientID, 1000)

	resp, err := svc.SendMessage(context.Background(), clientID, "sess-1", "", "When do you open?")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.ThreadID == uuid.Nil {
		t.Fatal("no thread created")
	}
	if resp.Message.Sender != models.SenderAssistant {
		t.Fatalf("sender = %s, want %s", resp.Message.Sender, models.SenderAssistant)
	}
	if resp.Message.Text != "We open at 9am." {
		t.Fatalf("text = %q", resp.Message.Text)
	}
	if resp.TokensUsed != 42 {
		t.Fatalf("tokens used = %d, want 42", resp.TokensUsed)
	}

	var sub models.Subscription
	if err := db.First(&sub, "client_id = ?", clientID).Error; err != nil {
		t.Fatalf("load subscription: %v", err)
	}
	if sub.TokensRemaining != 958 {
		t.Fatalf("remaining = %d, want 958", sub.TokensRemaining)
	}

	var usageCount int64
	db.Model(&models.TokenUsage{}).Where("client_id = ?", clientID).Count(&usageCount)
	if usageCount != 1 {
		t.Fatalf("usage entries = %d, want 1", usageCount)
	}
}

func TestSendMessageContinuesThread(t *testing.T) {
	provider := &stubLLM{reply: "Sure.", tokens: 5}
	svc, db, clientID := newChatService(t, provider)
	activateSub(t, db, clientID, 1000)

	first, err := svc.SendMessage(context.Background(), clientID, "", "", "First question")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	second, err := svc.SendMessage(context.Background(), clientID, "", first.ThreadID.String(), "Follow-up")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if second.ThreadID != first.ThreadID {
		t.Fatalf("thread = %s, want %s", second.ThreadID, first.ThreadID)
	}

	history, err := svc.History(clientID, first.ThreadID.String())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("got %d messages, want 4", len(history))
	}
}

func TestAnalyzeFileUploadsThenAnalyzes(t *testing.T) {
	provider := &stubLLM{reply: "It lists three mains.", tokens: 30}
	uploader := &stubUploader{}
	svc, db, clientID := newChatServiceWith(t, provider, uploader)
	activateSub(t, db, clientID, 1000)

	fileHeader := &multipart.FileHeader{
		Filename: "menu.pdf",
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
		Size:     1234,
	}

	resp, err := svc.AnalyzeFile(context.Background(), clientID, "sess-1", "", fileHeader, "What's on this menu?")
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}
	if uploader.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", uploader.uploads)
	}
	if provider.calls != 1 {
		t.Fatalf("generate calls = %d, want 1", provider.calls)
	}
	if !resp.Message.Analysis {
		t.Fatal("reply not marked as an analysis turn")
	}
	if !resp.OfferSave {
		t.Fatal("analysis reply must offer save")
	}

	// The model sees a single analysis turn built from the uploaded
	// file's URL, not the plain-turn history
	want := llm.BuildAnalysisPrompt("https://files.test/menu.pdf", "What's on this menu?")
	if len(provider.turns) != 1 || provider.turns[0].Content != want {
		t.Fatalf("model turns = %+v, want the single analysis prompt", provider.turns)
	}

	var usage models.TokenUsage
	if err := db.First(&usage, "client_id = ?", clientID).Error; err != nil {
		t.Fatalf("usage not recorded: %v", err)
	}
	if usage.Kind != models.UsageAnalysis {
		t.Fatalf("usage kind = %s, want %s", usage.Kind, models.UsageAnalysis)
	}
}

func TestSessionHistoryTracksThreadAndTurns(t *testing.T) {
	provider := &stubLLM{reply: "Sure.", tokens: 5}
	svc, db, clientID := newChatService(t, provider)
	activateSub(t, db, clientID, 1000)

	first, err := svc.SendMessage(context.Background(), clientID, "sess-1", "", "First question")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	// No thread_id on the follow-up: the session's pinned thread is
	// used instead of opening a new one
	second, err := svc.SendMessage(context.Background(), clientID, "sess-1", "", "Follow-up")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if second.ThreadID != first.ThreadID {
		t.Fatalf("thread = %s, want pinned %s", second.ThreadID, first.ThreadID)
	}

	entries := svc.SessionHistory("sess-1")
	if len(entries) != 4 {
		t.Fatalf("panel history = %d entries, want 4", len(entries))
	}
	wantSenders := []string{models.SenderUser, models.SenderAssistant, models.SenderUser, models.SenderAssistant}
	for i, e := range entries {
		if e.Sender != wantSenders[i] {
			t.Fatalf("entry %d sender = %s, want %s", i, e.Sender, wantSenders[i])
		}
	}

	if len(svc.SessionHistory("sess-2")) != 0 {
		t.Fatal("panel history leaked across sessions")
	}
}

func TestGenerationFailureBecomesAssistantTurn(t *testing.T) {
	provider := &stubLLM{err: errors.New("provider down")}
	svc, db, clientID := newChatService(t, provider)
	activateSub(t, db, clientID, 1000)

	resp, err := svc.SendMessage(context.Background(), clientID, "", "", "hello")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.Message.Text != assistantErrorReply {
		t.Fatalf("text = %q, want the error reply", resp.Message.Text)
	}
	if resp.TokensUsed != 0 {
		t.Fatalf("tokens used = %d, want 0", resp.TokensUsed)
	}

	var sub models.Subscription
	if err := db.First(&sub, "client_id = ?", clientID).Error; err != nil {
		t.Fatalf("load subscription: %v", err)
	}
	if sub.TokensRemaining != 1000 {
		t.Fatal("a failed turn must not consume tokens")
	}
}

func TestLongReplyTriggersSaveOffer(t *testing.T) {
	long := make([]byte, saveOfferMinChars)
	for i := range long {
		long[i] = 'a'
	}
	provider := &stubLLM{reply: string(long), tokens: 10}
	svc, db, clientID := newChatService(t, provider)
	activateSub(t, db, clientID, 1000)

	resp, err := svc.SendMessage(context.Background(), clientID, "sess-1", "", "Write a long post")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !resp.OfferSave {
		t.Fatal("expected save offer for long reply")
	}

	content, ok := svc.LastGenerated("sess-1")
	if !ok || content != string(long) {
		t.Fatal("last generated content not stored for the session")
	}

	svc.ClearLastGenerated("sess-1")
	if _, ok := svc.LastGenerated("sess-1"); ok {
		t.Fatal("save offer must clear once consumed")
	}
}

func TestConcurrentSendRejected(t *testing.T) {
	provider := &stubLLM{reply: "ok", tokens: 1}
	svc, db, clientID := newChatService(t, provider)
	activateSub(t, db, clientID, 1000)

	if err := svc.store.BeginSend("sess-1"); err != nil {
		t.Fatalf("BeginSend: %v", err)
	}

	_, err := svc.SendMessage(context.Background(), clientID, "sess-1", "", "hello")
	if !errors.Is(err, chat.ErrSendInFlight) {
		t.Fatalf("err = %v, want ErrSendInFlight", err)
	}
}
