package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"

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

var (
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrTokensExhausted      = errors.New("token balance exhausted")
)

// assistantErrorReply is shown as a normal assistant turn when
// generation fails, so the thread never dead-ends on an error banner.
const assistantErrorReply = "Sorry, I ran into a problem answering that. Please try again."

// saveOfferMinChars is the reply length from which the save-as-document
// offer appears
const saveOfferMinChars = 200

// contextTurns is how many prior turns are replayed to the model
const contextTurns = 10

// ChatResponse is one completed assistant exchange
type ChatResponse struct {
	ThreadID   uuid.UUID      `json:"thread_id"`
	Message    models.Message `json:"message"`
	TokensUsed int            `json:"tokens_used"`
	OfferSave  bool           `json:"offer_save"`
}

type ChatService struct {
	convRepo  repositories.ConversationRepo
	subRepo   repositories.SubscriptionRepo
	usageRepo repositories.TokenUsageRepo
	retriever *kb.Retriever
	llm       *llm.Service
	upload    *upload.Service
	store     *chat.Store
	bus       *events.Bus
}

func NewChatService(
	convRepo repositories.ConversationRepo,
	subRepo repositories.SubscriptionRepo,
	usageRepo repositories.TokenUsageRepo,
	retriever *kb.Retriever,
	llmSvc *llm.Service,
	uploadSvc *upload.Service,
	store *chat.Store,
	bus *events.Bus,
) *ChatService {
	return &ChatService{
		convRepo:  convRepo,
		subRepo:   subRepo,
		usageRepo: usageRepo,
		retriever: retriever,
		llm:       llmSvc,
		upload:    uploadSvc,
		store:     store,
		bus:       bus,
	}
}

// SendMessage runs one plain chat turn: gate on tokens, persist the
// user turn, generate with business context, persist and meter the
// reply. A generation failure is stored as a normal assistant turn and
// costs nothing.
func (s *ChatService) SendMessage(ctx context.Context, clientID uuid.UUID, sessionID, threadID, text string) (*ChatResponse, error) {
	if text == "" {
		return nil, errors.New("message text is required")
	}
	if err := s.gate(clientID); err != nil {
		return nil, err
	}

	if sessionID != "" {
		if err := s.store.BeginSend(sessionID); err != nil {
			return nil, err
		}
		defer s.store.EndSend(sessionID)
	}

	conv, err := s.thread(clientID, s.sessionThread(sessionID, threadID), text)
	if err != nil {
		return nil, err
	}

	userMsg := &models.Message{
		ConversationID: conv.ID,
		Sender:         models.SenderUser,
		Text:           text,
	}
	if err := s.convRepo.AddMessage(userMsg); err != nil {
		return nil, err
	}
	s.trackTurn(sessionID, conv.ID, chat.Entry{ID: userMsg.ID, Sender: models.SenderUser, Text: text})

	turns, err := s.recentTurns(conv.ID)
	if err != nil {
		return nil, err
	}

	bc, err := s.retriever.GetBusinessContext(ctx, clientID, text)
	if err != nil {
		return nil, err
	}
	systemPrompt := llm.BuildSystemPrompt(bc)

	result, genErr := s.llm.GenerateChat(ctx, systemPrompt, turns)
	return s.finishTurn(clientID, sessionID, conv, result, genErr, models.UsageChat, false)
}

// AnalyzeFile runs the upload-then-analyze turn: the file is stored,
// its URL is woven into an analysis prompt, and the reply is marked as
// an analysis turn.
func (s *ChatService) AnalyzeFile(ctx context.Context, clientID uuid.UUID, sessionID, threadID string, fileHeader *multipart.FileHeader, prompt string) (*ChatResponse, error) {
	if err := s.gate(clientID); err != nil {
		return nil, err
	}

	if sessionID != "" {
		if err := s.store.BeginSend(sessionID); err != nil {
			return nil, err
		}
		defer s.store.EndSend(sessionID)
	}

	result, err := s.upload.UploadMultipart(ctx, fileHeader, upload.DocumentOptions("chat"))
	if err != nil {
		return nil, err
	}

	userText := prompt
	if userText == "" {
		userText = "Analyze this file: " + result.FileName
	}

	conv, err := s.thread(clientID, s.sessionThread(sessionID, threadID), userText)
	if err != nil {
		return nil, err
	}

	userMsg := &models.Message{
		ConversationID: conv.ID,
		Sender:         models.SenderUser,
		Text:           userText,
	}
	if err := s.convRepo.AddMessage(userMsg); err != nil {
		return nil, err
	}
	s.trackTurn(sessionID, conv.ID, chat.Entry{ID: userMsg.ID, Sender: models.SenderUser, Text: userText})

	analysisPrompt := llm.BuildAnalysisPrompt(result.URL, prompt)
	turns := []llm.Turn{{Role: "user", Content: analysisPrompt}}

	bc, err := s.retriever.GetBusinessContext(ctx, clientID, userText)
	if err != nil {
		return nil, err
	}
	systemPrompt := llm.BuildSystemPrompt(bc)

	genResult, genErr := s.llm.GenerateChat(ctx, systemPrompt, turns)
	return s.finishTurn(clientID, sessionID, conv, genResult, genErr, models.UsageAnalysis, true)
}

// History returns a thread's messages
func (s *ChatService) History(clientID uuid.UUID, threadID string) ([]models.Message, error) {
	conv, err := s.convRepo.GetByID(clientID, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("conversation not found")
		}
		return nil, err
	}
	return s.convRepo.ListMessages(conv.ID)
}

// ListThreads returns the client's conversations, most recent first
func (s *ChatService) ListThreads(clientID uuid.UUID) ([]models.Conversation, error) {
	return s.convRepo.List(clientID)
}

// DeleteThread removes a conversation and its messages
func (s *ChatService) DeleteThread(clientID uuid.UUID, threadID string) error {
	if err := s.convRepo.Delete(clientID, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("conversation not found")
		}
		return err
	}
	return nil
}

// SessionHistory returns the chat panel's message list for a session
func (s *ChatService) SessionHistory(sessionID string) []chat.Entry {
	return s.store.History(sessionID)
}

// LastGenerated returns the pending save-as-document content for a
// session, if any
func (s *ChatService) LastGenerated(sessionID string) (string, bool) {
	return s.store.LastGenerated(sessionID)
}

// ClearLastGenerated drops the pending save offer once consumed
func (s *ChatService) ClearLastGenerated(sessionID string) {
	s.store.ClearLastGenerated(sessionID)
}

// gate rejects the turn when no active subscription or no spendable
// tokens remain
func (s *ChatService) gate(clientID uuid.UUID) error {
	sub, err := s.subRepo.GetActiveByClient(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSubscription
		}
		return err
	}
	if !sub.IsActive() {
		return ErrNoActiveSubscription
	}
	if sub.TotalTokens() <= 0 {
		return ErrTokensExhausted
	}
	return nil
}

// sessionThread falls back to the session's running thread when the
// request names none
func (s *ChatService) sessionThread(sessionID, threadID string) string {
	if threadID != "" || sessionID == "" {
		return threadID
	}
	if tid := s.store.ThreadID(sessionID); tid != nil {
		return tid.String()
	}
	return ""
}

// trackTurn mirrors a persisted turn into the session's panel history
// and pins the running thread
func (s *ChatService) trackTurn(sessionID string, threadID uuid.UUID, entry chat.Entry) {
	if sessionID == "" {
		return
	}
	s.store.SetThreadID(sessionID, threadID)
	s.store.Append(sessionID, entry)
}

// thread resolves or creates the conversation for a turn
func (s *ChatService) thread(clientID uuid.UUID, threadID, firstMessage string) (*models.Conversation, error) {
	if threadID != "" {
		conv, err := s.convRepo.GetByID(clientID, threadID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("conversation not found")
			}
			return nil, err
		}
		return conv, nil
	}

	conv := &models.Conversation{
		ClientID: clientID,
		Title:    threadTitle(firstMessage),
	}
	if err := s.convRepo.Create(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *ChatService) recentTurns(conversationID uuid.UUID) ([]llm.Turn, error) {
	messages, err := s.convRepo.RecentMessages(conversationID, contextTurns)
	if err != nil {
		return nil, err
	}

	turns := make([]llm.Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, llm.Turn{Role: m.Sender, Content: m.Text})
	}
	return turns, nil
}

// finishTurn persists the assistant reply (or the error turn), meters
// tokens and decides the save offer.
func (s *ChatService) finishTurn(clientID uuid.UUID, sessionID string, conv *models.Conversation, result *llm.Result, genErr error, usageKind string, analysis bool) (*ChatResponse, error) {
	text := assistantErrorReply
	tokensUsed := 0
	if genErr != nil {
		log.Printf("⚠️ generation failed for client %s: %v", clientID, genErr)
	} else {
		text = result.Text
		tokensUsed = result.TokensUsed
	}

	assistantMsg := &models.Message{
		ConversationID: conv.ID,
		Sender:         models.SenderAssistant,
		Text:           text,
		Analysis:       analysis,
	}
	if err := s.convRepo.AddMessage(assistantMsg); err != nil {
		return nil, err
	}
	if err := s.convRepo.Touch(conv.ID); err != nil {
		log.Printf("⚠️ failed to touch conversation %s: %v", conv.ID, err)
	}
	s.trackTurn(sessionID, conv.ID, chat.Entry{
		ID:       assistantMsg.ID,
		Sender:   models.SenderAssistant,
		Text:     text,
		Analysis: analysis,
	})

	if tokensUsed > 0 {
		if err := s.usageRepo.Record(&models.TokenUsage{
			ClientID: clientID,
			Kind:     usageKind,
			Tokens:   tokensUsed,
		}); err != nil {
			log.Printf("⚠️ failed to record token usage: %v", err)
		}
		if err := s.subRepo.ConsumeTokens(clientID, tokensUsed); err != nil {
			log.Printf("⚠️ failed to consume tokens: %v", err)
		}
	}

	offerSave := genErr == nil && (analysis || len(text) >= saveOfferMinChars)
	if offerSave && sessionID != "" {
		s.store.SetLastGenerated(sessionID, text)
	}

	s.bus.Publish(events.Event{
		Type:     events.TypeConversation,
		ClientID: clientID,
		Payload:  assistantMsg,
	})

	return &ChatResponse{
		ThreadID:   conv.ID,
		Message:    *assistantMsg,
		TokensUsed: tokensUsed,
		OfferSave:  offerSave,
	}, nil
}

func threadTitle(text string) string {
	const max = 60
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}
