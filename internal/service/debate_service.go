package service

import (
	"errors"
	"fmt"
	"strings"

	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"gorm.io/gorm"
)

type DebateService struct {
	DebateRepo *repository.DebateRepository
	AI         *AIService
}

func NewDebateService(debateRepo *repository.DebateRepository, ai *AIService) *DebateService {
	return &DebateService{
		DebateRepo: debateRepo,
		AI:         ai,
	}
}

type DebateRequest struct {
	Topic       string `json:"topic" binding:"required"`
	Description string `json:"description"`
	SideFor     string `json:"sideFor"`
	SideAgainst string `json:"sideAgainst"`
	Language    string `json:"language"`
	NewsGroupID uint   `json:"newsGroupId"`
	IsPublished bool   `json:"isPublished"`
}

type DebateTurnRequest struct {
	Side    string `json:"side" binding:"required,oneof=for against"`
	Message string `json:"message" binding:"required"`
}

type DebateTurnResponse struct {
	Reply   string                `json:"reply"`
	History []model.DebateMessage `json:"history"`
}

func (s *DebateService) ListDebates(language string, page, limit int) ([]model.Debate, int64, error) {
	return s.DebateRepo.ListPublished(language, page, limit)
}

// ListAllDebates includes drafts; the editor console uses it.
func (s *DebateService) ListAllDebates(page, limit int) ([]model.Debate, int64, error) {
	return s.DebateRepo.ListAll(page, limit)
}

func (s *DebateService) GetDebate(id uint) (*model.Debate, error) {
	debate, err := s.DebateRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrDebateNotFound
	}
	return debate, err
}

// turnSetup validates the debate and assembles the model context for
// one turn.
func (s *DebateService) turnSetup(userID, debateID uint, req *DebateTurnRequest) (string, []model.DebateMessage, []AIChatMessage, error) {
	debate, err := s.GetDebate(debateID)
	if err != nil {
		return "", nil, nil, err
	}
	if !debate.IsPublished {
		return "", nil, nil, util.ErrDebateNotFound
	}

	history, err := s.DebateRepo.ListMessages(userID, debateID)
	if err != nil {
		return "", nil, nil, err
	}

	aiHistory := make([]AIChatMessage, 0, len(history))
	for _, m := range history {
		aiHistory = append(aiHistory, AIChatMessage{Role: m.Role, Content: m.Content})
	}

	userSide, aiSide := debate.SideFor, debate.SideAgainst
	if req.Side == "against" {
		userSide, aiSide = debate.SideAgainst, debate.SideFor
	}

	system := fmt.Sprintf(
		"You are debating a curious child on the topic %q. The child argues %q; you argue %q. Be friendly, age-appropriate and brief, and always end with a question back to the child.",
		debate.Topic, userSide, aiSide,
	)
	return system, history, aiHistory, nil
}

// recordTurn stores the user's argument and the model's reply as one
// exchange.
func (s *DebateService) recordTurn(userID, debateID uint, req *DebateTurnRequest, reply string) (*model.DebateMessage, *model.DebateMessage, error) {
	userMsg := &model.DebateMessage{
		UserID:   userID,
		DebateID: debateID,
		Side:     req.Side,
		Role:     "user",
		Content:  req.Message,
	}
	if err := s.DebateRepo.CreateMessage(userMsg); err != nil {
		return nil, nil, err
	}

	aiMsg := &model.DebateMessage{
		UserID:   userID,
		DebateID: debateID,
		Side:     req.Side,
		Role:     "assistant",
		Content:  reply,
	}
	if err := s.DebateRepo.CreateMessage(aiMsg); err != nil {
		return nil, nil, err
	}
	return userMsg, aiMsg, nil
}

// Turn appends the user's argument, asks the model to argue the
// opposite side, and stores both messages. The AI call is synchronous;
// the handler blocks until the reply lands.
func (s *DebateService) Turn(userID, debateID uint, req *DebateTurnRequest) (*DebateTurnResponse, error) {
	system, history, aiHistory, err := s.turnSetup(userID, debateID, req)
	if err != nil {
		return nil, err
	}

	reply, err := s.AI.Chat(system, aiHistory, req.Message)
	if err != nil {
		return nil, err
	}

	userMsg, aiMsg, err := s.recordTurn(userID, debateID, req, reply)
	if err != nil {
		return nil, err
	}

	history = append(history, *userMsg, *aiMsg)
	return &DebateTurnResponse{Reply: reply, History: history}, nil
}

// TurnStream is the streaming variant of Turn: reply chunks go to send
// as they arrive and the exchange is stored once the reply is complete.
// A stream that breaks off mid-reply is not recorded, so the turn can
// be retried.
func (s *DebateService) TurnStream(userID, debateID uint, req *DebateTurnRequest, send func(chunk string) error) error {
	system, _, aiHistory, err := s.turnSetup(userID, debateID, req)
	if err != nil {
		return err
	}

	chunks, errs := s.AI.ChatStream(system, aiHistory, req.Message)

	var reply strings.Builder
	for chunk := range chunks {
		reply.WriteString(chunk)
		if err := send(chunk); err != nil {
			// Client gone; drain so the stream goroutine can exit.
			for range chunks {
			}
			<-errs
			return err
		}
	}
	if err := <-errs; err != nil {
		return err
	}

	_, _, err = s.recordTurn(userID, debateID, req, StripCodeFences(reply.String()))
	return err
}

func (s *DebateService) History(userID, debateID uint) ([]model.DebateMessage, error) {
	if _, err := s.GetDebate(debateID); err != nil {
		return nil, err
	}
	return s.DebateRepo.ListMessages(userID, debateID)
}

func (s *DebateService) CreateDebate(req *DebateRequest) (*model.Debate, error) {
	debate := &model.Debate{
		Topic:       req.Topic,
		Description: req.Description,
		SideFor:     req.SideFor,
		SideAgainst: req.SideAgainst,
		Language:    req.Language,
		NewsGroupID: req.NewsGroupID,
		IsPublished: req.IsPublished,
	}
	if debate.Language == "" {
		debate.Language = "en"
	}
	if err := s.DebateRepo.Create(debate); err != nil {
		return nil, err
	}
	return debate, nil
}

func (s *DebateService) UpdateDebate(id uint, req *DebateRequest) (*model.Debate, error) {
	debate, err := s.GetDebate(id)
	if err != nil {
		return nil, err
	}

	debate.Topic = req.Topic
	debate.Description = req.Description
	debate.SideFor = req.SideFor
	debate.SideAgainst = req.SideAgainst
	if req.Language != "" {
		debate.Language = req.Language
	}
	debate.NewsGroupID = req.NewsGroupID
	debate.IsPublished = req.IsPublished

	if err := s.DebateRepo.Update(debate); err != nil {
		return nil, err
	}
	return debate, nil
}

func (s *DebateService) DeleteDebate(id uint) error {
	if _, err := s.GetDebate(id); err != nil {
		return err
	}
	return s.DebateRepo.Delete(id)
}
