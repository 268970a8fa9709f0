package service

import (
	"context"

	apperrors "github.com/linklift/linklift/internal/errors"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/repository"
)

// ChatService is the append-only per-ride message log. Ordering is append
// order; nothing fancier.
type ChatService interface {
	List(ctx context.Context, rideID string) ([]*models.MessageResponse, error)
	Post(ctx context.Context, rideID, authorID, body string) (*models.MessageResponse, error)
}

type chatService struct {
	rideRepo    repository.RideRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewChatService(
	rideRepo repository.RideRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
) ChatService {
	return &chatService{
		rideRepo:    rideRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

func (s *chatService) List(ctx context.Context, rideID string) ([]*models.MessageResponse, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, apperrors.NotFound("ride")
	}

	messages, err := s.messageRepo.ListByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		authorIDs = append(authorIDs, msg.AuthorID)
	}
	authors, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	result := make([]*models.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		resp := msg.ToResponse()
		if author, ok := authors[msg.AuthorID]; ok {
			resp.Author = author.ToResponse()
		}
		result = append(result, resp)
	}
	return result, nil
}

// Post appends a message. Only ride participants (publisher or approved
// requesters) may write.
func (s *chatService) Post(ctx context.Context, rideID, authorID, body string) (*models.MessageResponse, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, apperrors.NotFound("ride")
	}

	requests, err := s.requestRepo.ListByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !participant(ride, requests, authorID) {
		return nil, apperrors.NotAuthorized("only ride participants can post messages")
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperrors.NotFound("user")
	}

	msg := &models.Message{
		RideID:   rideID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.messageRepo.Append(ctx, msg); err != nil {
		return nil, err
	}

	resp := msg.ToResponse()
	resp.Author = author.ToResponse()
	return resp, nil
}
