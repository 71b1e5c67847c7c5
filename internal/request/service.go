package request

import (
	"crypto/rand"
	"log/slog"
	"time"
)

// Repository defines the data access methods for item requests
type Repository interface {
	Create(req *ItemRequest) error
	GetByID(id int64) (*ItemRequest, error)
	CodeExists(code string) (bool, error)
	List(filter ListFilter) ([]*ItemRequest, error)
	Update(req *ItemRequest) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
}

// Service handles the item-request approval workflow.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return "REQ-" + string(buf), nil
}

// CreateRequest files a new request on behalf of userID; it starts PENDING.
func (s *Service) CreateRequest(userID int64, dto CreateRequestDTO) (*ItemRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("request validation failed", "error", err)
		return nil, err
	}

	now := time.Now()
	req := &ItemRequest{
		UserID:        userID,
		Name:          dto.Name,
		Description:   dto.Description,
		PriceRange:    dto.PriceRange,
		ReferenceLink: dto.ReferenceLink,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		exists, err := s.repo.CodeExists(code)
		if err != nil {
			return nil, err
		}
		if !exists {
			req.Code = code
			break
		}
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create request", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("request created", "request_id", req.ID, "code", req.Code, "user_id", userID)
	return req, nil
}

func (s *Service) GetRequest(id int64) (*ItemRequest, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get request", "error", err, "request_id", id)
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *Service) ListRequests(filter ListFilter) ([]*ItemRequest, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != nil && !ValidStatus(*filter.Status) {
		return nil, ErrUnknownStatus
	}
	reqs, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list requests", "error", err)
		return nil, err
	}
	return reqs, nil
}

// UpdateRequest edits a request's content. Only PENDING requests can be
// edited, and only by their author.
func (s *Service) UpdateRequest(id, userID int64, dto UpdateRequestDTO) (*ItemRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrRequestNotFound
	}
	if req.UserID != userID {
		return nil, ErrRequestNotFound
	}
	if req.Status != StatusPending {
		return nil, ErrIllegalTransition
	}

	if dto.Name != nil {
		req.Name = *dto.Name
	}
	if dto.Description != nil {
		req.Description = *dto.Description
	}
	if dto.PriceRange != nil {
		req.PriceRange = *dto.PriceRange
	}
	if dto.ReferenceLink != nil {
		req.ReferenceLink = dto.ReferenceLink
	}
	req.UpdatedAt = time.Now()

	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to update request", "error", err, "request_id", id)
		return nil, err
	}

	return req, nil
}

// Transition applies an approval decision. The handler gates this behind
// the owner role; here only the state machine is enforced.
func (s *Service) Transition(id int64, dto TransitionDTO) (*ItemRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	if !CanTransition(req.Status, dto.Status) {
		s.logger.Warn("illegal request transition",
			"request_id", id, "from", req.Status, "to", dto.Status)
		return nil, ErrIllegalTransition
	}

	if err := s.repo.UpdateStatus(id, dto.Status); err != nil {
		s.logger.Error("failed to transition request", "error", err, "request_id", id)
		return nil, err
	}

	req.Status = dto.Status
	req.UpdatedAt = time.Now()
	s.logger.Info("request transitioned", "request_id", id, "status", dto.Status)
	return req, nil
}

// DeleteRequest removes a request. The author can withdraw a PENDING
// request; any other delete is an admin action handled at the router.
func (s *Service) DeleteRequest(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrRequestNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete request", "error", err, "request_id", id)
		return err
	}
	s.logger.Info("request deleted", "request_id", id)
	return nil
}
