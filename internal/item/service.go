package item

import (
	"crypto/rand"
	"log/slog"
	"time"
)

// Repository defines the data access methods for items
type Repository interface {
	Create(item *Item) error
	GetByID(id int64) (*Item, error)
	CodeExists(code string) (bool, error)
	List(filter ListFilter) ([]*Item, error)
	Update(item *Item) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	DueBetween(from, to time.Time) ([]*Item, error)
}

// AssignmentRepository owns the user-item relation. The multi-write methods
// run the row change and the item status change in one transaction.
type AssignmentRepository interface {
	Assign(userID, itemID int64) (*Assignment, error)
	Unassign(assignmentID int64) error
	Reassign(assignmentID, newItemID int64) (*Assignment, error)
	GetByID(assignmentID int64) (*Assignment, error)
	ListByUser(userID int64) ([]*Assignment, error)
	ListAll(limit, offset int) ([]*Assignment, error)
}

// UserChecker resolves assignee existence without pulling in the user module.
type UserChecker interface {
	Exists(userID int64) (bool, error)
}

// Service handles item lifecycle business logic
type Service struct {
	repo        Repository
	assignments AssignmentRepository
	users       UserChecker
	logger      *slog.Logger
}

func NewService(repo Repository, assignments AssignmentRepository, users UserChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		assignments: assignments,
		users:       users,
		logger:      logger,
	}
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateCode produces a short human-readable item code like INV-7XK2QD.
func generateCode(prefix string) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return prefix + "-" + string(buf), nil
}

// CreateItem registers a new item with a generated unique code.
func (s *Service) CreateItem(dto CreateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("item validation failed", "error", err)
		return nil, err
	}

	now := time.Now()
	it := &Item{
		CategoryID: dto.CategoryID,
		AreaID:     dto.AreaID,
		Name:       dto.Name,
		Price:      dto.Price,
		Status:     StatusUnused,
		GroupCode:  dto.GroupCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if dto.ExaminationPeriodMonths != nil {
		due := ComputeExaminationDueDate(*dto.ExaminationPeriodMonths, now)
		it.ExaminationDueAt = &due
	}

	// Codes are random; retry a few times on the rare collision.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateCode("INV")
		if err != nil {
			return nil, err
		}
		exists, err := s.repo.CodeExists(code)
		if err != nil {
			return nil, err
		}
		if !exists {
			it.Code = code
			break
		}
	}
	if it.Code == "" {
		return nil, ErrDuplicateCode
	}

	if err := s.repo.Create(it); err != nil {
		s.logger.Error("failed to create item", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("item created", "item_id", it.ID, "code", it.Code)
	return it, nil
}

func (s *Service) GetItem(id int64) (*Item, error) {
	it, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get item", "error", err, "item_id", id)
		return nil, ErrItemNotFound
	}
	return it, nil
}

func (s *Service) ListItems(filter ListFilter) ([]*Item, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	items, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list items", "error", err)
		return nil, err
	}
	return items, nil
}

func (s *Service) UpdateItem(id int64, dto UpdateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	if dto.CategoryID != nil {
		it.CategoryID = *dto.CategoryID
	}
	if dto.AreaID != nil {
		it.AreaID = *dto.AreaID
	}
	if dto.Name != nil {
		it.Name = *dto.Name
	}
	if dto.Price != nil {
		it.Price = *dto.Price
	}
	if dto.GroupCode != nil {
		it.GroupCode = dto.GroupCode
	}
	if dto.ExaminationPeriodMonths != nil {
		due := ComputeExaminationDueDate(*dto.ExaminationPeriodMonths, time.Now())
		it.ExaminationDueAt = &due
	}
	it.UpdatedAt = time.Now()

	if err := s.repo.Update(it); err != nil {
		s.logger.Error("failed to update item", "error", err, "item_id", id)
		return nil, err
	}

	return it, nil
}

func (s *Service) DeleteItem(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrItemNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete item", "error", err, "item_id", id)
		return err
	}
	s.logger.Info("item deleted", "item_id", id)
	return nil
}

// MarkBroken flags an item as broken regardless of its current status.
func (s *Service) MarkBroken(id int64) (*Item, error) {
	it, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	it.MarkBroken()
	if err := s.repo.UpdateStatus(id, StatusBroken); err != nil {
		s.logger.Error("failed to mark item broken", "error", err, "item_id", id)
		return nil, err
	}
	s.logger.Info("item marked broken", "item_id", id)
	return it, nil
}

// MarkRepaired transitions a broken item to repaired; any other source
// status is an illegal transition.
func (s *Service) MarkRepaired(id int64) (*Item, error) {
	it, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	if !it.IsBroken() {
		s.logger.Warn("cannot repair item in current status", "item_id", id, "status", it.Status)
		return nil, ErrItemNotBroken
	}
	it.MarkRepaired()
	if err := s.repo.UpdateStatus(id, StatusRepaired); err != nil {
		s.logger.Error("failed to mark item repaired", "error", err, "item_id", id)
		return nil, err
	}
	s.logger.Info("item marked repaired", "item_id", id)
	return it, nil
}

// AssignItem checks out an item to a user. The assignment row and the USED
// status land atomically; an item with a live assignment yields a conflict.
func (s *Service) AssignItem(dto AssignItemDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(dto.UserID)
	if err != nil {
		s.logger.Error("failed to check user", "error", err, "user_id", dto.UserID)
		return nil, err
	}
	if !exists {
		return nil, ErrAssigneeNotFound
	}

	if _, err := s.repo.GetByID(dto.ItemID); err != nil {
		return nil, ErrItemNotFound
	}

	assignment, err := s.assignments.Assign(dto.UserID, dto.ItemID)
	if err != nil {
		s.logger.Error("failed to assign item", "error", err, "user_id", dto.UserID, "item_id", dto.ItemID)
		return nil, err
	}

	s.logger.Info("item assigned", "assignment_id", assignment.ID, "user_id", dto.UserID, "item_id", dto.ItemID)
	return assignment, nil
}

// UnassignItem returns an item; the row delete and the UNUSED status land
// atomically.
func (s *Service) UnassignItem(assignmentID int64) error {
	if _, err := s.assignments.GetByID(assignmentID); err != nil {
		return ErrAssignmentNotFound
	}

	if err := s.assignments.Unassign(assignmentID); err != nil {
		s.logger.Error("failed to unassign item", "error", err, "assignment_id", assignmentID)
		return err
	}

	s.logger.Info("item unassigned", "assignment_id", assignmentID)
	return nil
}

// ReassignItem repoints an assignment to a different item. Both item
// statuses are corrected in the same transaction.
func (s *Service) ReassignItem(assignmentID int64, dto ReassignItemDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.assignments.GetByID(assignmentID); err != nil {
		return nil, ErrAssignmentNotFound
	}

	if _, err := s.repo.GetByID(dto.NewItemID); err != nil {
		return nil, ErrItemNotFound
	}

	assignment, err := s.assignments.Reassign(assignmentID, dto.NewItemID)
	if err != nil {
		s.logger.Error("failed to reassign item", "error", err, "assignment_id", assignmentID, "new_item_id", dto.NewItemID)
		return nil, err
	}

	s.logger.Info("assignment repointed", "assignment_id", assignmentID, "new_item_id", dto.NewItemID)
	return assignment, nil
}

func (s *Service) ListAssignments(limit, offset int) ([]*Assignment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.assignments.ListAll(limit, offset)
}

func (s *Service) ListAssignmentsForUser(userID int64) ([]*Assignment, error) {
	return s.assignments.ListByUser(userID)
}

// UpcomingExaminations returns items whose examination falls due within the
// next seven days: due > now and due < now+7d.
func (s *Service) UpcomingExaminations(now time.Time) ([]*Item, error) {
	items, err := s.repo.DueBetween(now, now.Add(ExaminationWindow))
	if err != nil {
		s.logger.Error("failed to list upcoming examinations", "error", err)
		return nil, err
	}
	return items, nil
}

// Exists satisfies the membership check used by the group module.
func (s *Service) Exists(itemID int64) (bool, error) {
	_, err := s.repo.GetByID(itemID)
	if err != nil {
		if err == ErrItemNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AttachPhoto stores the path of an uploaded item photo.
func (s *Service) AttachPhoto(id int64, path string) (*Item, error) {
	it, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	it.PhotoPath = &path
	it.UpdatedAt = time.Now()
	if err := s.repo.Update(it); err != nil {
		return nil, err
	}
	return it, nil
}

// AttachReceipt stores the path of an uploaded purchase receipt.
func (s *Service) AttachReceipt(id int64, path string) (*Item, error) {
	it, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	it.ReceiptPath = &path
	it.UpdatedAt = time.Now()
	if err := s.repo.Update(it); err != nil {
		return nil, err
	}
	return it, nil
}
