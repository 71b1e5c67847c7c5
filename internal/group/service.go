package group

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/inventory-management/internal/item"
)

// Repository defines the data access methods for groups and memberships.
// AddItem must reject a duplicate (item, group) pair, and DeleteCascade
// must remove the group and all its memberships in one transaction.
type Repository interface {
	Create(g *Group) error
	GetByID(id int64) (*Group, error)
	List(limit, offset int) ([]*Group, error)
	DeleteCascade(id int64) error
	AddItem(groupID, itemID int64) (*Membership, error)
	RemoveItem(groupID, itemID int64) error
	ListItems(groupID int64) ([]*item.Item, error)
}

// ItemChecker resolves item existence without depending on the item service.
type ItemChecker interface {
	Exists(itemID int64) (bool, error)
}

type Service struct {
	repo   Repository
	items  ItemChecker
	logger *slog.Logger
}

func NewService(repo Repository, items ItemChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		items:  items,
		logger: logger,
	}
}

func (s *Service) CreateGroup(dto CreateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	g := &Group{
		Name:      dto.Name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(g); err != nil {
		s.logger.Error("failed to create group", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("group created", "group_id", g.ID, "name", g.Name)
	return g, nil
}

func (s *Service) GetGroup(id int64) (*Group, error) {
	g, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

func (s *Service) ListGroups(limit, offset int) ([]*Group, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(limit, offset)
}

// DeleteGroup removes the group together with every membership row.
// Items themselves are untouched.
func (s *Service) DeleteGroup(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrGroupNotFound
	}
	if err := s.repo.DeleteCascade(id); err != nil {
		s.logger.Error("failed to delete group", "error", err, "group_id", id)
		return err
	}
	s.logger.Info("group deleted", "group_id", id)
	return nil
}

// AddItem puts an item into a group. Adding the same item twice yields a
// conflict.
func (s *Service) AddItem(groupID int64, dto AddItemDTO) (*Membership, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(groupID); err != nil {
		return nil, ErrGroupNotFound
	}

	exists, err := s.items.Exists(dto.ItemID)
	if err != nil {
		s.logger.Error("failed to check item", "error", err, "item_id", dto.ItemID)
		return nil, err
	}
	if !exists {
		return nil, item.ErrItemNotFound
	}

	m, err := s.repo.AddItem(groupID, dto.ItemID)
	if err != nil {
		s.logger.Error("failed to add item to group", "error", err, "group_id", groupID, "item_id", dto.ItemID)
		return nil, err
	}

	s.logger.Info("item added to group", "group_id", groupID, "item_id", dto.ItemID)
	return m, nil
}

func (s *Service) RemoveItem(groupID, itemID int64) error {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return ErrGroupNotFound
	}

	if err := s.repo.RemoveItem(groupID, itemID); err != nil {
		s.logger.Error("failed to remove item from group", "error", err, "group_id", groupID, "item_id", itemID)
		return err
	}

	s.logger.Info("item removed from group", "group_id", groupID, "item_id", itemID)
	return nil
}

func (s *Service) ListItems(groupID int64) ([]*item.Item, error) {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return nil, ErrGroupNotFound
	}
	return s.repo.ListItems(groupID)
}
