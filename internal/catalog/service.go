package catalog

import (
	"log/slog"
	"time"
)

// CategoryRepository defines the data access methods for categories.
type CategoryRepository interface {
	Create(c *Category) error
	GetByID(id int64) (*Category, error)
	GetAll() ([]*Category, error)
	Update(c *Category) error
	Delete(id int64) error
}

// AreaRepository defines the data access methods for areas.
type AreaRepository interface {
	Create(a *Area) error
	GetByID(id int64) (*Area, error)
	GetAll() ([]*Area, error)
	Update(a *Area) error
	Delete(id int64) error
}

type Service struct {
	categories CategoryRepository
	areas      AreaRepository
	logger     *slog.Logger
}

func NewService(categories CategoryRepository, areas AreaRepository, logger *slog.Logger) *Service {
	return &Service{
		categories: categories,
		areas:      areas,
		logger:     logger,
	}
}

func (s *Service) CreateCategory(dto BoundaryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Category{
		Name:      dto.Name,
		Code:      dto.Code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categories.Create(c); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("category created", "category_id", c.ID, "code", c.Code)
	return c, nil
}

func (s *Service) GetCategory(id int64) (*Category, error) {
	c, err := s.categories.GetByID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *Service) ListCategories() ([]*Category, error) {
	return s.categories.GetAll()
}

func (s *Service) UpdateCategory(id int64, dto UpdateBoundaryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.categories.GetByID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.Code != nil {
		c.Code = *dto.Code
	}
	c.UpdatedAt = time.Now()

	if err := s.categories.Update(c); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(id int64) error {
	if _, err := s.categories.GetByID(id); err != nil {
		return ErrCategoryNotFound
	}
	if err := s.categories.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return err
	}
	return nil
}

func (s *Service) CreateArea(dto BoundaryDTO) (*Area, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &Area{
		Name:      dto.Name,
		Code:      dto.Code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.areas.Create(a); err != nil {
		s.logger.Error("failed to create area", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("area created", "area_id", a.ID, "code", a.Code)
	return a, nil
}

func (s *Service) GetArea(id int64) (*Area, error) {
	a, err := s.areas.GetByID(id)
	if err != nil {
		return nil, ErrAreaNotFound
	}
	return a, nil
}

func (s *Service) ListAreas() ([]*Area, error) {
	return s.areas.GetAll()
}

func (s *Service) UpdateArea(id int64, dto UpdateBoundaryDTO) (*Area, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.areas.GetByID(id)
	if err != nil {
		return nil, ErrAreaNotFound
	}

	if dto.Name != nil {
		a.Name = *dto.Name
	}
	if dto.Code != nil {
		a.Code = *dto.Code
	}
	a.UpdatedAt = time.Now()

	if err := s.areas.Update(a); err != nil {
		s.logger.Error("failed to update area", "error", err, "area_id", id)
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteArea(id int64) error {
	if _, err := s.areas.GetByID(id); err != nil {
		return ErrAreaNotFound
	}
	if err := s.areas.Delete(id); err != nil {
		s.logger.Error("failed to delete area", "error", err, "area_id", id)
		return err
	}
	return nil
}
