package postgres

import (
	"github.com/frahmantamala/inventory-management/internal/catalog"
	catalogDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

// CategoryRepository implements catalog.CategoryRepository using GORM
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) catalog.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *catalog.Category) error {
	row := catalog.CategoryToDataModel(c)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	c.ID = row.ID
	return nil
}

func (r *CategoryRepository) GetByID(id int64) (*catalog.Category, error) {
	var row catalogDatamodel.Category
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, err
	}
	return catalog.CategoryFromDataModel(&row), nil
}

func (r *CategoryRepository) GetAll() ([]*catalog.Category, error) {
	var rows []*catalogDatamodel.Category
	if err := r.db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.CategoryFromDataModel(row))
	}
	return out, nil
}

func (r *CategoryRepository) Update(c *catalog.Category) error {
	return r.db.Save(catalog.CategoryToDataModel(c)).Error
}

func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Delete(&catalogDatamodel.Category{}, id).Error
}

// AreaRepository implements catalog.AreaRepository using GORM
type AreaRepository struct {
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) catalog.AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) Create(a *catalog.Area) error {
	row := catalog.AreaToDataModel(a)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	a.ID = row.ID
	return nil
}

func (r *AreaRepository) GetByID(id int64) (*catalog.Area, error) {
	var row catalogDatamodel.Area
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, catalog.ErrAreaNotFound
		}
		return nil, err
	}
	return catalog.AreaFromDataModel(&row), nil
}

func (r *AreaRepository) GetAll() ([]*catalog.Area, error) {
	var rows []*catalogDatamodel.Area
	if err := r.db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Area, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.AreaFromDataModel(row))
	}
	return out, nil
}

func (r *AreaRepository) Update(a *catalog.Area) error {
	return r.db.Save(catalog.AreaToDataModel(a)).Error
}

func (r *AreaRepository) Delete(id int64) error {
	return r.db.Delete(&catalogDatamodel.Area{}, id).Error
}
