package postgres

import (
	"time"

	requestDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/request"
	"github.com/frahmantamala/inventory-management/internal/request"
	"gorm.io/gorm"
)

// RequestRepository implements the request.Repository interface using GORM
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) request.Repository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *request.ItemRequest) error {
	row := request.ToDataModel(req)
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	req.ID = row.ID
	return nil
}

func (r *RequestRepository) GetByID(id int64) (*request.ItemRequest, error) {
	var row requestDatamodel.ItemRequest
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, request.ErrRequestNotFound
		}
		return nil, err
	}
	return request.FromDataModel(&row), nil
}

func (r *RequestRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&requestDatamodel.ItemRequest{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *RequestRepository) List(filter request.ListFilter) ([]*request.ItemRequest, error) {
	q := r.db.Model(&requestDatamodel.ItemRequest{}).Order("created_at DESC")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var rows []*requestDatamodel.ItemRequest
	err := q.Limit(filter.Limit).Offset(filter.Offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(rows), nil
}

func (r *RequestRepository) Update(req *request.ItemRequest) error {
	req.UpdatedAt = time.Now()
	return r.db.Save(request.ToDataModel(req)).Error
}

func (r *RequestRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&requestDatamodel.ItemRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *RequestRepository) Delete(id int64) error {
	return r.db.Delete(&requestDatamodel.ItemRequest{}, id).Error
}
