package implementation

import (
	"context"
	"errors"

	"planhub-be/internal/entity"
	"planhub-be/internal/mapper"
	"planhub-be/internal/model"
	"planhub-be/internal/repository/contract"
	"planhub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MilestoneMapper
}

func NewMilestoneRepository(db *gorm.DB) contract.MilestoneRepository {
	return &MilestoneRepositoryImpl{
		db:     db,
		mapper: mapper.NewMilestoneMapper(),
	}
}

func (r *MilestoneRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MilestoneRepositoryImpl) Create(ctx context.Context, milestone *entity.Milestone) error {
	m := r.mapper.ToModel(milestone)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*milestone = *r.mapper.ToEntity(m)
	return nil
}

func (r *MilestoneRepositoryImpl) Update(ctx context.Context, milestone *entity.Milestone) error {
	m := r.mapper.ToModel(milestone)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*milestone = *r.mapper.ToEntity(m)
	return nil
}

func (r *MilestoneRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Milestone{}, id).Error
}

func (r *MilestoneRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Milestone, error) {
	var m model.Milestone
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MilestoneRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Milestone, error) {
	var models []*model.Milestone
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Milestone, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MilestoneRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Milestone{}).Count(&count).Error
	return count, err
}
