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

type InitiativeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InitiativeMapper
}

func NewInitiativeRepository(db *gorm.DB) contract.InitiativeRepository {
	return &InitiativeRepositoryImpl{
		db:     db,
		mapper: mapper.NewInitiativeMapper(),
	}
}

func (r *InitiativeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InitiativeRepositoryImpl) Create(ctx context.Context, initiative *entity.Initiative) error {
	m := r.mapper.ToModel(initiative)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*initiative = *r.mapper.ToEntity(m)
	return nil
}

func (r *InitiativeRepositoryImpl) Update(ctx context.Context, initiative *entity.Initiative) error {
	m := r.mapper.ToModel(initiative)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*initiative = *r.mapper.ToEntity(m)
	return nil
}

func (r *InitiativeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Initiative{}, id).Error
}

func (r *InitiativeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Initiative, error) {
	var m model.Initiative
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InitiativeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Initiative, error) {
	var models []*model.Initiative
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Initiative, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *InitiativeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Initiative{}).Count(&count).Error
	return count, err
}
