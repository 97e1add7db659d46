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

type SprintRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SprintMapper
}

func NewSprintRepository(db *gorm.DB) contract.SprintRepository {
	return &SprintRepositoryImpl{
		db:     db,
		mapper: mapper.NewSprintMapper(),
	}
}

func (r *SprintRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SprintRepositoryImpl) Create(ctx context.Context, sprint *entity.Sprint) error {
	m := r.mapper.ToModel(sprint)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*sprint = *r.mapper.ToEntity(m)
	return nil
}

func (r *SprintRepositoryImpl) Update(ctx context.Context, sprint *entity.Sprint) error {
	m := r.mapper.ToModel(sprint)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*sprint = *r.mapper.ToEntity(m)
	return nil
}

func (r *SprintRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sprint{}, id).Error
}

func (r *SprintRepositoryImpl) DeactivateAllByProjectId(ctx context.Context, projectId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Sprint{}).
		Where("project_id = ?", projectId).
		Update("is_active", false).Error
}

func (r *SprintRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Sprint, error) {
	var m model.Sprint
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SprintRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Sprint, error) {
	var models []*model.Sprint
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Sprint, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

type WorkItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkItemMapper
}

func NewWorkItemRepository(db *gorm.DB) contract.WorkItemRepository {
	return &WorkItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkItemMapper(),
	}
}

func (r *WorkItemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WorkItemRepositoryImpl) Create(ctx context.Context, item *entity.WorkItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkItemRepositoryImpl) Update(ctx context.Context, item *entity.WorkItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkItemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WorkItem{}, id).Error
}

func (r *WorkItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkItem, error) {
	var m model.WorkItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WorkItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkItem, error) {
	var models []*model.WorkItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.WorkItem, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *WorkItemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.WorkItem{}).Count(&count).Error
	return count, err
}
