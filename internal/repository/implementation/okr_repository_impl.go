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

type ObjectiveRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OkrMapper
}

func NewObjectiveRepository(db *gorm.DB) contract.ObjectiveRepository {
	return &ObjectiveRepositoryImpl{
		db:     db,
		mapper: mapper.NewOkrMapper(),
	}
}

func (r *ObjectiveRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ObjectiveRepositoryImpl) Create(ctx context.Context, objective *entity.Objective) error {
	m := r.mapper.ObjectiveToModel(objective)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*objective = *r.mapper.ObjectiveToEntity(m)
	return nil
}

func (r *ObjectiveRepositoryImpl) Update(ctx context.Context, objective *entity.Objective) error {
	m := r.mapper.ObjectiveToModel(objective)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*objective = *r.mapper.ObjectiveToEntity(m)
	return nil
}

func (r *ObjectiveRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Objective{}, id).Error
}

func (r *ObjectiveRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Objective, error) {
	var m model.Objective
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ObjectiveToEntity(&m), nil
}

func (r *ObjectiveRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Objective, error) {
	var models []*model.Objective
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Objective, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ObjectiveToEntity(m)
	}
	return entities, nil
}

type KeyResultRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OkrMapper
}

func NewKeyResultRepository(db *gorm.DB) contract.KeyResultRepository {
	return &KeyResultRepositoryImpl{
		db:     db,
		mapper: mapper.NewOkrMapper(),
	}
}

func (r *KeyResultRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KeyResultRepositoryImpl) Create(ctx context.Context, keyResult *entity.KeyResult) error {
	m := r.mapper.KeyResultToModel(keyResult)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*keyResult = *r.mapper.KeyResultToEntity(m)
	return nil
}

func (r *KeyResultRepositoryImpl) Update(ctx context.Context, keyResult *entity.KeyResult) error {
	m := r.mapper.KeyResultToModel(keyResult)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*keyResult = *r.mapper.KeyResultToEntity(m)
	return nil
}

func (r *KeyResultRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KeyResult{}, id).Error
}

func (r *KeyResultRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KeyResult, error) {
	var m model.KeyResult
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.KeyResultToEntity(&m), nil
}

func (r *KeyResultRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KeyResult, error) {
	var models []*model.KeyResult
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.KeyResult, len(models))
	for i, m := range models {
		entities[i] = r.mapper.KeyResultToEntity(m)
	}
	return entities, nil
}
