package mapper

import (
	"planhub-be/internal/entity"
	"planhub-be/internal/model"
)

type OkrMapper struct{}

func NewOkrMapper() *OkrMapper {
	return &OkrMapper{}
}

func (m *OkrMapper) ObjectiveToEntity(o *model.Objective) *entity.Objective {
	if o == nil {
		return nil
	}

	return &entity.Objective{
		Id:             o.Id,
		OrganizationId: o.OrganizationId,
		ProjectId:      o.ProjectId,
		SeqNumber:      o.SeqNumber,
		Reference:      o.Reference,
		Title:          o.Title,
		Description:    o.Description,
		Status:         o.Status,
		TargetDate:     o.TargetDate,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      updatedAtToPtr(o.UpdatedAt),
		DeletedAt:      softDeleteToPtr(o.DeletedAt),
	}
}

func (m *OkrMapper) ObjectiveToModel(o *entity.Objective) *model.Objective {
	if o == nil {
		return nil
	}

	return &model.Objective{
		Id:             o.Id,
		OrganizationId: o.OrganizationId,
		ProjectId:      o.ProjectId,
		SeqNumber:      o.SeqNumber,
		Reference:      o.Reference,
		Title:          o.Title,
		Description:    o.Description,
		Status:         o.Status,
		TargetDate:     o.TargetDate,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      ptrToUpdatedAt(o.UpdatedAt),
		DeletedAt:      ptrToSoftDelete(o.DeletedAt),
	}
}

func (m *OkrMapper) KeyResultToEntity(k *model.KeyResult) *entity.KeyResult {
	if k == nil {
		return nil
	}

	return &entity.KeyResult{
		Id:           k.Id,
		ObjectiveId:  k.ObjectiveId,
		SeqNumber:    k.SeqNumber,
		Reference:    k.Reference,
		Title:        k.Title,
		TargetValue:  k.TargetValue,
		CurrentValue: k.CurrentValue,
		Unit:         k.Unit,
		Status:       k.Status,
		CreatedAt:    k.CreatedAt,
		UpdatedAt:    updatedAtToPtr(k.UpdatedAt),
		DeletedAt:    softDeleteToPtr(k.DeletedAt),
	}
}

func (m *OkrMapper) KeyResultToModel(k *entity.KeyResult) *model.KeyResult {
	if k == nil {
		return nil
	}

	return &model.KeyResult{
		Id:           k.Id,
		ObjectiveId:  k.ObjectiveId,
		SeqNumber:    k.SeqNumber,
		Reference:    k.Reference,
		Title:        k.Title,
		TargetValue:  k.TargetValue,
		CurrentValue: k.CurrentValue,
		Unit:         k.Unit,
		Status:       k.Status,
		CreatedAt:    k.CreatedAt,
		UpdatedAt:    ptrToUpdatedAt(k.UpdatedAt),
		DeletedAt:    ptrToSoftDelete(k.DeletedAt),
	}
}
