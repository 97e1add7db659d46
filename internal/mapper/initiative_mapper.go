package mapper

import (
	"planhub-be/internal/entity"
	"planhub-be/internal/model"
)

type InitiativeMapper struct{}

func NewInitiativeMapper() *InitiativeMapper {
	return &InitiativeMapper{}
}

func (m *InitiativeMapper) ToEntity(i *model.Initiative) *entity.Initiative {
	if i == nil {
		return nil
	}

	return &entity.Initiative{
		Id:             i.Id,
		OrganizationId: i.OrganizationId,
		ProjectId:      i.ProjectId,
		ObjectiveId:    i.ObjectiveId,
		MilestoneId:    i.MilestoneId,
		SeqNumber:      i.SeqNumber,
		Reference:      i.Reference,
		Title:          i.Title,
		Description:    i.Description,
		Status:         i.Status,
		Priority:       i.Priority,
		StartDate:      i.StartDate,
		TargetDate:     i.TargetDate,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      updatedAtToPtr(i.UpdatedAt),
		DeletedAt:      softDeleteToPtr(i.DeletedAt),
	}
}

func (m *InitiativeMapper) ToModel(i *entity.Initiative) *model.Initiative {
	if i == nil {
		return nil
	}

	return &model.Initiative{
		Id:             i.Id,
		OrganizationId: i.OrganizationId,
		ProjectId:      i.ProjectId,
		ObjectiveId:    i.ObjectiveId,
		MilestoneId:    i.MilestoneId,
		SeqNumber:      i.SeqNumber,
		Reference:      i.Reference,
		Title:          i.Title,
		Description:    i.Description,
		Status:         i.Status,
		Priority:       i.Priority,
		StartDate:      i.StartDate,
		TargetDate:     i.TargetDate,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      ptrToUpdatedAt(i.UpdatedAt),
		DeletedAt:      ptrToSoftDelete(i.DeletedAt),
	}
}
