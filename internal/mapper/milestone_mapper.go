package mapper

import (
	"planhub-be/internal/entity"
	"planhub-be/internal/model"
)

type MilestoneMapper struct{}

func NewMilestoneMapper() *MilestoneMapper {
	return &MilestoneMapper{}
}

func (m *MilestoneMapper) ToEntity(ms *model.Milestone) *entity.Milestone {
	if ms == nil {
		return nil
	}

	return &entity.Milestone{
		Id:             ms.Id,
		OrganizationId: ms.OrganizationId,
		ProjectId:      ms.ProjectId,
		SeqNumber:      ms.SeqNumber,
		Reference:      ms.Reference,
		Title:          ms.Title,
		Description:    ms.Description,
		Status:         ms.Status,
		DueDate:        ms.DueDate,
		CreatedAt:      ms.CreatedAt,
		UpdatedAt:      updatedAtToPtr(ms.UpdatedAt),
		DeletedAt:      softDeleteToPtr(ms.DeletedAt),
	}
}

func (m *MilestoneMapper) ToModel(ms *entity.Milestone) *model.Milestone {
	if ms == nil {
		return nil
	}

	return &model.Milestone{
		Id:             ms.Id,
		OrganizationId: ms.OrganizationId,
		ProjectId:      ms.ProjectId,
		SeqNumber:      ms.SeqNumber,
		Reference:      ms.Reference,
		Title:          ms.Title,
		Description:    ms.Description,
		Status:         ms.Status,
		DueDate:        ms.DueDate,
		CreatedAt:      ms.CreatedAt,
		UpdatedAt:      ptrToUpdatedAt(ms.UpdatedAt),
		DeletedAt:      ptrToSoftDelete(ms.DeletedAt),
	}
}
