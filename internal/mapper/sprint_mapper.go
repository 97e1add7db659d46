package mapper

import (
	"planhub-be/internal/entity"
	"planhub-be/internal/model"
)

type SprintMapper struct{}

func NewSprintMapper() *SprintMapper {
	return &SprintMapper{}
}

func (m *SprintMapper) ToEntity(s *model.Sprint) *entity.Sprint {
	if s == nil {
		return nil
	}

	return &entity.Sprint{
		Id:             s.Id,
		OrganizationId: s.OrganizationId,
		ProjectId:      s.ProjectId,
		SeqNumber:      s.SeqNumber,
		Reference:      s.Reference,
		Name:           s.Name,
		Goal:           s.Goal,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAtToPtr(s.UpdatedAt),
		DeletedAt:      softDeleteToPtr(s.DeletedAt),
	}
}

func (m *SprintMapper) ToModel(s *entity.Sprint) *model.Sprint {
	if s == nil {
		return nil
	}

	return &model.Sprint{
		Id:             s.Id,
		OrganizationId: s.OrganizationId,
		ProjectId:      s.ProjectId,
		SeqNumber:      s.SeqNumber,
		Reference:      s.Reference,
		Name:           s.Name,
		Goal:           s.Goal,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      ptrToUpdatedAt(s.UpdatedAt),
		DeletedAt:      ptrToSoftDelete(s.DeletedAt),
	}
}

type WorkItemMapper struct{}

func NewWorkItemMapper() *WorkItemMapper {
	return &WorkItemMapper{}
}

func (m *WorkItemMapper) ToEntity(w *model.WorkItem) *entity.WorkItem {
	if w == nil {
		return nil
	}

	return &entity.WorkItem{
		Id:             w.Id,
		OrganizationId: w.OrganizationId,
		ProjectId:      w.ProjectId,
		InitiativeId:   w.InitiativeId,
		SprintId:       w.SprintId,
		SeqNumber:      w.SeqNumber,
		Reference:      w.Reference,
		Title:          w.Title,
		Description:    w.Description,
		Status:         w.Status,
		Priority:       w.Priority,
		Estimate:       w.Estimate,
		AssigneeId:     w.AssigneeId,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      updatedAtToPtr(w.UpdatedAt),
		DeletedAt:      softDeleteToPtr(w.DeletedAt),
	}
}

func (m *WorkItemMapper) ToModel(w *entity.WorkItem) *model.WorkItem {
	if w == nil {
		return nil
	}

	return &model.WorkItem{
		Id:             w.Id,
		OrganizationId: w.OrganizationId,
		ProjectId:      w.ProjectId,
		InitiativeId:   w.InitiativeId,
		SprintId:       w.SprintId,
		SeqNumber:      w.SeqNumber,
		Reference:      w.Reference,
		Title:          w.Title,
		Description:    w.Description,
		Status:         w.Status,
		Priority:       w.Priority,
		Estimate:       w.Estimate,
		AssigneeId:     w.AssigneeId,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      ptrToUpdatedAt(w.UpdatedAt),
		DeletedAt:      ptrToSoftDelete(w.DeletedAt),
	}
}
