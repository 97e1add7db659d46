package mapper

import (
	"planhub-be/internal/entity"
	"planhub-be/internal/model"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) OrganizationToEntity(o *model.Organization) *entity.Organization {
	if o == nil {
		return nil
	}

	return &entity.Organization{
		Id:        o.Id,
		Name:      o.Name,
		Slug:      o.Slug,
		CreatedAt: o.CreatedAt,
		UpdatedAt: updatedAtToPtr(o.UpdatedAt),
		DeletedAt: softDeleteToPtr(o.DeletedAt),
	}
}

func (m *ProjectMapper) ProjectToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}

	return &entity.Project{
		Id:             p.Id,
		OrganizationId: p.OrganizationId,
		Name:           p.Name,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAtToPtr(p.UpdatedAt),
		DeletedAt:      softDeleteToPtr(p.DeletedAt),
	}
}

func (m *ProjectMapper) ProjectToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}

	return &model.Project{
		Id:             p.Id,
		OrganizationId: p.OrganizationId,
		Name:           p.Name,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      ptrToUpdatedAt(p.UpdatedAt),
		DeletedAt:      ptrToSoftDelete(p.DeletedAt),
	}
}
