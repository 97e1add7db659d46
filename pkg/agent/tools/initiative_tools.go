package tools

import (
	"context"
	"fmt"
	"strings"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/service"
)

// NewInitiativeTools declares the initiative adapters. Read tools are free of
// side effects; only the confirm-* tools write, and the system prompt obliges
// the model to obtain user approval before calling them.
func NewInitiativeTools(initiativeService service.IInitiativeService) []Tool {
	return []Tool{
		{
			Name:        "get-initiative",
			Description: "Look up a single initiative by its reference, e.g. I-42. Returns its title, status, priority and dates.",
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference": stringProp("The initiative reference, e.g. I-42"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				initiative, err := initiativeService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the initiative: %v", err)
				}
				if initiative == nil {
					return constant.InitiativeNotFoundMessage
				}
				return formatInitiative(initiative)
			},
		},
		{
			Name:            "search-initiatives",
			Description:     "Search the current project's initiatives by title substring.",
			RequiresProject: true,
			Parameters: objectSchema([]string{"title"}, map[string]any{
				"title": stringProp("Part of the initiative title to search for"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				title := stringArg(args, "title")
				if title == "" {
					return "Missing required argument: title."
				}
				initiatives, err := initiativeService.SearchByTitle(ctx, tc.OrgID, tc.ProjectID, title)
				if err != nil {
					return fmt.Sprintf("Could not search initiatives: %v", err)
				}
				if len(initiatives) == 0 {
					return fmt.Sprintf("No initiatives match %q.", title)
				}
				return formatInitiativeList(initiatives)
			},
		},
		{
			Name:            "list-initiatives",
			Description:     "List the current project's initiatives, optionally filtered by status.",
			RequiresProject: true,
			Parameters: objectSchema(nil, map[string]any{
				"status": enumProp("Optional status filter",
					constant.StatusPlanned, constant.StatusReadyToStart, constant.StatusInProgress,
					constant.StatusCompleted, constant.StatusClosed),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				status := stringArg(args, "status")
				if status != "" && !validStatus(status) {
					return invalidStatusMessage(status)
				}
				initiatives, err := initiativeService.List(ctx, tc.OrgID, tc.ProjectID, status)
				if err != nil {
					return fmt.Sprintf("Could not list initiatives: %v", err)
				}
				if len(initiatives) == 0 {
					return "The project has no initiatives yet."
				}
				return formatInitiativeList(initiatives)
			},
		},
		{
			Name:            "confirm-create-initiative",
			Description:     "Create a new initiative in the current project. Call only after the user has explicitly approved the exact title and details.",
			RequiresProject: true,
			RequiresUser:    true,
			Mutating:        true,
			Parameters: objectSchema([]string{"title"}, map[string]any{
				"title":       stringProp("Initiative title"),
				"description": stringProp("Optional longer description"),
				"priority":    enumProp("Priority, defaults to medium", constant.PriorityLow, constant.PriorityMedium, constant.PriorityHigh),
				"start_date":  stringProp("Optional start date, YYYY-MM-DD"),
				"target_date": stringProp("Optional target date, YYYY-MM-DD"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				title := stringArg(args, "title")
				if title == "" {
					return "Missing required argument: title."
				}
				priority := stringArg(args, "priority")
				if priority != "" && !validPriority(priority) {
					return invalidPriorityMessage(priority)
				}
				req := &dto.CreateInitiativeRequest{
					Title:       title,
					Description: stringArg(args, "description"),
					Priority:    priority,
					StartDate:   optionalStringArg(args, "start_date"),
					TargetDate:  optionalStringArg(args, "target_date"),
				}
				initiative, err := initiativeService.Create(ctx, tc.OrgID, tc.ProjectID, tc.UserID, req)
				if err != nil {
					return fmt.Sprintf("Could not create the initiative: %v", err)
				}
				return fmt.Sprintf("Created initiative %s %q with status %s.", initiative.Reference, initiative.Title, initiative.Status)
			},
		},
		{
			Name:         "confirm-update-initiative",
			Description:  "Update an existing initiative's fields. Call only after the user has explicitly approved the change.",
			RequiresUser: true,
			Mutating:     true,
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference":   stringProp("The initiative reference, e.g. I-42"),
				"title":       stringProp("New title"),
				"description": stringProp("New description"),
				"status": enumProp("New status",
					constant.StatusPlanned, constant.StatusReadyToStart, constant.StatusInProgress,
					constant.StatusCompleted, constant.StatusClosed),
				"priority":    enumProp("New priority", constant.PriorityLow, constant.PriorityMedium, constant.PriorityHigh),
				"start_date":  stringProp("New start date, YYYY-MM-DD"),
				"target_date": stringProp("New target date, YYYY-MM-DD"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				if status := stringArg(args, "status"); status != "" && !validStatus(status) {
					return invalidStatusMessage(status)
				}
				if priority := stringArg(args, "priority"); priority != "" && !validPriority(priority) {
					return invalidPriorityMessage(priority)
				}

				existing, err := initiativeService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the initiative: %v", err)
				}
				if existing == nil {
					return constant.InitiativeNotFoundMessage
				}

				req := &dto.UpdateInitiativeRequest{
					Id:          existing.Id,
					Title:       optionalStringArg(args, "title"),
					Description: optionalStringArg(args, "description"),
					Status:      optionalStringArg(args, "status"),
					Priority:    optionalStringArg(args, "priority"),
					StartDate:   optionalStringArg(args, "start_date"),
					TargetDate:  optionalStringArg(args, "target_date"),
				}
				updated, err := initiativeService.Update(ctx, tc.OrgID, tc.UserID, req)
				if err != nil {
					return fmt.Sprintf("Could not update the initiative: %v", err)
				}
				if updated == nil {
					return constant.InitiativeNotFoundMessage
				}
				return fmt.Sprintf("Updated initiative %s %q (status %s, priority %s).",
					updated.Reference, updated.Title, updated.Status, updated.Priority)
			},
		},
	}
}

func formatInitiative(i *dto.InitiativeResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q\nStatus: %s\nPriority: %s", i.Reference, i.Title, i.Status, i.Priority)
	if i.StartDate != nil {
		fmt.Fprintf(&b, "\nStart: %s", i.StartDate.Format("2006-01-02"))
	}
	if i.TargetDate != nil {
		fmt.Fprintf(&b, "\nTarget: %s", i.TargetDate.Format("2006-01-02"))
	}
	if i.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", i.Description)
	}
	return b.String()
}

func formatInitiativeList(initiatives []*dto.InitiativeResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d initiative(s):", len(initiatives))
	for _, i := range initiatives {
		fmt.Fprintf(&b, "\n- %s %q [%s, %s]", i.Reference, i.Title, i.Status, i.Priority)
	}
	return b.String()
}

func validStatus(status string) bool {
	switch status {
	case constant.StatusPlanned, constant.StatusReadyToStart, constant.StatusInProgress,
		constant.StatusCompleted, constant.StatusClosed:
		return true
	}
	return false
}

func validPriority(priority string) bool {
	switch priority {
	case constant.PriorityLow, constant.PriorityMedium, constant.PriorityHigh:
		return true
	}
	return false
}

func invalidStatusMessage(status string) string {
	return fmt.Sprintf("Invalid status %q: expected one of planned, ready-to-start, in-progress, completed, closed.", status)
}

func invalidPriorityMessage(priority string) string {
	return fmt.Sprintf("Invalid priority %q: expected one of low, medium, high.", priority)
}
