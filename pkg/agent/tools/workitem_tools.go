package tools

import (
	"context"
	"fmt"
	"strings"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/service"
)

func NewWorkItemTools(workItemService service.IWorkItemService, sprintService service.ISprintService) []Tool {
	return []Tool{
		{
			Name:        "get-work-item",
			Description: "Look up a work item by its reference, e.g. W-45.",
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference": stringProp("The work item reference, e.g. W-45"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				item, err := workItemService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the work item: %v", err)
				}
				if item == nil {
					return constant.WorkItemNotFoundMessage
				}
				return formatWorkItem(item)
			},
		},
		{
			Name:        "list-sprint-work-items",
			Description: "List the work items in a sprint, by sprint reference.",
			Parameters: objectSchema([]string{"sprint_reference"}, map[string]any{
				"sprint_reference": stringProp("The sprint reference, e.g. S-7"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				sprintRef := stringArg(args, "sprint_reference")
				if sprintRef == "" {
					return "Missing required argument: sprint_reference."
				}
				sprint, err := sprintService.FindByReference(ctx, tc.OrgID, sprintRef)
				if err != nil {
					return fmt.Sprintf("Could not look up the sprint: %v", err)
				}
				if sprint == nil {
					return constant.SprintNotFoundMessage
				}
				items, err := workItemService.ListBySprint(ctx, tc.OrgID, sprint.Id)
				if err != nil {
					return fmt.Sprintf("Could not list the sprint's work items: %v", err)
				}
				if len(items) == 0 {
					return fmt.Sprintf("Sprint %s has no work items.", sprint.Reference)
				}
				return formatWorkItemList(fmt.Sprintf("Sprint %s", sprint.Reference), items)
			},
		},
		{
			Name:            "list-backlog",
			Description:     "List the current project's backlog: work items not assigned to any sprint.",
			RequiresProject: true,
			Parameters:      objectSchema(nil, map[string]any{}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				items, err := workItemService.ListBacklog(ctx, tc.OrgID, tc.ProjectID)
				if err != nil {
					return fmt.Sprintf("Could not list the backlog: %v", err)
				}
				if len(items) == 0 {
					return "The backlog is empty."
				}
				return formatWorkItemList("Backlog", items)
			},
		},
		{
			Name:            "confirm-create-work-item",
			Description:     "Create a work item in the current project, in the backlog or a sprint. Call only after the user has explicitly approved it.",
			RequiresProject: true,
			RequiresUser:    true,
			Mutating:        true,
			Parameters: objectSchema([]string{"title"}, map[string]any{
				"title":            stringProp("Work item title"),
				"description":      stringProp("Optional description"),
				"priority":         enumProp("Priority, defaults to medium", constant.PriorityLow, constant.PriorityMedium, constant.PriorityHigh),
				"estimate":         numberProp("Optional estimate in points"),
				"sprint_reference": stringProp("Optional sprint reference to place the item in; omit for the backlog"),
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
				req := &dto.CreateWorkItemRequest{
					Title:       title,
					Description: stringArg(args, "description"),
					Priority:    priority,
				}
				if estimate, ok := intArg(args, "estimate"); ok {
					req.Estimate = estimate
				}
				var sprintReference string
				if sprintRef := stringArg(args, "sprint_reference"); sprintRef != "" {
					sprint, err := sprintService.FindByReference(ctx, tc.OrgID, sprintRef)
					if err != nil {
						return fmt.Sprintf("Could not look up the sprint: %v", err)
					}
					if sprint == nil {
						return constant.SprintNotFoundMessage
					}
					req.SprintId = &sprint.Id
					sprintReference = sprint.Reference
				}
				item, err := workItemService.Create(ctx, tc.OrgID, tc.ProjectID, tc.UserID, req)
				if err != nil {
					return fmt.Sprintf("Could not create the work item: %v", err)
				}
				where := "the backlog"
				if item.SprintId != nil {
					where = "sprint " + sprintReference
				}
				return fmt.Sprintf("Created work item %s %q in %s.", item.Reference, item.Title, where)
			},
		},
		{
			Name:         "confirm-update-work-item",
			Description:  "Update a work item's fields. Call only after the user has explicitly approved the change.",
			RequiresUser: true,
			Mutating:     true,
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference":   stringProp("The work item reference, e.g. W-45"),
				"title":       stringProp("New title"),
				"description": stringProp("New description"),
				"status": enumProp("New status",
					constant.StatusPlanned, constant.StatusReadyToStart, constant.StatusInProgress,
					constant.StatusCompleted, constant.StatusClosed),
				"priority": enumProp("New priority", constant.PriorityLow, constant.PriorityMedium, constant.PriorityHigh),
				"estimate": numberProp("New estimate in points"),
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
				existing, err := workItemService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the work item: %v", err)
				}
				if existing == nil {
					return constant.WorkItemNotFoundMessage
				}
				req := &dto.UpdateWorkItemRequest{
					Id:          existing.Id,
					Title:       optionalStringArg(args, "title"),
					Description: optionalStringArg(args, "description"),
					Status:      optionalStringArg(args, "status"),
					Priority:    optionalStringArg(args, "priority"),
				}
				if estimate, ok := intArg(args, "estimate"); ok {
					req.Estimate = &estimate
				}
				updated, err := workItemService.Update(ctx, tc.OrgID, tc.UserID, req)
				if err != nil {
					return fmt.Sprintf("Could not update the work item: %v", err)
				}
				if updated == nil {
					return constant.WorkItemNotFoundMessage
				}
				return fmt.Sprintf("Updated work item %s %q [%s, %s].", updated.Reference, updated.Title, updated.Status, updated.Priority)
			},
		},
		{
			Name:         "confirm-move-work-item",
			Description:  "Move a work item into a sprint, or back to the backlog. Call only after the user has explicitly approved it.",
			RequiresUser: true,
			Mutating:     true,
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference":        stringProp("The work item reference, e.g. W-45"),
				"sprint_reference": stringProp("Target sprint reference; omit to move the item to the backlog"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				existing, err := workItemService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the work item: %v", err)
				}
				if existing == nil {
					return constant.WorkItemNotFoundMessage
				}

				req := &dto.MoveWorkItemRequest{Id: existing.Id}
				target := "the backlog"
				if sprintRef := stringArg(args, "sprint_reference"); sprintRef != "" {
					sprint, err := sprintService.FindByReference(ctx, tc.OrgID, sprintRef)
					if err != nil {
						return fmt.Sprintf("Could not look up the sprint: %v", err)
					}
					if sprint == nil {
						return constant.SprintNotFoundMessage
					}
					req.SprintId = &sprint.Id
					target = "sprint " + sprint.Reference
				}

				moved, err := workItemService.Move(ctx, tc.OrgID, req)
				if err != nil {
					return fmt.Sprintf("Could not move the work item: %v", err)
				}
				if moved == nil {
					return constant.WorkItemNotFoundMessage
				}
				return fmt.Sprintf("Moved work item %s to %s.", moved.Reference, target)
			},
		},
	}
}

func formatWorkItem(w *dto.WorkItemResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q\nStatus: %s\nPriority: %s", w.Reference, w.Title, w.Status, w.Priority)
	if w.Estimate > 0 {
		fmt.Fprintf(&b, "\nEstimate: %d", w.Estimate)
	}
	if w.SprintId == nil {
		b.WriteString("\nIn: backlog")
	}
	if w.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", w.Description)
	}
	return b.String()
}

func formatWorkItemList(heading string, items []*dto.WorkItemResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d item(s):", heading, len(items))
	for _, w := range items {
		fmt.Fprintf(&b, "\n- %s %q [%s, %s]", w.Reference, w.Title, w.Status, w.Priority)
	}
	return b.String()
}
