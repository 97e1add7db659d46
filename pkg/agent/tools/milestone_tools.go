package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/service"
)

func NewMilestoneTools(milestoneService service.IMilestoneService) []Tool {
	return []Tool{
		{
			Name:        "get-milestone",
			Description: "Look up a milestone by its reference, e.g. M-4.",
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference": stringProp("The milestone reference, e.g. M-4"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				milestone, err := milestoneService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the milestone: %v", err)
				}
				if milestone == nil {
					return constant.MilestoneNotFoundMessage
				}
				return formatMilestone(milestone)
			},
		},
		{
			Name:        "milestone-progress",
			Description: "Report completion progress of a milestone across its linked initiatives.",
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference": stringProp("The milestone reference, e.g. M-4"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				milestone, err := milestoneService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the milestone: %v", err)
				}
				if milestone == nil {
					return constant.MilestoneNotFoundMessage
				}
				progress, err := milestoneService.Progress(ctx, tc.OrgID, milestone.Id)
				if err != nil {
					return fmt.Sprintf("Could not compute milestone progress: %v", err)
				}
				if progress == nil {
					return constant.MilestoneNotFoundMessage
				}
				if !progress.HasLinkedWork {
					return fmt.Sprintf("Milestone %s %q has no initiatives linked to it yet, so progress cannot be computed.",
						milestone.Reference, milestone.Title)
				}
				return fmt.Sprintf("Milestone %s %q is %d%% complete: %d of %d initiatives are completed or closed. Due %s.",
					milestone.Reference, milestone.Title, progress.ProgressPercent,
					progress.DoneInitiatives, progress.TotalInitiatives, milestone.DueDate.Format("2006-01-02"))
			},
		},
		{
			Name:            "milestone-timeline",
			Description:     "Group the current project's milestones into timeline buckets: this-quarter, next-quarter, later, past.",
			RequiresProject: true,
			Parameters:      objectSchema(nil, map[string]any{}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				buckets, err := milestoneService.ListByTimeline(ctx, tc.OrgID, tc.ProjectID, time.Now())
				if err != nil {
					return fmt.Sprintf("Could not build the milestone timeline: %v", err)
				}
				if len(buckets) == 0 {
					return "The project has no milestones yet."
				}
				var b strings.Builder
				for bi, bucket := range buckets {
					if bi > 0 {
						b.WriteString("\n")
					}
					fmt.Fprintf(&b, "%s:", bucket.Bucket)
					for _, m := range bucket.Milestones {
						fmt.Fprintf(&b, "\n- %s %q, due %s [%s]", m.Reference, m.Title, m.DueDate.Format("2006-01-02"), m.Status)
					}
				}
				return b.String()
			},
		},
		{
			Name:            "confirm-create-milestone",
			Description:     "Create a milestone in the current project. Call only after the user has explicitly approved the title and due date.",
			RequiresProject: true,
			RequiresUser:    true,
			Mutating:        true,
			Parameters: objectSchema([]string{"title", "due_date"}, map[string]any{
				"title":       stringProp("Milestone title"),
				"description": stringProp("Optional description"),
				"due_date":    stringProp("Due date, YYYY-MM-DD"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				title := stringArg(args, "title")
				dueDate := stringArg(args, "due_date")
				if title == "" || dueDate == "" {
					return "Missing required arguments: title and due_date."
				}
				req := &dto.CreateMilestoneRequest{
					Title:       title,
					Description: stringArg(args, "description"),
					DueDate:     dueDate,
				}
				milestone, err := milestoneService.Create(ctx, tc.OrgID, tc.ProjectID, tc.UserID, req)
				if err != nil {
					return fmt.Sprintf("Could not create the milestone: %v", err)
				}
				return fmt.Sprintf("Created milestone %s %q, due %s.", milestone.Reference, milestone.Title, milestone.DueDate.Format("2006-01-02"))
			},
		},
		{
			Name:         "confirm-update-milestone",
			Description:  "Update an existing milestone's fields. Call only after the user has explicitly approved the change.",
			RequiresUser: true,
			Mutating:     true,
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference":   stringProp("The milestone reference, e.g. M-4"),
				"title":       stringProp("New title"),
				"description": stringProp("New description"),
				"status": enumProp("New status",
					constant.StatusPlanned, constant.StatusReadyToStart, constant.StatusInProgress,
					constant.StatusCompleted, constant.StatusClosed),
				"due_date": stringProp("New due date, YYYY-MM-DD"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				if status := stringArg(args, "status"); status != "" && !validStatus(status) {
					return invalidStatusMessage(status)
				}
				existing, err := milestoneService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the milestone: %v", err)
				}
				if existing == nil {
					return constant.MilestoneNotFoundMessage
				}
				req := &dto.UpdateMilestoneRequest{
					Id:          existing.Id,
					Title:       optionalStringArg(args, "title"),
					Description: optionalStringArg(args, "description"),
					Status:      optionalStringArg(args, "status"),
					DueDate:     optionalStringArg(args, "due_date"),
				}
				updated, err := milestoneService.Update(ctx, tc.OrgID, tc.UserID, req)
				if err != nil {
					return fmt.Sprintf("Could not update the milestone: %v", err)
				}
				if updated == nil {
					return constant.MilestoneNotFoundMessage
				}
				return fmt.Sprintf("Updated milestone %s %q, due %s [%s].",
					updated.Reference, updated.Title, updated.DueDate.Format("2006-01-02"), updated.Status)
			},
		},
	}
}

func formatMilestone(m *dto.MilestoneResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q\nStatus: %s\nDue: %s", m.Reference, m.Title, m.Status, m.DueDate.Format("2006-01-02"))
	if m.Description != "" {
		fmt.Fprintf(&b, "\n\n%s", m.Description)
	}
	return b.String()
}
