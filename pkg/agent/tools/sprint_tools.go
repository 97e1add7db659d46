package tools

import (
	"context"
	"fmt"
	"strings"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/service"
)

func NewSprintTools(sprintService service.ISprintService) []Tool {
	return []Tool{
		{
			Name:            "get-active-sprint",
			Description:     "Return the current project's active sprint, if any.",
			RequiresProject: true,
			Parameters:      objectSchema(nil, map[string]any{}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				sprint, err := sprintService.GetActive(ctx, tc.OrgID, tc.ProjectID)
				if err != nil {
					return fmt.Sprintf("Could not look up the active sprint: %v", err)
				}
				if sprint == nil {
					return "The project has no active sprint."
				}
				return formatSprint(sprint)
			},
		},
		{
			Name:        "get-sprint",
			Description: "Look up a sprint by its reference, e.g. S-7.",
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference": stringProp("The sprint reference, e.g. S-7"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				sprint, err := sprintService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the sprint: %v", err)
				}
				if sprint == nil {
					return constant.SprintNotFoundMessage
				}
				return formatSprint(sprint)
			},
		},
		{
			Name:            "list-sprints",
			Description:     "List the current project's sprints, most recent first.",
			RequiresProject: true,
			Parameters:      objectSchema(nil, map[string]any{}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				sprints, err := sprintService.List(ctx, tc.OrgID, tc.ProjectID)
				if err != nil {
					return fmt.Sprintf("Could not list sprints: %v", err)
				}
				if len(sprints) == 0 {
					return "The project has no sprints yet."
				}
				var b strings.Builder
				fmt.Fprintf(&b, "%d sprint(s):", len(sprints))
				for _, sp := range sprints {
					active := ""
					if sp.IsActive {
						active = " (active)"
					}
					fmt.Fprintf(&b, "\n- %s %q, %s to %s%s",
						sp.Reference, sp.Name, sp.StartDate.Format("2006-01-02"), sp.EndDate.Format("2006-01-02"), active)
				}
				return b.String()
			},
		},
		{
			Name:            "confirm-create-sprint",
			Description:     "Create a sprint in the current project. Call only after the user has explicitly approved the name and dates.",
			RequiresProject: true,
			RequiresUser:    true,
			Mutating:        true,
			Parameters: objectSchema([]string{"name", "start_date", "end_date"}, map[string]any{
				"name":       stringProp("Sprint name"),
				"goal":       stringProp("Optional sprint goal"),
				"start_date": stringProp("Start date, YYYY-MM-DD"),
				"end_date":   stringProp("End date, YYYY-MM-DD"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				name := stringArg(args, "name")
				startDate := stringArg(args, "start_date")
				endDate := stringArg(args, "end_date")
				if name == "" || startDate == "" || endDate == "" {
					return "Missing required arguments: name, start_date and end_date."
				}
				req := &dto.CreateSprintRequest{
					Name:      name,
					Goal:      stringArg(args, "goal"),
					StartDate: startDate,
					EndDate:   endDate,
				}
				sprint, err := sprintService.Create(ctx, tc.OrgID, tc.ProjectID, req)
				if err != nil {
					return fmt.Sprintf("Could not create the sprint: %v", err)
				}
				return fmt.Sprintf("Created sprint %s %q, %s to %s.",
					sprint.Reference, sprint.Name, sprint.StartDate.Format("2006-01-02"), sprint.EndDate.Format("2006-01-02"))
			},
		},
		{
			Name:         "confirm-activate-sprint",
			Description:  "Make a sprint the project's active one, deactivating any other. Call only after the user has explicitly approved it.",
			RequiresUser: true,
			Mutating:     true,
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference": stringProp("The sprint reference, e.g. S-7"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				existing, err := sprintService.FindByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the sprint: %v", err)
				}
				if existing == nil {
					return constant.SprintNotFoundMessage
				}
				activated, err := sprintService.Activate(ctx, tc.OrgID, existing.Id)
				if err != nil {
					return fmt.Sprintf("Could not activate the sprint: %v", err)
				}
				if activated == nil {
					return constant.SprintNotFoundMessage
				}
				return fmt.Sprintf("Sprint %s %q is now active.", activated.Reference, activated.Name)
			},
		},
	}
}

func formatSprint(sp *dto.SprintResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q\n%s to %s", sp.Reference, sp.Name, sp.StartDate.Format("2006-01-02"), sp.EndDate.Format("2006-01-02"))
	if sp.IsActive {
		b.WriteString("\nActive: yes")
	}
	if sp.Goal != "" {
		fmt.Fprintf(&b, "\nGoal: %s", sp.Goal)
	}
	return b.String()
}
