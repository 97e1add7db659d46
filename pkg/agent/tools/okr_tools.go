package tools

import (
	"context"
	"fmt"
	"strings"

	"planhub-be/internal/constant"
	"planhub-be/internal/dto"
	"planhub-be/internal/service"
)

func NewOkrTools(okrService service.IOkrService) []Tool {
	return []Tool{
		{
			Name:        "get-objective",
			Description: "Look up an objective by its reference, e.g. O-2, including its key results.",
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference": stringProp("The objective reference, e.g. O-2"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				objective, err := okrService.FindObjectiveByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the objective: %v", err)
				}
				if objective == nil {
					return constant.ObjectiveNotFoundMessage
				}
				return formatObjective(objective)
			},
		},
		{
			Name:            "list-objectives",
			Description:     "List the current project's objectives with their key results.",
			RequiresProject: true,
			Parameters:      objectSchema(nil, map[string]any{}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				objectives, err := okrService.ListObjectives(ctx, tc.OrgID, tc.ProjectID)
				if err != nil {
					return fmt.Sprintf("Could not list objectives: %v", err)
				}
				if len(objectives) == 0 {
					return "The project has no objectives yet."
				}
				var b strings.Builder
				for i, o := range objectives {
					if i > 0 {
						b.WriteString("\n\n")
					}
					b.WriteString(formatObjective(o))
				}
				return b.String()
			},
		},
		{
			Name:        "get-key-result",
			Description: "Look up a key result by its reference, e.g. K-3.",
			Parameters: objectSchema([]string{"reference"}, map[string]any{
				"reference": stringProp("The key result reference, e.g. K-3"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				if reference == "" {
					return "Missing required argument: reference."
				}
				keyResult, err := okrService.FindKeyResultByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the key result: %v", err)
				}
				if keyResult == nil {
					return constant.KeyResultNotFoundMessage
				}
				return formatKeyResult(keyResult)
			},
		},
		{
			Name:            "confirm-create-objective",
			Description:     "Create an objective in the current project. Call only after the user has explicitly approved it.",
			RequiresProject: true,
			RequiresUser:    true,
			Mutating:        true,
			Parameters: objectSchema([]string{"title"}, map[string]any{
				"title":       stringProp("Objective title"),
				"description": stringProp("Optional description"),
				"target_date": stringProp("Optional target date, YYYY-MM-DD"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				title := stringArg(args, "title")
				if title == "" {
					return "Missing required argument: title."
				}
				req := &dto.CreateObjectiveRequest{
					Title:       title,
					Description: stringArg(args, "description"),
					TargetDate:  optionalStringArg(args, "target_date"),
				}
				objective, err := okrService.CreateObjective(ctx, tc.OrgID, tc.ProjectID, tc.UserID, req)
				if err != nil {
					return fmt.Sprintf("Could not create the objective: %v", err)
				}
				return fmt.Sprintf("Created objective %s %q.", objective.Reference, objective.Title)
			},
		},
		{
			Name:         "confirm-create-key-result",
			Description:  "Attach a new key result to an objective. Call only after the user has explicitly approved it.",
			RequiresUser: true,
			Mutating:     true,
			Parameters: objectSchema([]string{"objective_reference", "title", "target_value"}, map[string]any{
				"objective_reference": stringProp("The parent objective reference, e.g. O-2"),
				"title":               stringProp("Key result title"),
				"target_value":        numberProp("Numeric target to reach"),
				"unit":                stringProp("Optional unit, e.g. %, users, ms"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				objectiveRef := stringArg(args, "objective_reference")
				title := stringArg(args, "title")
				targetValue, hasTarget := numberArg(args, "target_value")
				if objectiveRef == "" || title == "" || !hasTarget {
					return "Missing required arguments: objective_reference, title and target_value."
				}
				objective, err := okrService.FindObjectiveByReference(ctx, tc.OrgID, objectiveRef)
				if err != nil {
					return fmt.Sprintf("Could not look up the objective: %v", err)
				}
				if objective == nil {
					return constant.ObjectiveNotFoundMessage
				}
				req := &dto.CreateKeyResultRequest{
					ObjectiveId: objective.Id,
					Title:       title,
					TargetValue: targetValue,
					Unit:        stringArg(args, "unit"),
				}
				keyResult, err := okrService.CreateKeyResult(ctx, tc.OrgID, req)
				if err != nil {
					return fmt.Sprintf("Could not create the key result: %v", err)
				}
				if keyResult == nil {
					return constant.ObjectiveNotFoundMessage
				}
				return fmt.Sprintf("Created key result %s %q under objective %s.", keyResult.Reference, keyResult.Title, objective.Reference)
			},
		},
		{
			Name:         "confirm-update-key-result-progress",
			Description:  "Record a key result's new current value. Call only after the user has explicitly approved it.",
			RequiresUser: true,
			Mutating:     true,
			Parameters: objectSchema([]string{"reference", "current_value"}, map[string]any{
				"reference":     stringProp("The key result reference, e.g. K-3"),
				"current_value": numberProp("The new current value"),
			}),
			Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
				reference := stringArg(args, "reference")
				currentValue, hasValue := numberArg(args, "current_value")
				if reference == "" || !hasValue {
					return "Missing required arguments: reference and current_value."
				}
				existing, err := okrService.FindKeyResultByReference(ctx, tc.OrgID, reference)
				if err != nil {
					return fmt.Sprintf("Could not look up the key result: %v", err)
				}
				if existing == nil {
					return constant.KeyResultNotFoundMessage
				}
				updated, err := okrService.UpdateKeyResultProgress(ctx, tc.OrgID, &dto.UpdateKeyResultProgressRequest{
					Id:           existing.Id,
					CurrentValue: currentValue,
				})
				if err != nil {
					return fmt.Sprintf("Could not update the key result: %v", err)
				}
				if updated == nil {
					return constant.KeyResultNotFoundMessage
				}
				return fmt.Sprintf("Key result %s is now at %s of %s %s [%s].",
					updated.Reference, trimFloat(updated.CurrentValue), trimFloat(updated.TargetValue), updated.Unit, updated.Status)
			},
		},
	}
}

func formatObjective(o *dto.ObjectiveResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q [%s]", o.Reference, o.Title, o.Status)
	if o.TargetDate != nil {
		fmt.Fprintf(&b, ", target %s", o.TargetDate.Format("2006-01-02"))
	}
	if o.Description != "" {
		fmt.Fprintf(&b, "\n%s", o.Description)
	}
	for _, k := range o.KeyResults {
		fmt.Fprintf(&b, "\n- %s %q: %s of %s %s [%s]",
			k.Reference, k.Title, trimFloat(k.CurrentValue), trimFloat(k.TargetValue), k.Unit, k.Status)
	}
	return b.String()
}

func formatKeyResult(k *dto.KeyResultResponse) string {
	return fmt.Sprintf("%s %q\nProgress: %s of %s %s\nStatus: %s",
		k.Reference, k.Title, trimFloat(k.CurrentValue), trimFloat(k.TargetValue), k.Unit, k.Status)
}

// trimFloat renders numbers without trailing zeros, 12 not 12.000000.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
