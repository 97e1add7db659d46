package main

import (
	"log"
	"os"
	"time"

	"planhub-be/internal/model"
	"planhub-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds one demo workspace: an organization, a project, and enough planning
// data for the assistant to have something to talk about.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Demo Workspace...")

	var org model.Organization
	if err := db.Where("slug = ?", "acme-demo").First(&org).Error; err == nil {
		log.Println("Demo organization already exists, skipping seed.")
		return
	}

	org = model.Organization{Name: "Acme Demo", Slug: "acme-demo"}
	if err := db.Create(&org).Error; err != nil {
		log.Fatalf("Error creating organization: %v", err)
	}
	log.Printf("Created organization: %s (%s)", org.Name, org.Id)

	project := model.Project{
		OrganizationId: org.Id,
		Name:           "Mobile App",
		Description:    "The customer-facing mobile application",
	}
	if err := db.Create(&project).Error; err != nil {
		log.Fatalf("Error creating project: %v", err)
	}
	log.Printf("Created project: %s (%s)", project.Name, project.Id)

	today := time.Now().Truncate(24 * time.Hour)

	objective := model.Objective{
		OrganizationId: org.Id,
		ProjectId:      project.Id,
		SeqNumber:      1,
		Reference:      "O-1",
		Title:          "Grow weekly active users",
		Description:    "Reach sustainable weekly engagement before the marketing push",
		Status:         "in-progress",
	}
	if err := db.Create(&objective).Error; err != nil {
		log.Fatalf("Error creating objective: %v", err)
	}

	keyResult := model.KeyResult{
		ObjectiveId:  objective.Id,
		SeqNumber:    1,
		Reference:    "K-1",
		Title:        "Weekly active users",
		TargetValue:  10000,
		CurrentValue: 4200,
		Unit:         "users",
		Status:       "in-progress",
	}
	if err := db.Create(&keyResult).Error; err != nil {
		log.Fatalf("Error creating key result: %v", err)
	}

	milestone := model.Milestone{
		OrganizationId: org.Id,
		ProjectId:      project.Id,
		SeqNumber:      1,
		Reference:      "M-1",
		Title:          "Public beta",
		Description:    "Beta open to the waitlist",
		Status:         "in-progress",
		DueDate:        today.AddDate(0, 1, 0),
	}
	if err := db.Create(&milestone).Error; err != nil {
		log.Fatalf("Error creating milestone: %v", err)
	}

	initiatives := []model.Initiative{
		{
			OrganizationId: org.Id,
			ProjectId:      project.Id,
			ObjectiveId:    &objective.Id,
			MilestoneId:    &milestone.Id,
			SeqNumber:      1,
			Reference:      "I-1",
			Title:          "Onboarding revamp",
			Description:    "Cut the signup flow from six screens to three",
			Status:         "in-progress",
			Priority:       "high",
		},
		{
			OrganizationId: org.Id,
			ProjectId:      project.Id,
			MilestoneId:    &milestone.Id,
			SeqNumber:      2,
			Reference:      "I-2",
			Title:          "Push notification opt-in",
			Description:    "Ask at the right moment instead of on first launch",
			Status:         "completed",
			Priority:       "medium",
		},
	}
	for i := range initiatives {
		if err := db.Create(&initiatives[i]).Error; err != nil {
			log.Fatalf("Error creating initiative %s: %v", initiatives[i].Reference, err)
		}
	}

	sprint := model.Sprint{
		OrganizationId: org.Id,
		ProjectId:      project.Id,
		SeqNumber:      1,
		Reference:      "S-1",
		Name:           "Sprint 1",
		Goal:           "Ship the new onboarding flow",
		StartDate:      today,
		EndDate:        today.AddDate(0, 0, 14),
		IsActive:       true,
	}
	if err := db.Create(&sprint).Error; err != nil {
		log.Fatalf("Error creating sprint: %v", err)
	}

	workItems := []model.WorkItem{
		{
			OrganizationId: org.Id,
			ProjectId:      project.Id,
			InitiativeId:   &initiatives[0].Id,
			SprintId:       &sprint.Id,
			SeqNumber:      1,
			Reference:      "W-1",
			Title:          "Merge signup screens 2 and 3",
			Status:         "in-progress",
			Priority:       "high",
			Estimate:       5,
		},
		{
			OrganizationId: org.Id,
			ProjectId:      project.Id,
			InitiativeId:   &initiatives[0].Id,
			SeqNumber:      2,
			Reference:      "W-2",
			Title:          "Instrument onboarding funnel events",
			Status:         "planned",
			Priority:       "medium",
			Estimate:       3,
		},
	}
	for i := range workItems {
		if err := db.Create(&workItems[i]).Error; err != nil {
			log.Fatalf("Error creating work item %s: %v", workItems[i].Reference, err)
		}
	}

	// Sequence counters start past the hand-assigned references above.
	counters := []model.SequenceCounter{
		{OrganizationId: org.Id, Prefix: "I", Value: 2},
		{OrganizationId: org.Id, Prefix: "M", Value: 1},
		{OrganizationId: org.Id, Prefix: "O", Value: 1},
		{OrganizationId: org.Id, Prefix: "K", Value: 1},
		{OrganizationId: org.Id, Prefix: "S", Value: 1},
		{OrganizationId: org.Id, Prefix: "W", Value: 2},
	}
	for _, c := range counters {
		if err := db.Create(&c).Error; err != nil {
			log.Fatalf("Error creating sequence counter %s: %v", c.Prefix, err)
		}
	}

	seedSession(db, org.Id, project.Id)

	log.Println("✅ Success: Demo workspace seeded.")
}

func seedSession(db *gorm.DB, orgId, projectId uuid.UUID) {
	userId := uuid.New()
	session := model.ChatSession{
		OrganizationId: orgId,
		ProjectId:      &projectId,
		UserId:         userId,
		Title:          "What is in the current sprint?",
	}
	if err := db.Create(&session).Error; err != nil {
		log.Fatalf("Error creating chat session: %v", err)
	}
	log.Printf("Created demo chat session for user %s", userId)
}
