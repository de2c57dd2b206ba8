package store

import (
	"github.com/mooncakehq/mooncake/internal/models"
)

const firstAssignmentID = "default-assignment-1"

// Seed accounts for the classroom simulation. Plaintext passwords on
// purpose, there is no real credential storage here.
func defaultUsers() []models.User {
	return []models.User{
		{
			ID:       "teacher-1",
			Name:     "Ms. Wang (王老师)",
			Email:    "teacher@school.edu",
			Password: "password123",
			Role:     models.RoleTeacher,
		},
		{
			ID:       "student-li-wei",
			Name:     "Li Wei (李伟)",
			Email:    "li.wei@school.edu",
			Password: "password123",
			Role:     models.RoleStudent,
		},
	}
}

func defaultAssignments() []models.Assignment {
	return []models.Assignment{
		{
			ID:    firstAssignmentID,
			Title: "中秋节文化介绍 (Mid-Autumn Festival Cultural Introduction)",
			Instructions: "Please provide a detailed introduction to the Mid-Autumn Festival. " +
				"Your submission should cover its origins, traditions (like eating mooncakes " +
				"and family gatherings), and one famous legend associated with it (e.g., Chang'e). " +
				"Please submit your answer in written Chinese, record a short audio summary of " +
				"your text, and upload an image related to the festival.",
			Rubric: []models.RubricCriterion{
				{ID: "criterion-1", Name: "Historical Accuracy & Origins", MaxPoints: 10},
				{ID: "criterion-2", Name: "Description of Traditions", MaxPoints: 10},
				{ID: "criterion-3", Name: "Legend Recounting", MaxPoints: 10},
				{ID: "criterion-4", Name: "Language & Clarity (Chinese)", MaxPoints: 5},
			},
			Examples: []models.ExampleSubmission{
				{ID: "ex-1", Type: "high", Description: "A well-structured text with clear details and a relevant image."},
				{ID: "ex-2", Type: "medium", Description: "Good description of traditions but lacks detail on the origins."},
				{ID: "ex-3", Type: "low", Description: "Brief text with several inaccuracies and a missing legend."},
			},
			Requirements: models.Requirements{Text: true, Audio: true, Image: true},
		},
	}
}
