package catalog

import (
	"time"

	"github.com/baechuer/skillmarket/internal/domain"
)

// SeedWork returns the demo listings shown on a fresh start.
func SeedWork(now time.Time) []domain.WorkListing {
	return []domain.WorkListing{
		{
			ID:                 "1",
			Title:              "E-commerce Platform Development",
			Description:        "Looking for a full-stack developer to build a modern e-commerce platform. The project involves developing both frontend and backend components, implementing payment processing, and setting up a product management system.",
			Duration:           "6 months",
			Budget:             "$30,000 - $40,000",
			Location:           "Remote (US)",
			ExperienceYears:    3,
			RequiresReferences: true,
			Skills:             []string{"React", "Node.js", "PostgreSQL", "AWS"},
			ImageURL:           "https://images.unsplash.com/photo-1460925895917-afdab827c52f?auto=format&fit=crop&w=2426&q=80",
			CreatedAt:          now,
		},
		{
			ID:                 "2",
			Title:              "Mobile App Development Project",
			Description:        "Seeking an experienced mobile developer for a long-term project to build a fitness tracking app. The project includes user authentication, real-time tracking, and integration with wearable devices.",
			Duration:           "8 months",
			Budget:             "$45,000 - $60,000",
			Location:           "Hybrid (New York)",
			ExperienceYears:    5,
			RequiresReferences: true,
			Skills:             []string{"React Native", "Firebase", "TypeScript"},
			ImageURL:           "https://images.unsplash.com/photo-1551650975-87deedd944c3?auto=format&fit=crop&w=1974&q=80",
			CreatedAt:          now,
		},
	}
}

// SeedCandidates returns the demo service providers shown on a fresh start.
func SeedCandidates(now time.Time) []domain.Candidate {
	return []domain.Candidate{
		{
			ID:        "1",
			Name:      "Sarah Chen",
			Email:     "sarah.chen@example.com",
			Phone:     "+1 (555) 123-4567",
			Specialty: "Full Stack Development",
			Location:  "San Francisco, CA",
			Bio:       "Full stack developer with 5 years of experience in React and Node.js",
			Skills:    []string{"React", "Node.js", "TypeScript", "PostgreSQL"},
			ImageURL:  "https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=987&q=80",
			CreatedAt: now,
		},
		{
			ID:        "2",
			Name:      "Marcus Rodriguez",
			Email:     "marcus.r@example.com",
			Phone:     "+1 (555) 987-6543",
			Specialty: "Mobile App Development",
			Location:  "Remote (US)",
			Bio:       "Mobile developer specializing in React Native and iOS development",
			Skills:    []string{"React Native", "iOS", "Swift", "Firebase"},
			ImageURL:  "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&w=987&q=80",
			CreatedAt: now,
		},
	}
}
