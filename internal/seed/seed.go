// Package seed holds the sample dataset the dashboard starts with.
package seed

import (
	"time"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/repository"
	"github.com/shopspring/decimal"
)

// Departments lists the departments offered by the team and intern forms
var Departments = []string{"Engineering", "Design", "Management", "Marketing", "Sales", "Support"}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Default returns a fresh copy of the sample dataset
func Default() repository.Seed {
	return repository.Seed{
		Clients:     clients(),
		Projects:    projects(),
		TeamMembers: teamMembers(),
		Interns:     interns(),
		Contracts:   contracts(),
	}
}

// Empty returns a seed with no records
func Empty() repository.Seed {
	return repository.Seed{}
}

func clients() []domain.Client {
	return []domain.Client{
		{
			ID:        "client1",
			Name:      "John Smith",
			Email:     "john.smith@example.com",
			Phone:     "555-123-4567",
			Company:   "Smith Enterprises",
			Address:   "123 Main St, City, Country",
			CreatedAt: day("2023-01-15"),
		},
		{
			ID:        "client2",
			Name:      "Sarah Johnson",
			Email:     "sarah.johnson@example.com",
			Phone:     "555-987-6543",
			Company:   "Johnson Solutions",
			Address:   "456 Oak Ave, City, Country",
			CreatedAt: day("2023-02-20"),
		},
		{
			ID:        "client3",
			Name:      "Michael Davis",
			Email:     "michael.davis@example.com",
			Phone:     "555-555-5555",
			Company:   "Davis Technologies",
			Address:   "789 Pine Blvd, City, Country",
			CreatedAt: day("2023-03-10"),
		},
		{
			ID:        "client4",
			Name:      "Emma Wilson",
			Email:     "emma.wilson@example.com",
			Phone:     "555-111-2222",
			Company:   "Wilson Group",
			Address:   "321 Elm St, City, Country",
			CreatedAt: day("2023-04-05"),
		},
	}
}

func teamMembers() []domain.TeamMember {
	return []domain.TeamMember{
		{
			ID:         "team1",
			Name:       "Alex Chen",
			Email:      "alex.chen@blizon.com",
			Phone:      "555-222-3333",
			Position:   "Senior Developer",
			Department: "Engineering",
			JoinedDate: day("2022-06-10"),
		},
		{
			ID:         "team2",
			Name:       "Maya Singh",
			Email:      "maya.singh@blizon.com",
			Phone:      "555-444-5555",
			Position:   "Project Manager",
			Department: "Management",
			JoinedDate: day("2021-09-15"),
		},
		{
			ID:         "team3",
			Name:       "David Kim",
			Email:      "david.kim@blizon.com",
			Phone:      "555-666-7777",
			Position:   "UI/UX Designer",
			Department: "Design",
			JoinedDate: day("2022-02-20"),
		},
		{
			ID:         "team4",
			Name:       "Sophia Martinez",
			Email:      "sophia.martinez@blizon.com",
			Phone:      "555-888-9999",
			Position:   "Backend Developer",
			Department: "Engineering",
			JoinedDate: day("2022-11-05"),
		},
	}
}

func projects() []domain.Project {
	return []domain.Project{
		{
			ID:            "project1",
			Name:          "E-commerce Website Redesign",
			ClientID:      "client1",
			Description:   "Complete redesign of client's e-commerce platform with new features and improved UX",
			Status:        domain.ProjectStatusActive,
			StartDate:     day("2023-05-01"),
			EndDate:       day("2023-08-15"),
			TeamMemberIDs: []domain.TeamMemberID{"team1", "team3"},
		},
		{
			ID:            "project2",
			Name:          "Mobile App Development",
			ClientID:      "client2",
			Description:   "Creating a native mobile application for iOS and Android platforms",
			Status:        domain.ProjectStatusWorking,
			StartDate:     day("2023-03-10"),
			EndDate:       day("2023-07-20"),
			TeamMemberIDs: []domain.TeamMemberID{"team1", "team4"},
		},
		{
			ID:            "project3",
			Name:          "CRM Integration",
			ClientID:      "client3",
			Description:   "Integration of custom CRM solution with existing client systems",
			Status:        domain.ProjectStatusClosed,
			StartDate:     day("2023-01-05"),
			EndDate:       day("2023-04-30"),
			TeamMemberIDs: []domain.TeamMemberID{"team2", "team4"},
		},
		{
			ID:            "project4",
			Name:          "Marketing Dashboard",
			ClientID:      "client4",
			Description:   "Analytics dashboard for marketing performance tracking",
			Status:        domain.ProjectStatusActive,
			StartDate:     day("2023-06-01"),
			EndDate:       day("2023-09-15"),
			TeamMemberIDs: []domain.TeamMemberID{"team2", "team3"},
		},
	}
}

func interns() []domain.Intern {
	return []domain.Intern{
		{
			ID:         "intern1",
			Name:       "Ryan Lee",
			Email:      "ryan.lee@example.edu",
			Phone:      "555-123-0001",
			University: "State University",
			Department: "Engineering",
			Status:     domain.InternStatusOnboard,
			StartDate:  day("2023-06-01"),
			EndDate:    day("2023-08-31"),
		},
		{
			ID:         "intern2",
			Name:       "Priya Patel",
			Email:      "priya.patel@example.edu",
			Phone:      "555-123-0002",
			University: "Tech Institute",
			Department: "Design",
			Status:     domain.InternStatusOnboard,
			StartDate:  day("2023-06-01"),
			EndDate:    day("2023-08-31"),
		},
		{
			ID:         "intern3",
			Name:       "James Wilson",
			Email:      "james.wilson@example.edu",
			Phone:      "555-123-0003",
			University: "City College",
			Department: "Marketing",
			Status:     domain.InternStatusPostponed,
			StartDate:  day("2023-09-01"),
			EndDate:    day("2023-11-30"),
		},
	}
}

func contracts() []domain.Contract {
	return []domain.Contract{
		{
			ID:          "contract1",
			Title:       "E-commerce Platform Development",
			ClientID:    "client1",
			ProjectID:   "project1",
			Description: "Development of a full-featured e-commerce platform with payment processing and inventory management",
			StartDate:   day("2023-05-01"),
			EndDate:     day("2023-08-15"),
			TotalValue:  amount(50000),
			Milestones: []domain.ContractMilestone{
				{
					ID:          "milestone1-1",
					Title:       "Requirements Gathering and Design",
					Description: "Complete all requirements gathering and design mockups",
					DueDate:     day("2023-05-15"),
					Amount:      amount(10000),
					IsCompleted: true,
				},
				{
					ID:          "milestone1-2",
					Title:       "Frontend Development",
					Description: "Complete all frontend pages and components",
					DueDate:     day("2023-06-30"),
					Amount:      amount(15000),
				},
				{
					ID:          "milestone1-3",
					Title:       "Backend Development and Integration",
					Description: "Complete backend services and integration",
					DueDate:     day("2023-07-30"),
					Amount:      amount(15000),
				},
				{
					ID:          "milestone1-4",
					Title:       "Testing and Launch",
					Description: "Complete testing and launch of the platform",
					DueDate:     day("2023-08-15"),
					Amount:      amount(10000),
				},
			},
		},
		{
			ID:          "contract2",
			Title:       "Mobile Application Development",
			ClientID:    "client2",
			ProjectID:   "project2",
			Description: "Development of a cross-platform mobile application with offline capabilities",
			StartDate:   day("2023-03-10"),
			EndDate:     day("2023-07-20"),
			TotalValue:  amount(40000),
			Milestones: []domain.ContractMilestone{
				{
					ID:          "milestone2-1",
					Title:       "Design and Prototyping",
					Description: "Complete application design and interactive prototype",
					DueDate:     day("2023-04-10"),
					Amount:      amount(8000),
					IsCompleted: true,
				},
				{
					ID:          "milestone2-2",
					Title:       "Core Functionality",
					Description: "Develop core application functionality",
					DueDate:     day("2023-05-20"),
					Amount:      amount(12000),
					IsCompleted: true,
				},
				{
					ID:          "milestone2-3",
					Title:       "Additional Features and API Integration",
					Description: "Implement additional features and API integration",
					DueDate:     day("2023-06-30"),
					Amount:      amount(12000),
				},
				{
					ID:          "milestone2-4",
					Title:       "Testing and App Store Submission",
					Description: "Complete testing and submit to app stores",
					DueDate:     day("2023-07-20"),
					Amount:      amount(8000),
				},
			},
		},
	}
}
