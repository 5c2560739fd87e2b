package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Identifiers are tagged per entity kind so an id of one kind cannot be passed
// to another kind's collection by accident.
type (
	ClientID     string
	ProjectID    string
	TeamMemberID string
	InternID     string
	ContractID   string
	MilestoneID  string
	DraftID      string
)

// EntityKind names one of the five tracked collections
type EntityKind string

const (
	KindClient     EntityKind = "client"
	KindProject    EntityKind = "project"
	KindTeamMember EntityKind = "team_member"
	KindIntern     EntityKind = "intern"
	KindContract   EntityKind = "contract"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusActive  ProjectStatus = "Active"
	ProjectStatusWorking ProjectStatus = "Working"
	ProjectStatusClosed  ProjectStatus = "Closed"
)

// IsValid reports whether s is a known project status
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusWorking, ProjectStatusClosed:
		return true
	}
	return false
}

// InternStatus represents whether an intern has started
type InternStatus string

const (
	InternStatusOnboard   InternStatus = "Onboard"
	InternStatusPostponed InternStatus = "Postponed"
)

// IsValid reports whether s is a known intern status
func (s InternStatus) IsValid() bool {
	return s == InternStatusOnboard || s == InternStatusPostponed
}

// Client is an organization contact the firm works for
type Client struct {
	ID        ClientID  `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	Photo     string    `json:"photo,omitempty"`
}

// Project is a piece of client work staffed by team members
type Project struct {
	ID            ProjectID      `json:"id"`
	Name          string         `json:"name"`
	ClientID      ClientID       `json:"clientId"`
	Description   string         `json:"description"`
	Status        ProjectStatus  `json:"status"`
	StartDate     time.Time      `json:"startDate"`
	EndDate       time.Time      `json:"endDate"`
	TeamMemberIDs []TeamMemberID `json:"teamMemberIds"`
	Documents     []string       `json:"documents,omitempty"`
}

// TeamMember is an employee of the firm
type TeamMember struct {
	ID         TeamMemberID `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Position   string       `json:"position"`
	Department string       `json:"department"`
	JoinedDate time.Time    `json:"joinedDate"`
	Avatar     string       `json:"avatar,omitempty"`
	Resume     string       `json:"resume,omitempty"`
}

// Intern is a temporary placement from a university
type Intern struct {
	ID         InternID     `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	University string       `json:"university"`
	Department string       `json:"department"`
	Status     InternStatus `json:"status"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    time.Time    `json:"endDate"`
	Resume     string       `json:"resume,omitempty"`
	Photo      string       `json:"photo,omitempty"`
}

// ContractMilestone is a billable step of a contract
type ContractMilestone struct {
	ID          MilestoneID     `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	IsCompleted bool            `json:"isCompleted"`
	Attachments []string        `json:"attachments,omitempty"`
}

// Contract binds a client and project to a milestone billing plan.
// TotalValue always equals the sum of the milestone amounts once the
// milestone ledger has touched the contract.
type Contract struct {
	ID          ContractID          `json:"id"`
	Title       string              `json:"title"`
	ClientID    ClientID            `json:"clientId"`
	ProjectID   ProjectID           `json:"projectId"`
	Description string              `json:"description"`
	StartDate   time.Time           `json:"startDate"`
	EndDate     time.Time           `json:"endDate"`
	TotalValue  decimal.Decimal     `json:"totalValue"`
	Milestones  []ContractMilestone `json:"milestones"`
	Documents   []string            `json:"documents,omitempty"`
}

// MilestoneSum returns the sum of all milestone amounts
func (c *Contract) MilestoneSum() decimal.Decimal {
	return SumMilestones(c.Milestones)
}

// CompletedMilestones returns the number of completed milestones
func (c *Contract) CompletedMilestones() int {
	n := 0
	for _, m := range c.Milestones {
		if m.IsCompleted {
			n++
		}
	}
	return n
}

// Progress returns the completed milestone share as a rounded percentage
func (c *Contract) Progress() int {
	if len(c.Milestones) == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(c.CompletedMilestones())).
		Div(decimal.NewFromInt(int64(len(c.Milestones)))).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart())
}

// SumMilestones adds up milestone amounts
func SumMilestones(milestones []ContractMilestone) decimal.Decimal {
	total := decimal.Zero
	for _, m := range milestones {
		total = total.Add(m.Amount)
	}
	return total
}

// DraftMode distinguishes composing a new contract from editing a stored one
type DraftMode string

const (
	DraftModeCreate DraftMode = "create"
	DraftModeEdit   DraftMode = "edit"
)

// ContractDraft is a contract under composition. Required fields are only
// checked when the draft is finalized.
type ContractDraft struct {
	ID          DraftID             `json:"id"`
	Mode        DraftMode           `json:"mode"`
	ContractID  ContractID          `json:"contractId,omitempty"`
	Title       string              `json:"title"`
	ClientID    ClientID            `json:"clientId"`
	ProjectID   ProjectID           `json:"projectId"`
	Description string              `json:"description"`
	StartDate   time.Time           `json:"startDate"`
	EndDate     time.Time           `json:"endDate"`
	TotalValue  decimal.Decimal     `json:"totalValue"`
	Milestones  []ContractMilestone `json:"milestones"`
	Documents   []string            `json:"documents,omitempty"`
	// LedgerTouched is set by the first milestone add/remove. From then on
	// TotalValue is derived and no longer accepts direct edits.
	LedgerTouched bool      `json:"totalValueDerived"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Section is a dashboard view label
type Section string

const (
	SectionOverview  Section = "overview"
	SectionClients   Section = "clients"
	SectionProjects  Section = "projects"
	SectionTeam      Section = "team"
	SectionInterns   Section = "interns"
	SectionCalendar  Section = "calendar"
	SectionContracts Section = "contracts"
)

// Sections lists every dashboard view in sidebar order
var Sections = []Section{
	SectionOverview,
	SectionClients,
	SectionProjects,
	SectionTeam,
	SectionInterns,
	SectionCalendar,
	SectionContracts,
}

// IsValid reports whether s names a known section
func (s Section) IsValid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// SectionForKind maps a searchable collection to the view that shows it
func SectionForKind(kind EntityKind) Section {
	switch kind {
	case KindClient:
		return SectionClients
	case KindProject:
		return SectionProjects
	case KindTeamMember:
		return SectionTeam
	case KindIntern:
		return SectionInterns
	case KindContract:
		return SectionContracts
	default:
		return ""
	}
}

// ChangeOp describes what a store mutation did
type ChangeOp string

const (
	ChangeCreated ChangeOp = "created"
	ChangeUpdated ChangeOp = "updated"
	ChangeRemoved ChangeOp = "removed"

	// OpReminder marks notifications raised by the milestone reminder job
	OpReminder ChangeOp = "reminder"
)

// ChangeEvent is the completion signal emitted by the entity store after a
// successful upsert or remove.
type ChangeEvent struct {
	Kind  EntityKind `json:"kind"`
	Op    ChangeOp   `json:"op"`
	ID    string     `json:"id"`
	Label string     `json:"label"`
	At    time.Time  `json:"at"`
}

// User is the dashboard operator allowed to log in
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
