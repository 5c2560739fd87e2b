package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request drafts. Validation tags are checked when the draft is finalized,
// never while fields are being assembled.

type ClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=50"`
	Company string `json:"company" validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
	Photo   string `json:"photo,omitempty" validate:"max=500"`
}

type ProjectRequest struct {
	Name          string         `json:"name" validate:"required,max=200"`
	ClientID      ClientID       `json:"clientId"`
	Description   string         `json:"description" validate:"required"`
	Status        ProjectStatus  `json:"status" validate:"omitempty,oneof=Active Working Closed"`
	StartDate     time.Time      `json:"startDate" validate:"required"`
	EndDate       time.Time      `json:"endDate" validate:"required"`
	TeamMemberIDs []TeamMemberID `json:"teamMemberIds"`
	Documents     []string       `json:"documents,omitempty"`
}

type TeamMemberRequest struct {
	Name       string    `json:"name" validate:"required,max=200"`
	Email      string    `json:"email" validate:"required,email"`
	Phone      string    `json:"phone" validate:"required,max=50"`
	Position   string    `json:"position" validate:"required,max=200"`
	Department string    `json:"department" validate:"max=100"`
	JoinedDate time.Time `json:"joinedDate" validate:"required"`
	Avatar     string    `json:"avatar,omitempty"`
	Resume     string    `json:"resume,omitempty"`
}

type InternRequest struct {
	Name       string       `json:"name" validate:"required,max=200"`
	Email      string       `json:"email" validate:"required,email"`
	Phone      string       `json:"phone" validate:"required,max=50"`
	University string       `json:"university" validate:"required,max=200"`
	Department string       `json:"department" validate:"max=100"`
	Status     InternStatus `json:"status" validate:"omitempty,oneof=Onboard Postponed"`
	StartDate  time.Time    `json:"startDate" validate:"required"`
	EndDate    time.Time    `json:"endDate" validate:"required"`
	Resume     string       `json:"resume,omitempty"`
	Photo      string       `json:"photo,omitempty"`
}

// ContractFieldsRequest carries the editable header fields of a contract draft.
// Nil pointers leave the current value untouched.
type ContractFieldsRequest struct {
	Title       *string          `json:"title,omitempty"`
	ClientID    *ClientID        `json:"clientId,omitempty"`
	ProjectID   *ProjectID       `json:"projectId,omitempty"`
	Description *string          `json:"description,omitempty"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	TotalValue  *decimal.Decimal `json:"totalValue,omitempty"`
	Documents   []string         `json:"documents,omitempty"`
}

// ContractRequest is a full contract record used for direct replacement
type ContractRequest struct {
	Title       string              `json:"title" validate:"required,max=200"`
	ClientID    ClientID            `json:"clientId"`
	ProjectID   ProjectID           `json:"projectId"`
	Description string              `json:"description" validate:"required"`
	StartDate   time.Time           `json:"startDate" validate:"required"`
	EndDate     time.Time           `json:"endDate" validate:"required"`
	Milestones  []ContractMilestone `json:"milestones"`
	Documents   []string            `json:"documents,omitempty"`
}

// MilestoneInput is the form payload for a new milestone
type MilestoneInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	Attachments []string        `json:"attachments,omitempty"`
}

type MilestoneCompletionRequest struct {
	Completed bool `json:"completed"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type NavigateRequest struct {
	Section Section `json:"section" validate:"required"`
}

// Responses

type TeamMemberRef struct {
	ID   TeamMemberID `json:"id"`
	Name string       `json:"name"`
}

type ProjectDTO struct {
	Project
	ClientName  string          `json:"clientName"`
	TeamMembers []TeamMemberRef `json:"teamMembers"`
}

type ContractDTO struct {
	Contract
	ClientName          string `json:"clientName"`
	ProjectName         string `json:"projectName"`
	CompletedMilestones int    `json:"completedMilestones"`
	TotalMilestones     int    `json:"totalMilestones"`
	Progress            int    `json:"progress"`
}

// SearchResults holds the filtered snapshot of every collection for one query
type SearchResults struct {
	Query       string       `json:"query"`
	Clients     []Client     `json:"clients"`
	Projects    []Project    `json:"projects"`
	TeamMembers []TeamMember `json:"teamMembers"`
	Interns     []Intern     `json:"interns"`
	Contracts   []Contract   `json:"contracts"`
	// Focus is the section that should receive focus, empty when nothing matched
	Focus     Section `json:"focus,omitempty"`
	NoResults bool    `json:"noResults"`
	Total     int     `json:"total"`
}

// SessionSearchState is what a session currently shows for its search box
type SessionSearchState struct {
	Query   string         `json:"query"`
	Pending bool           `json:"pending"`
	Results *SearchResults `json:"results,omitempty"`
	View    Section        `json:"view"`
}

type ViewState struct {
	Section   Section   `json:"section"`
	ChangedAt time.Time `json:"changedAt"`
}

// Notification is the user-facing confirmation of a completed mutation
type Notification struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Kind        EntityKind `json:"kind"`
	Op          ChangeOp   `json:"op"`
	At          time.Time  `json:"at"`
}

// MutationResponse wraps a mutated entity with its confirmation
type MutationResponse struct {
	Data         interface{}   `json:"data,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

type ListResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

type OverviewStats struct {
	TotalClients       int                   `json:"totalClients"`
	ActiveProjects     int                   `json:"activeProjects"`
	TeamMembers        int                   `json:"teamMembers"`
	OnboardedInterns   int                   `json:"onboardedInterns"`
	ProjectsByStatus   map[ProjectStatus]int `json:"projectsByStatus"`
	InternsByStatus    map[InternStatus]int  `json:"internsByStatus"`
	TotalContractValue decimal.Decimal       `json:"totalContractValue"`
}

type DashboardOverview struct {
	Stats             OverviewStats `json:"stats"`
	RecentProjects    []ProjectDTO  `json:"recentProjects"`
	LatestContracts   []ContractDTO `json:"latestContracts"`
	UpcomingDeadlines []ProjectDTO  `json:"upcomingDeadlines"`
}

// CalendarEventType separates project deadlines from milestone due dates
type CalendarEventType string

const (
	CalendarEventProject   CalendarEventType = "project"
	CalendarEventMilestone CalendarEventType = "milestone"
)

type CalendarEvent struct {
	Date        time.Time         `json:"date"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        CalendarEventType `json:"type"`
	RefID       string            `json:"refId"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}
