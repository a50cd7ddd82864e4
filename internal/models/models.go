package models

import "time"

// Closed enumerations. The string literals are part of the wire contract
// consumed by the dashboard UI and must stay stable.

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Source string

const (
	SourceWeb      Source = "web"
	SourceWhatsApp Source = "whatsapp"
	SourceTelegram Source = "telegram"
)

type Category string

const (
	CategoryProductComplaint  Category = "product_complaint"
	CategoryProductPraise     Category = "product_praise"
	CategoryServiceComplaint  Category = "service_complaint"
	CategoryServicePraise     Category = "service_praise"
	CategoryStaffComplaint    Category = "staff_complaint"
	CategoryStaffPraise       Category = "staff_praise"
	CategoryPricingFeedback   Category = "pricing_feedback"
	CategoryFacilityComplaint Category = "facility_complaint"
	CategoryFacilityPraise    Category = "facility_praise"
	CategoryTechnicalIssue    Category = "technical_issue"
	CategorySuggestion        Category = "suggestion"
	CategoryInquiry           Category = "inquiry"
	CategoryGeneralFeedback   Category = "general_feedback"
)

type Department string

const (
	DepartmentProducts   Department = "Products"
	DepartmentService    Department = "Service"
	DepartmentOperations Department = "Operations"
	DepartmentMarketing  Department = "Marketing"
	DepartmentHR         Department = "HR"
	DepartmentIT         Department = "IT"
	DepartmentFacilities Department = "Facilities"
	DepartmentManagement Department = "Management"
)

type FeedbackStatus string

const (
	FeedbackPending    FeedbackStatus = "pending"
	FeedbackInProgress FeedbackStatus = "in_progress"
	FeedbackResolved   FeedbackStatus = "resolved"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackPending, FeedbackInProgress, FeedbackResolved:
		return true
	}
	return false
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Customer identity attached to a feedback. Channel-dependent: web and
// WhatsApp carry a phone number, Telegram a chat id.
type Customer struct {
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	ChatID string `json:"chatId,omitempty"`
}

// AIAnalysis is the classifier output. Immutable once produced.
type AIAnalysis struct {
	Sentiment        Sentiment  `json:"sentiment"`
	Confidence       float64    `json:"confidence"`
	Category         Category   `json:"category"`
	Priority         Priority   `json:"priority"`
	Keywords         []string   `json:"keywords"`
	Department       Department `json:"department"`
	SendToCallCenter bool       `json:"sendToCallCenter"`
	SuggestedAction  string     `json:"suggestedAction"`
}

type Feedback struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Customer   Customer       `json:"customer"`
	MarketID   string         `json:"marketId"`
	MarketName string         `json:"marketName,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Source     Source         `json:"source"`
	AIAnalysis AIAnalysis     `json:"aiAnalysis"`
	Status     FeedbackStatus `json:"status"`
}

// Note is an append-only entry on a call-center ticket.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Type      string    `json:"type,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ticket is the human-actionable unit derived from an escalated feedback.
// It snapshots the escalation-relevant fields at creation time; later
// mutations of the feedback do not propagate here.
type Ticket struct {
	ID              string       `json:"id"`
	FeedbackID      string       `json:"feedbackId"`
	Customer        Customer     `json:"customer"`
	Message         string       `json:"message"`
	Priority        Priority     `json:"priority"`
	Category        Category     `json:"category"`
	Department      Department   `json:"department"`
	SuggestedAction string       `json:"suggestedAction"`
	Status          TicketStatus `json:"status"`
	AssignedTo      *string      `json:"assignedTo"`
	Notes           []Note       `json:"notes"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

type SurveyStatus string

const (
	SurveyDraft     SurveyStatus = "draft"
	SurveyScheduled SurveyStatus = "scheduled"
	SurveyActive    SurveyStatus = "active"
	SurveyPaused    SurveyStatus = "paused"
)

type SurveyQuestion struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"` // rating, yesno or text
}

type Survey struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Questions     []SurveyQuestion `json:"questions"`
	Status        SurveyStatus     `json:"status"`
	SentTo        int              `json:"sentTo"`
	Responses     int              `json:"responses"`
	StartDate     string           `json:"startDate,omitempty"`
	EndDate       string           `json:"endDate,omitempty"`
	ScheduledDate string           `json:"scheduledDate,omitempty"`
	TargetCount   int              `json:"targetCount,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// Market is a physical store location feedback can be attached to.
type Market struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}
