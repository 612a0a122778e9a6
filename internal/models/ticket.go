package models

import (
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is a support request. It is keyed by email rather than user ID so
// visitors without an account can open one.
type Ticket struct {
	gorm.Model
	Subject     string         `json:"subject" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Name        string         `json:"name" gorm:"not null"`
	Email       string         `json:"email" gorm:"index;not null"`
	Phone       string         `json:"phone"`
	Status      TicketStatus   `json:"status" gorm:"size:20;default:'pending'"`
	Priority    TicketPriority `json:"priority" gorm:"size:20;default:'medium'"`
	Replies     []TicketReply  `json:"replies" gorm:"foreignKey:TicketID"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type TicketReply struct {
	gorm.Model
	TicketID     uint   `json:"ticket_id" gorm:"index;not null"`
	Message      string `json:"message" gorm:"type:text;not null"`
	IsStaffReply bool   `json:"is_staff_reply" gorm:"default:false"`
}

func (TicketReply) TableName() string {
	return "ticket_replies"
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

type RequestType string

const (
	RequestTypeMovie    RequestType = "movie"
	RequestTypeSeries   RequestType = "series"
	RequestTypeSubtitle RequestType = "subtitle"
	RequestTypeOther    RequestType = "other"
)

// ContentRequest is a user's ask for a title or subtitle to be added to
// the catalog.
type ContentRequest struct {
	gorm.Model
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description" gorm:"type:text"`
	Type        RequestType   `json:"type" gorm:"size:20;not null"`
	Name        string        `json:"name" gorm:"not null"`
	Email       string        `json:"email" gorm:"index;not null"`
	Status      RequestStatus `json:"status" gorm:"size:20;default:'pending'"`
}

func (ContentRequest) TableName() string {
	return "content_requests"
}
