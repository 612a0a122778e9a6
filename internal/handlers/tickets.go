package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/services"
)

type CreateTicketInput struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
}

type TicketReplyInput struct {
	Message string `json:"message" binding:"required"`
}

type CreateRequestInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required,oneof=movie series subtitle other"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

// CreateTicket opens a support ticket. No account is required.
func CreateTicket(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateTicketInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		ticket := models.Ticket{
			Subject:     input.Subject,
			Description: input.Description,
			Name:        input.Name,
			Email:       input.Email,
			Phone:       input.Phone,
			Status:      models.TicketStatusPending,
			Priority:    models.TicketPriorityMedium,
		}

		if err := db.Create(&ticket).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create ticket"})
			return
		}

		c.JSON(201, ticket)
	}
}

// ListTickets lists tickets, newest first, optionally filtered by email
func ListTickets(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Replies").Order("created_at DESC")
		if email := c.Query("email"); email != "" {
			query = query.Where("email = ?", email)
		}

		var tickets []models.Ticket
		if err := query.Find(&tickets).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load tickets"})
			return
		}

		c.JSON(200, tickets)
	}
}

// GetTicket returns one ticket with its replies
func GetTicket(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ticket models.Ticket
		if err := db.Preload("Replies").First(&ticket, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ticket not found"})
			return
		}

		c.JSON(200, ticket)
	}
}

// DeleteTicket removes a ticket and its replies
func DeleteTicket(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Ticket{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to delete ticket"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(404, gin.H{"error": "Ticket not found"})
			return
		}

		c.Status(204)
	}
}

// ReplyToTicket appends a visitor reply to a ticket
func ReplyToTicket(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TicketReplyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var ticket models.Ticket
		if err := db.First(&ticket, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ticket not found"})
			return
		}

		reply := models.TicketReply{
			TicketID: ticket.ID,
			Message:  input.Message,
		}
		if err := db.Create(&reply).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create reply"})
			return
		}

		c.JSON(201, reply)
	}
}

// StaffReplyToTicket appends a support reply, moves the ticket to
// in_progress and pushes the reply to the owner's open websocket
// connections.
func StaffReplyToTicket(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TicketReplyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var ticket models.Ticket
		if err := db.First(&ticket, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ticket not found"})
			return
		}

		reply := models.TicketReply{
			TicketID:     ticket.ID,
			Message:      input.Message,
			IsStaffReply: true,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&reply).Error; err != nil {
				return err
			}
			if ticket.Status == models.TicketStatusPending {
				return tx.Model(&ticket).Update("status", models.TicketStatusInProgress).Error
			}
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create reply"})
			return
		}

		// Push the reply to the ticket owner if they have an account and
		// an open connection
		var owner models.User
		if err := db.Where("email = ?", ticket.Email).First(&owner).Error; err == nil {
			hub.NotifyUser(owner.ID, "ticket_reply", services.TicketReplyNotification{
				TicketID: ticket.ID,
				Subject:  ticket.Subject,
				Message:  reply.Message,
			})
		}

		c.JSON(201, reply)
	}
}

// UpdateTicketStatus changes a ticket's status and notifies the owner
func UpdateTicketStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status string `json:"status" binding:"required,oneof=pending in_progress resolved closed"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var ticket models.Ticket
		if err := db.First(&ticket, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ticket not found"})
			return
		}

		if err := db.Model(&ticket).Update("status", input.Status).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update ticket"})
			return
		}

		var owner models.User
		if err := db.Where("email = ?", ticket.Email).First(&owner).Error; err == nil {
			hub.NotifyUser(owner.ID, "ticket_status", services.TicketStatusNotification{
				TicketID: ticket.ID,
				Subject:  ticket.Subject,
				Status:   input.Status,
			})
		}

		c.JSON(200, ticket)
	}
}

// CreateRequest records a content request (a title or subtitle a visitor
// wants added)
func CreateRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		request := models.ContentRequest{
			Title:       input.Title,
			Description: input.Description,
			Type:        models.RequestType(input.Type),
			Name:        input.Name,
			Email:       input.Email,
			Status:      models.RequestStatusPending,
		}

		if err := db.Create(&request).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create request"})
			return
		}

		c.JSON(201, request)
	}
}

// ListRequests lists content requests, optionally filtered by email
func ListRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if email := c.Query("email"); email != "" {
			query = query.Where("email = ?", email)
		}

		var requests []models.ContentRequest
		if err := query.Find(&requests).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load requests"})
			return
		}

		c.JSON(200, requests)
	}
}

// GetRequest returns one content request
func GetRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ContentRequest
		if err := db.First(&request, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Request not found"})
			return
		}

		c.JSON(200, request)
	}
}

// DeleteRequest removes a content request
func DeleteRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.ContentRequest{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to delete request"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(404, gin.H{"error": "Request not found"})
			return
		}

		c.Status(204)
	}
}
