package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/handlers"
	"github.com/dramoir/dramoir-backend/internal/models"
	"github.com/dramoir/dramoir-backend/internal/services"
	"github.com/dramoir/dramoir-backend/internal/testutil"
)

func newTicketRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := services.NewHub()
	go hub.Run()

	r := gin.New()
	r.POST("/ticket/tickets", handlers.CreateTicket(db))
	r.GET("/ticket/tickets", handlers.ListTickets(db))
	r.GET("/ticket/tickets/:id", handlers.GetTicket(db))
	r.DELETE("/ticket/tickets/:id", handlers.DeleteTicket(db))
	r.POST("/ticket/tickets/:id/replies", handlers.ReplyToTicket(db))
	r.POST("/ticket/tickets/:id/staff-replies", handlers.StaffReplyToTicket(db, hub))
	r.PATCH("/ticket/tickets/:id/status", handlers.UpdateTicketStatus(db, hub))
	r.POST("/ticket/requests", handlers.CreateRequest(db))
	r.GET("/ticket/requests", handlers.ListRequests(db))
	return r
}

func TestTicketLifecycle(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newTicketRouter(t, db)

	w := doJSON(t, r, "POST", "/ticket/tickets", gin.H{
		"subject":     "Broken episode",
		"description": "Episode 3 will not play",
		"name":        "Someone",
		"email":       "a@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var ticket models.Ticket
	require.NoError(t, db.First(&ticket).Error)
	require.Equal(t, models.TicketStatusPending, ticket.Status)
	require.Equal(t, models.TicketPriorityMedium, ticket.Priority)

	// A staff reply moves the ticket to in_progress
	w = doJSON(t, r, "POST", "/ticket/tickets/1/staff-replies", gin.H{
		"message": "We are looking into it",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.First(&ticket).Error)
	require.Equal(t, models.TicketStatusInProgress, ticket.Status)

	// A visitor reply does not change the status
	w = doJSON(t, r, "POST", "/ticket/tickets/1/replies", gin.H{
		"message": "Thanks, still broken",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.First(&ticket).Error)
	require.Equal(t, models.TicketStatusInProgress, ticket.Status)

	// The ticket comes back with both replies in order
	w = doJSON(t, r, "GET", "/ticket/tickets/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var loaded models.Ticket
	require.NoError(t, db.Preload("Replies").First(&loaded).Error)
	require.Len(t, loaded.Replies, 2)
	require.True(t, loaded.Replies[0].IsStaffReply)
	require.False(t, loaded.Replies[1].IsStaffReply)

	// Resolve and delete
	w = doJSON(t, r, "PATCH", "/ticket/tickets/1/status", gin.H{"status": "resolved"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "DELETE", "/ticket/tickets/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, "DELETE", "/ticket/tickets/1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTicketsFiltersByEmail(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newTicketRouter(t, db)

	for _, email := range []string{"a@x.com", "a@x.com", "b@x.com"} {
		w := doJSON(t, r, "POST", "/ticket/tickets", gin.H{
			"subject":     "Subject",
			"description": "Description",
			"name":        "Someone",
			"email":       email,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var mine []models.Ticket
	require.NoError(t, db.Where("email = ?", "a@x.com").Find(&mine).Error)
	require.Len(t, mine, 2)

	w := doJSON(t, r, "GET", "/ticket/tickets?email=a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "b@x.com")
}

func TestInvalidTicketStatusRejected(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newTicketRouter(t, db)

	w := doJSON(t, r, "POST", "/ticket/tickets", gin.H{
		"subject":     "Subject",
		"description": "Description",
		"name":        "Someone",
		"email":       "a@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "PATCH", "/ticket/tickets/1/status", gin.H{"status": "done"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentRequests(t *testing.T) {
	db := testutil.OpenTestDB(t)
	r := newTicketRouter(t, db)

	w := doJSON(t, r, "POST", "/ticket/requests", gin.H{
		"title": "Some drama",
		"type":  "series",
		"name":  "Someone",
		"email": "a@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Unknown request types are rejected
	w = doJSON(t, r, "POST", "/ticket/requests", gin.H{
		"title": "Some drama",
		"type":  "documentary",
		"name":  "Someone",
		"email": "a@x.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var request models.ContentRequest
	require.NoError(t, db.First(&request).Error)
	require.Equal(t, models.RequestStatusPending, request.Status)
	require.Equal(t, models.RequestTypeSeries, request.Type)
}
