package api

import (
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"strconv"

	"messenger-bot/internal/bot"
	"messenger-bot/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	Users  *store.Users
	Events bot.Events
}

func NewUserHandler(users *store.Users, events bot.Events) *UserHandler {
	return &UserHandler{Users: users, Events: events}
}

// GetUsers returns the full record collection for the admin page. Filtering
// is a presentation concern and happens client-side.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus sets the administrative status on one record
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	user, err := h.Users.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("Error finding user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user.Status = req.Status
	if err := h.Users.Save(user); err != nil {
		log.Printf("Error saving user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if h.Events != nil {
		h.Events.UserUpdated(user)
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully"})
}

// ExportUsers streams the full collection as CSV
func (h *UserHandler) ExportUsers(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		log.Printf("Error listing users for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=users.csv")

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"PSID", "Name", "Email", "Phone", "Address", "Attachment URL", "Status", "Created At"})
	for _, u := range users {
		w.Write([]string{
			u.PSID,
			u.Name,
			u.Email,
			u.Phone,
			u.Address,
			u.AttachmentURL,
			u.Status,
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
}
