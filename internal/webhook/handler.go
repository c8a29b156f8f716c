package webhook

import (
	"log"
	"net/http"

	"messenger-bot/internal/bot"
	"messenger-bot/internal/config"
	"messenger-bot/internal/middleware"
	"messenger-bot/pkg/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Config *config.Config
	Engine *bot.Engine
}

func NewHandler(cfg *config.Config, engine *bot.Engine) *Handler {
	return &Handler{
		Config: cfg,
		Engine: engine,
	}
}

// VerifyWebhook answers the platform's subscription handshake
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == h.Config.VerifyToken {
			log.Println("Webhook verified successfully!")
			c.String(http.StatusOK, challenge)
		} else {
			c.Status(http.StatusForbidden)
		}
	} else {
		c.Status(http.StatusBadRequest)
	}
}

// HandleEvents fans a delivery batch out to the conversation engine. The
// batch is acknowledged once all entries are dispatched; dispatch itself is
// fire-and-forget relative to the response.
func (h *Handler) HandleEvents(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("Error binding JSON: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	if payload.Object != "page" {
		c.Status(http.StatusNotFound)
		return
	}

	for _, entry := range payload.Entry {
		if len(entry.Messaging) == 0 {
			continue
		}
		event := entry.Messaging[0]
		psid := event.Sender.ID

		switch {
		case event.Message != nil:
			middleware.RecordWebhookEvent("message")
			go func(psid string, msg *models.Message) {
				if err := h.Engine.HandleMessage(psid, msg); err != nil {
					log.Printf("Error handling message from %s: %v", psid, err)
				}
			}(psid, event.Message)

		case event.Postback != nil:
			middleware.RecordWebhookEvent("postback")
			go func(psid string, pb *models.Postback) {
				if err := h.Engine.HandlePostback(psid, pb); err != nil {
					log.Printf("Error handling postback from %s: %v", psid, err)
				}
			}(psid, event.Postback)

		default:
			log.Printf("Entry %s carries neither message nor postback", entry.ID)
		}
	}

	c.String(http.StatusOK, "EVENT_RECEIVED")
}
