package messenger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"messenger-bot/internal/config"
	"messenger-bot/internal/middleware"
	"messenger-bot/pkg/models"
)

// FallbackName is used when the profile lookup fails
const FallbackName = "User"

// Client talks to the Messenger Platform Graph API
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:     cfg.GraphAPIURL,
		accessToken: cfg.PageAccessToken,
		httpClient:  &http.Client{},
	}
}

// Send delivers a response payload to the given PSID via the Send API.
// Best-effort: failures are reported in the result, never as an error, so
// the conversation flow is never blocked by a delivery failure.
func (c *Client) Send(psid string, payload models.SendPayload) models.SendResult {
	envelope := models.SendEnvelope{
		Recipient: models.Participant{ID: psid},
		Message:   payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return c.failed(psid, fmt.Sprintf("marshal envelope: %v", err))
	}

	sendURL := fmt.Sprintf("%s/me/messages?access_token=%s", c.baseURL, url.QueryEscape(c.accessToken))
	resp, err := c.httpClient.Post(sendURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return c.failed(psid, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return c.failed(psid, fmt.Sprintf("API error: %s - %s", resp.Status, string(respBody)))
	}

	log.Printf("Message sent to %s", psid)
	middleware.RecordSend("delivered")
	return models.Sent()
}

func (c *Client) failed(psid, reason string) models.SendResult {
	log.Printf("Unable to send message to %s: %s", psid, reason)
	middleware.RecordSend("failed")
	return models.Failed(reason)
}

// FirstName fetches the sender's first name from the profile API, falling
// back to a generic label on any failure.
func (c *Client) FirstName(psid string) string {
	profileURL := fmt.Sprintf("%s/%s?fields=first_name&access_token=%s",
		c.baseURL, url.PathEscape(psid), url.QueryEscape(c.accessToken))

	resp, err := c.httpClient.Get(profileURL)
	if err != nil {
		log.Printf("Error fetching user's first name: %v", err)
		return FallbackName
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Error fetching user's first name: %s", resp.Status)
		return FallbackName
	}

	var profile struct {
		FirstName string `json:"first_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		log.Printf("Error decoding profile response: %v", err)
		return FallbackName
	}
	if profile.FirstName == "" {
		return FallbackName
	}
	return profile.FirstName
}
