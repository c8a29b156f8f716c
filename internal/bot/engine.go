package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"messenger-bot/internal/middleware"
	"messenger-bot/internal/models"
	pkgmodels "messenger-bot/pkg/models"

	"gorm.io/gorm"
)

// Postback action identifiers offered by the default menu
const (
	PayloadOrderStatus = "GET_ORDER_STATUS"
	PayloadNewOrder    = "PLACE_NEW_ORDER"
	PayloadGuidelines  = "GUIDELINES"
)

// UserStore is the slice of the record store the engine needs
type UserStore interface {
	FindByPSID(psid string) (*models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

// Notifier delivers a response payload to a sender, best-effort
type Notifier interface {
	Send(psid string, payload pkgmodels.SendPayload) pkgmodels.SendResult
}

// ProfileSource resolves a sender's display name, with a fallback on failure
type ProfileSource interface {
	FirstName(psid string) string
}

// Events receives record-change notifications (nil disables them)
type Events interface {
	UserUpdated(user *models.User)
}

// Engine walks each sender through the fixed data-collection conversation:
// attachment, then email, phone and address, persisting every collected
// field on the user record.
type Engine struct {
	users    UserStore
	sessions SessionStore
	notifier Notifier
	profiles ProfileSource
	events   Events
}

func NewEngine(users UserStore, sessions SessionStore, notifier Notifier, profiles ProfileSource, events Events) *Engine {
	return &Engine{
		users:    users,
		sessions: sessions,
		notifier: notifier,
		profiles: profiles,
		events:   events,
	}
}

// HandleMessage processes one inbound message event for a sender and sends
// the resolved response. A message carrying both text and attachments is
// treated as text-only; one carrying neither produces no outbound send.
func (e *Engine) HandleMessage(psid string, msg *pkgmodels.Message) error {
	if msg == nil {
		return fmt.Errorf("nil message for %s", psid)
	}

	phase := e.sessions.Get(psid)

	user, err := e.resolveUser(psid)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", psid, err)
	}

	var response pkgmodels.SendPayload

	switch {
	case msg.Text != "":
		switch phase {
		case PhaseAwaitingEmail:
			user.Email = strings.TrimSpace(msg.Text)
			e.sessions.Set(psid, PhaseAwaitingPhone)
			response = pkgmodels.TextPayload("Please provide your phone number.")

		case PhaseAwaitingPhone:
			user.Phone = strings.TrimSpace(msg.Text)
			e.sessions.Set(psid, PhaseAwaitingAddress)
			response = pkgmodels.TextPayload("Please provide your shipping address.")

		case PhaseAwaitingAddress:
			user.Address = strings.TrimSpace(msg.Text)
			e.sessions.Clear(psid)
			response = pkgmodels.TextPayload("Thank you for providing your details.")
			middleware.RecordConversationCompleted()

		default:
			response = e.menuPayload(user.Name)
		}

		if err := e.users.Save(user); err != nil {
			return fmt.Errorf("save user %s: %w", psid, err)
		}
		e.notifyUpdated(user)

	case len(msg.Attachments) > 0:
		user.AttachmentURL = msg.Attachments[0].Payload.URL
		if err := e.users.Save(user); err != nil {
			return fmt.Errorf("save user %s: %w", psid, err)
		}
		e.notifyUpdated(user)

		e.sessions.Set(psid, PhaseAwaitingEmail)
		response = pkgmodels.TextPayload("Attachment received. Please provide your email address.")

	default:
		log.Printf("Message from %s has neither text nor attachments, ignoring", psid)
		return nil
	}

	e.notifier.Send(psid, response)
	return nil
}

// HandlePostback answers a button click. Dispatch is purely on the action
// identifier; neither the phase nor the user record is touched.
func (e *Engine) HandlePostback(psid string, postback *pkgmodels.Postback) error {
	if postback == nil {
		return fmt.Errorf("nil postback for %s", psid)
	}

	var response pkgmodels.SendPayload
	switch postback.Payload {
	case PayloadOrderStatus:
		response = pkgmodels.TextPayload("Sure, let me check your order status for you.")
	case PayloadNewOrder:
		response = pkgmodels.TextPayload("Great! Can you please send me the picture which you would like to order?")
	case PayloadGuidelines:
		response = pkgmodels.TextPayload("Here are the guidelines for using our bot.")
	default:
		log.Printf("Unrecognized postback payload %q from %s", postback.Payload, psid)
		return nil
	}

	e.notifier.Send(psid, response)
	return nil
}

// resolveUser finds the record for a sender, creating it on first contact
// with the profile name (or the fallback label when the lookup fails).
func (e *Engine) resolveUser(psid string) (*models.User, error) {
	user, err := e.users.FindByPSID(psid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		PSID:   psid,
		Name:   e.profiles.FirstName(psid),
		Status: models.StatusPending,
	}
	if err := e.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (e *Engine) menuPayload(name string) pkgmodels.SendPayload {
	return pkgmodels.ButtonTemplate(
		fmt.Sprintf("Salam, %s! How can I assist you today?", name),
		pkgmodels.Button{Type: "postback", Title: "Get Order Status", Payload: PayloadOrderStatus},
		pkgmodels.Button{Type: "postback", Title: "Place a New Order", Payload: PayloadNewOrder},
		pkgmodels.Button{Type: "postback", Title: "Guidelines", Payload: PayloadGuidelines},
	)
}

func (e *Engine) notifyUpdated(user *models.User) {
	if e.events != nil {
		e.events.UserUpdated(user)
	}
}
