package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/pawscout-api/internal/api/shared"
	"github.com/phrazzld/pawscout-api/internal/domain"
)

// ContactInbox stores contact form messages.
// *service.ContactService implements it.
type ContactInbox interface {
	Send(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}

// SubscriptionList manages newsletter sign-ups.
// *service.SubscriptionService implements it.
type SubscriptionList interface {
	Subscribe(ctx context.Context, email string) (*domain.Subscription, error)
	List(ctx context.Context) ([]*domain.Subscription, error)
	Delete(ctx context.Context, id int64) error
}

// InboxHandler serves the contact form and the newsletter list.
type InboxHandler struct {
	contact       ContactInbox
	subscriptions SubscriptionList
	logger        *slog.Logger
}

// NewInboxHandler creates an InboxHandler.
func NewInboxHandler(contact ContactInbox, subscriptions SubscriptionList, logger *slog.Logger) *InboxHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InboxHandler{
		contact:       contact,
		subscriptions: subscriptions,
		logger:        logger.With(slog.String("component", "inbox_handler")),
	}
}

// SendMessage godoc
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param payload body ContactRequest true "Message"
// @Success 201 {object} ContactReceivedResponse
// @Failure 400 {object} shared.ErrorResponse
// @Router /contact [post]
func (h *InboxHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m, err := h.contact.Send(r.Context(), &domain.ContactMessage{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to send message")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ContactReceivedResponse{
		Status:  "Message received",
		Message: m,
	})
}

// ListMessages godoc
// @Summary List contact messages
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessagesResponse
// @Router /admin/contact [get]
func (h *InboxHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.contact.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list messages")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessagesResponse{Messages: msgs})
}

// DeleteMessage godoc
// @Summary Delete a contact message
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} shared.MessageResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/contact/{id} [delete]
func (h *InboxHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.contact.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete message")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Message deleted successfully")
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param payload body SubscribeRequest true "Email"
// @Success 201 {object} SubscribedResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 409 {object} shared.ErrorResponse "Email already registered"
// @Router /subs [post]
func (h *InboxHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	sub, err := h.subscriptions.Subscribe(r.Context(), req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to subscribe")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, SubscribedResponse{
		Success:      "Subscription successful",
		Subscription: sub,
	})
}

// ListSubscriptions godoc
// @Summary List newsletter subscriptions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SubscriptionsResponse
// @Router /admin/subs [get]
func (h *InboxHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscriptions.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list subscriptions")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SubscriptionsResponse{Subscriptions: subs})
}

// DeleteSubscription godoc
// @Summary Delete a newsletter subscription
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} shared.MessageResponse
// @Failure 404 {object} shared.ErrorResponse
// @Router /admin/subs/{id} [delete]
func (h *InboxHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.subscriptions.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete subscription")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Subscription deleted successfully")
}
