package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/streamchat-api/internal/application"
	"github.com/oksasatya/streamchat-api/pkg/response"
	"github.com/oksasatya/streamchat-api/pkg/validation"
)

// ContactHandler serves /users/:userId/contacts. Routes are mounted behind
// the auth gate and the ownership check, so by the time a request lands here
// the path's userId is the authenticated user.
type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type addContactRequest struct {
	ContactEmail string `json:"contact_email" binding:"required,email"`
}

// List GET /api/users/:userId/contacts
func (h *ContactHandler) List(c *gin.Context) {
	ownerID := c.Param("userId")

	contacts, err := h.Svc.GetContacts(c.Request.Context(), ownerID)
	if err != nil {
		h.Logger.WithError(err).WithField("owner_id", ownerID).Error("list contacts failed")
		response.Error[any](c, http.StatusInternalServerError, "could not load contacts", nil)
		return
	}
	response.Success(c, http.StatusOK, contacts, "contacts", map[string]any{"count": len(contacts)})
}

// Add POST /api/users/:userId/contacts
func (h *ContactHandler) Add(c *gin.Context) {
	ownerID := c.Param("userId")

	var req addContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	contact, err := h.Svc.AddContact(c.Request.Context(), ownerID, req.ContactEmail)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "no user registered with that email", nil)
		case errors.Is(err, application.ErrSelfContact):
			response.Error[any](c, http.StatusBadRequest, "you cannot add yourself as a contact", nil)
		case errors.Is(err, application.ErrContactExists):
			response.Error[any](c, http.StatusConflict, "this user is already in your contact list", nil)
		default:
			h.Logger.WithError(err).WithField("owner_id", ownerID).Error("add contact failed")
			response.Error[any](c, http.StatusInternalServerError, "could not add contact", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"contact": contact}, "contact added", nil)
}

// Delete DELETE /api/users/:userId/contacts/:contactId
func (h *ContactHandler) Delete(c *gin.Context) {
	ownerID := c.Param("userId")
	contactID := c.Param("contactId")

	if err := h.Svc.DeleteContact(c.Request.Context(), ownerID, contactID); err != nil {
		if errors.Is(err, application.ErrContactNotFound) {
			response.Error[any](c, http.StatusNotFound, "contact not found in your list", nil)
			return
		}
		h.Logger.WithError(err).WithField("owner_id", ownerID).Error("delete contact failed")
		response.Error[any](c, http.StatusInternalServerError, "could not delete contact", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "contact deleted", nil)
}
