package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkoike/shiftworks-backend/config"
	"github.com/mkoike/shiftworks-backend/internal/lineworks"
	"github.com/mkoike/shiftworks-backend/internal/shift/models"
	"github.com/mkoike/shiftworks-backend/internal/shift/parser"
	"github.com/mkoike/shiftworks-backend/internal/shift/period"
	"github.com/mkoike/shiftworks-backend/internal/shift/services"
	"github.com/mkoike/shiftworks-backend/pkg/utils"
	"github.com/mkoike/shiftworks-backend/ws"
)

// ProfileResolver maps a webhook sender id to a display name.
// Satisfied by *lineworks.Client.
type ProfileResolver interface {
	UserProfile(userID string) (*lineworks.UserProfile, error)
}

type WebhookController struct {
	Service  *services.ShiftService
	Profiles ProfileResolver
	Hub      *ws.Hub
	Cfg      *config.Config
	Now      func() time.Time
}

func NewWebhookController(service *services.ShiftService, profiles ProfileResolver, hub *ws.Hub, cfg *config.Config) *WebhookController {
	return &WebhookController{
		Service:  service,
		Profiles: profiles,
		Hub:      hub,
		Cfg:      cfg,
		Now:      time.Now,
	}
}

// Callback ingests a LINE WORKS webhook call: verify the signature,
// decode the typed payload, parse every text-message event into shift
// entries, and upsert them. Lines without a recognizable entry are
// skipped silently; a message with none is not an error.
func (wc *WebhookController) Callback(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "failed to read request body: " + err.Error(),
			"data":    nil,
		})
	}

	if !utils.VerifySignature(body, c.Request().Header.Get("X-WORKS-Signature"), wc.Cfg.LWBotSecret) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "signature mismatch",
			"data":    nil,
		})
	}

	var payload models.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid webhook payload: " + err.Error(),
			"data":    nil,
		})
	}

	now := wc.Now()
	anchorYear, anchorMonth, _ := period.Anchor(now)

	saved := 0
	for _, ev := range payload.Events {
		if !ev.IsTextMessage() {
			continue
		}
		if err := ev.Validate(); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": "invalid event: " + err.Error(),
				"data":    nil,
			})
		}

		// header+table submissions name the staff member themselves;
		// inline ones are attributed via the sender's profile
		entries := parser.ParseHeaderMessage(ev.Message.Text, anchorYear, anchorMonth)
		if len(entries) == 0 {
			profile, err := wc.Profiles.UserProfile(ev.Source.UserID)
			if err != nil {
				return c.JSON(http.StatusBadGateway, map[string]interface{}{
					"status":  http.StatusBadGateway,
					"message": "failed to resolve sender profile: " + err.Error(),
					"data":    nil,
				})
			}
			entries = parser.ParseMessage(ev.Message.Text, profile.DisplayName, now)
		}
		if len(entries) == 0 {
			continue
		}

		if err := wc.Service.UpsertAll(entries); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "failed to store shifts: " + err.Error(),
				"data":    nil,
			})
		}
		saved += len(entries)
		if wc.Hub != nil {
			wc.Hub.Notify("shift_saved", entries)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "ok",
		"data": map[string]interface{}{
			"saved": saved,
		},
	})
}
