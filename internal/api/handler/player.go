package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rfallows/moonrug/internal/api/request"
	"github.com/rfallows/moonrug/internal/api/response"
	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/services/identity"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	identityService *identity.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(identityService *identity.Service) *PlayerHandler {
	return &PlayerHandler{
		identityService: identityService,
	}
}

// Register handles POST /api/v1/players
// Registers a new username or restores the player who owns it, as long as
// the request comes from the owning device
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	deviceID := model.DeviceID(req.DeviceID)
	if deviceID == "" {
		deviceID = identity.NewDeviceID()
	}

	player, err := h.identityService.Resolve(r.Context(), req.Username, deviceID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterResponseFromModel(player))
}
