package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rfallows/moonrug/internal/api/request"
	"github.com/rfallows/moonrug/internal/api/response"
	"github.com/rfallows/moonrug/internal/model"
	"github.com/rfallows/moonrug/internal/services/flip"
	"github.com/rfallows/moonrug/internal/services/stats"
)

// FlipHandler handles the flip endpoint
type FlipHandler struct {
	flipController *flip.Controller
	statsService   *stats.Service
}

// NewFlipHandler creates a new flip handler
func NewFlipHandler(flipController *flip.Controller, statsService *stats.Service) *FlipHandler {
	return &FlipHandler{
		flipController: flipController,
		statsService:   statsService,
	}
}

// Flip handles POST /api/v1/flip
// A client-supplied result is validated for shape but never trusted; the
// outcome is always drawn server-side.
func (h *FlipHandler) Flip(w http.ResponseWriter, r *http.Request) {
	var req request.FlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Result != "" && !model.FlipResult(req.Result).Valid() {
		WriteError(w, model.ErrInvalidResult)
		return
	}

	event, player, err := h.flipController.Flip(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	tally, err := h.statsService.Tally(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FlipResponse{
		Flip:      response.FlipFromModel(event),
		Player:    response.PlayerFromModel(player),
		SessionID: string(player.SessionID),
		Streak:    response.StreakFromModel(tally.Streak),
	})
}
