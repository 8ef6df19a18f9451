package request

// RegisterPlayerRequest is the request body for registering or restoring a player.
// DeviceID is optional; the server mints one when it is absent.
type RegisterPlayerRequest struct {
	Username string `json:"username"`
	DeviceID string `json:"device_id,omitempty"`
}

// FlipRequest is the request body for performing a flip.
// Result is accepted for wire compatibility but the outcome is always drawn
// server-side; a present-but-unrecognised value is rejected.
type FlipRequest struct {
	PlayerID string `json:"player_id"`
	Result   string `json:"result,omitempty"`
}
