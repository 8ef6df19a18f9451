package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// DeviceID is the opaque client-device token that scopes username ownership
type DeviceID string

// SessionID identifies a player's current session; it rotates on every
// login and flip
type SessionID string

// Player represents a game participant.
// Invariant: TotalFlips == TotalMoons + TotalRugs at all times.
type Player struct {
	ID           PlayerID  `json:"id"`
	Username     string    `json:"username"`
	DeviceID     DeviceID  `json:"device_id"`
	SessionID    SessionID `json:"session_id"`
	TotalMoons   int       `json:"total_moons"`
	TotalRugs    int       `json:"total_rugs"`
	TotalFlips   int       `json:"total_flips"`
	CreatedAt    time.Time `json:"created_at"`
	LastPlayedAt time.Time `json:"last_played_at"`
}

// MoonRate returns the player's lifetime moon ratio, 0 if they have not flipped
func (p *Player) MoonRate() float64 {
	if p.TotalFlips == 0 {
		return 0
	}
	return float64(p.TotalMoons) / float64(p.TotalFlips)
}

// ApplyFlip updates the player's cumulative counters for a flip result
func (p *Player) ApplyFlip(result FlipResult, at time.Time) {
	p.TotalFlips++
	if result == ResultMoon {
		p.TotalMoons++
	} else {
		p.TotalRugs++
	}
	p.LastPlayedAt = at
}
