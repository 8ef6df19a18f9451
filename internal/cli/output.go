package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RegisterResult:
		o.printRegisterResult(v)
	case FlipResult:
		o.printFlipResult(v)
	case GameData:
		o.printGameData(v)
	case Stats:
		o.printStats(v)
	case Leaderboards:
		o.printLeaderboards(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	TotalMoons   int       `json:"total_moons"`
	TotalRugs    int       `json:"total_rugs"`
	TotalFlips   int       `json:"total_flips"`
	CreatedAt    time.Time `json:"created_at"`
	LastPlayedAt time.Time `json:"last_played_at"`
}

// RegisterResult combines player, session and device identifiers
type RegisterResult struct {
	Player    Player `json:"player"`
	SessionID string `json:"session_id"`
	DeviceID  string `json:"device_id"`
}

// Flip response type
type Flip struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Streak response type
type Streak struct {
	Player string `json:"player"`
	Count  int    `json:"count"`
	Type   string `json:"type"`
}

// FlipResult response type
type FlipResult struct {
	Flip      Flip   `json:"flip"`
	Player    Player `json:"player"`
	SessionID string `json:"session_id"`
	Streak    Streak `json:"streak"`
}

// DailyStats response type
type DailyStats struct {
	Date        string `json:"date"`
	Moons       int    `json:"moons"`
	Rugs        int    `json:"rugs"`
	Total       int    `json:"total"`
	MoonPercent int    `json:"moon_percent"`
	RugPercent  int    `json:"rug_percent"`
}

// DailyLeader response type
type DailyLeader struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Announcement response type
type Announcement struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// GlobalEvent response type
type GlobalEvent struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GameData response type
type GameData struct {
	Daily         DailyStats     `json:"daily"`
	Mood          string         `json:"mood"`
	Streak        Streak         `json:"streak"`
	DevAllocation int            `json:"dev_allocation"`
	TopMooner     DailyLeader    `json:"top_mooner"`
	MostRugged    DailyLeader    `json:"most_rugged"`
	Announcements []Announcement `json:"announcements"`
	GlobalEvent   *GlobalEvent   `json:"global_event"`
}

// GlobalStats response type
type GlobalStats struct {
	TotalMoons  int       `json:"total_moons"`
	TotalRugs   int       `json:"total_rugs"`
	TotalFlips  int       `json:"total_flips"`
	LastUpdated time.Time `json:"last_updated"`
}

// ExtremeStats response type
type ExtremeStats struct {
	MoonChampion *Player `json:"moon_champion"`
	RugKing      *Player `json:"rug_king"`
	MostActive   *Player `json:"most_active"`
	Luckiest     *Player `json:"luckiest"`
}

// Stats response type
type Stats struct {
	Global   GlobalStats    `json:"global"`
	Daily    DailyStats     `json:"daily"`
	Mood     string         `json:"mood"`
	Extremes ExtremeStats   `json:"extremes"`
	TaxPaid  map[string]int `json:"tax_paid"`
}

// Leaderboards response type
type Leaderboards struct {
	TopMooners []Player `json:"top_mooners"`
	TopRuggers []Player `json:"top_ruggers"`
	MostActive []Player `json:"most_active"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Username, p.ID)
	fmt.Printf("Record: %d moons / %d rugs (%d flips)\n", p.TotalMoons, p.TotalRugs, p.TotalFlips)
}

func (o *Output) printRegisterResult(r RegisterResult) {
	o.printPlayer(r.Player)
	fmt.Printf("Session: %s\n", r.SessionID)
	fmt.Printf("Device: %s\n", r.DeviceID)
}

func (o *Output) printFlipResult(f FlipResult) {
	fmt.Printf("Result: %s\n", strings.ToUpper(f.Flip.Result))
	o.printPlayer(f.Player)
	if f.Streak.Count > 1 {
		fmt.Printf("Streak: %s x%d %s\n", f.Streak.Player, f.Streak.Count, f.Streak.Type)
	}
}

func (o *Output) printGameData(g GameData) {
	fmt.Printf("Date: %s\n", g.Daily.Date)
	fmt.Printf("Today: %d moons (%d%%) / %d rugs (%d%%)\n",
		g.Daily.Moons, g.Daily.MoonPercent, g.Daily.Rugs, g.Daily.RugPercent)
	fmt.Printf("Mood: %s\n", g.Mood)
	fmt.Printf("Dev Allocation: %d%%\n", g.DevAllocation)

	if g.Streak.Count > 0 {
		fmt.Printf("Streak: %s x%d %s\n", g.Streak.Player, g.Streak.Count, g.Streak.Type)
	}
	if g.TopMooner.Count > 0 {
		fmt.Printf("Top Mooner: %s (%d)\n", g.TopMooner.Name, g.TopMooner.Count)
	}
	if g.MostRugged.Count > 0 {
		fmt.Printf("Most Rugged: %s (%d)\n", g.MostRugged.Name, g.MostRugged.Count)
	}

	if len(g.Announcements) > 0 {
		fmt.Println("\nAnnouncements:")
		for _, a := range g.Announcements {
			fmt.Printf("  - %s\n    %s\n", a.Title, a.Detail)
		}
	}

	if g.GlobalEvent != nil {
		fmt.Printf("\nEVENT [%s]: %s\n", g.GlobalEvent.Kind, g.GlobalEvent.Message)
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("All Time: %d moons / %d rugs (%d flips)\n",
		s.Global.TotalMoons, s.Global.TotalRugs, s.Global.TotalFlips)
	fmt.Printf("Today: %d moons (%d%%) / %d rugs (%d%%)\n",
		s.Daily.Moons, s.Daily.MoonPercent, s.Daily.Rugs, s.Daily.RugPercent)
	fmt.Printf("Mood: %s\n", s.Mood)

	printExtreme := func(label string, p *Player) {
		if p != nil {
			fmt.Printf("  %s: %s (%d moons / %d rugs)\n", label, p.Username, p.TotalMoons, p.TotalRugs)
		}
	}
	fmt.Println("\nExtremes:")
	printExtreme("Moon Champion", s.Extremes.MoonChampion)
	printExtreme("Rug King", s.Extremes.RugKing)
	printExtreme("Most Active", s.Extremes.MostActive)
	printExtreme("Luckiest", s.Extremes.Luckiest)

	if len(s.TaxPaid) > 0 {
		fmt.Println("\nRug Tax:")
		for name, count := range s.TaxPaid {
			fmt.Printf("  %s: %d\n", name, count)
		}
	}
}

func (o *Output) printLeaderboards(l Leaderboards) {
	printBoard := func(title string, players []Player, counter func(Player) int) {
		fmt.Printf("%s:\n", title)
		if len(players) == 0 {
			fmt.Println("  (empty)")
			return
		}
		for i, p := range players {
			fmt.Printf("  %d. %s - %d\n", i+1, p.Username, counter(p))
		}
	}

	printBoard("Top Mooners", l.TopMooners, func(p Player) int { return p.TotalMoons })
	fmt.Println()
	printBoard("Top Ruggers", l.TopRuggers, func(p Player) int { return p.TotalRugs })
	fmt.Println()
	printBoard("Most Active", l.MostActive, func(p Player) int { return p.TotalFlips })
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
