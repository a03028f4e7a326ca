package models

import "time"

// Participant represents a person entering the raffle.
type Participant struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
}

// Prize represents a prize type with a fixed number of units.
// WonCount counts the units already awarded; 0 <= WonCount <= Quantity.
type Prize struct {
	ID       string `json:"id" mapstructure:"id"`
	Name     string `json:"name" mapstructure:"name"`
	Color    string `json:"color" mapstructure:"color"`
	Quantity int    `json:"quantity" mapstructure:"quantity"`
	WonCount int    `json:"wonCount" mapstructure:"-"`
}

// Remaining returns the number of units still in the draw pool.
func (p Prize) Remaining() int {
	return p.Quantity - p.WonCount
}

// Exhausted reports whether every unit of the prize has been awarded.
func (p Prize) Exhausted() bool {
	return p.WonCount >= p.Quantity
}

// Segment is one slice of the wheel, standing for a single remaining prize unit.
type Segment struct {
	ID      string `json:"id"`
	PrizeID string `json:"prizeId"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// WinnerRecord stores a committed draw, linking a participant to a prize.
type WinnerRecord struct {
	ID              string    `json:"id"`
	ParticipantID   string    `json:"participantId"`
	ParticipantName string    `json:"participantName"`
	PrizeID         string    `json:"prizeId"`
	PrizeName       string    `json:"prizeName"`
	Timestamp       time.Time `json:"timestamp"`
	GameType        string    `json:"gameType"`
}
