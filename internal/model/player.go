package model

// PlayerRole distinguishes the human from the scripted opponent
type PlayerRole string

const (
	RoleHuman    PlayerRole = "human"
	RoleOpponent PlayerRole = "opponent"
)

// Player is a match participant. The marker is fixed for the player's lifetime;
// the score is only changed by the match controller at round boundaries.
type Player struct {
	DisplayName string
	Role        PlayerRole
	marker      Marker
	score       int
}

// NewPlayer creates a player with a zero score
func NewPlayer(displayName string, role PlayerRole, marker Marker) *Player {
	return &Player{
		DisplayName: displayName,
		Role:        role,
		marker:      marker,
	}
}

// Marker returns the player's marker
func (p *Player) Marker() Marker {
	return p.marker
}

// Score returns the number of rounds won in the current match
func (p *Player) Score() int {
	return p.score
}

// AwardRound adds a round win
func (p *Player) AwardRound() {
	p.score++
}

// ResetScore clears the score for a new match
func (p *Player) ResetScore() {
	p.score = 0
}
