package model

// Bot strategy constants
const (
	BotStrategyHeuristic = "heuristic"
	BotStrategyRandom    = "random"
)

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyHeuristic:
		return "Heuristic (win, block, center, random)"
	case BotStrategyRandom:
		return "Random"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyHeuristic, BotStrategyRandom}
}

// IsValidBotStrategy reports whether the name is a known strategy
func IsValidBotStrategy(strategy string) bool {
	for _, s := range ValidBotStrategies() {
		if s == strategy {
			return true
		}
	}
	return false
}
