package models

// MatureIntervalDays is the interval at which a card stops counting as learning.
const MatureIntervalDays = 21

type StudyStats struct {
	TotalCards    int `json:"total_cards"`
	ReviewedToday int `json:"reviewed_today"`
	CardsLearning int `json:"cards_learning"`
	CardsMature   int `json:"cards_mature"`
}
