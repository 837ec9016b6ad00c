package api

import (
	"context"

	"github.com/vytor/flashdeck/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	DB           Pinger
	DeckService  services.DeckService
	StudyService services.StudyService
	StatsService services.StatsService
}
