package transport

import (
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/events"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/model"
	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/service/monitor"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Monitor is the read side of monitor.Service served over HTTP.
type Monitor interface {
	Status() monitor.Status
	Highest() model.CompetitionRecord
	Pending() []model.MintCandidate
	RecentConfirmed(limit int) []model.MintCandidate
	Subscribe() *events.Subscription
}

type Metrics interface {
	ObserveRequest(route string, code int, started time.Time)
	StreamClientConnected(delta int)
}
