package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"woki/internal/reservations/events"
	"woki/internal/reservations/repository"
	resvalidator "woki/internal/reservations/validator"
	"woki/pkg/config"
	"woki/pkg/idempotency"
	"woki/pkg/keymutex"
	"woki/pkg/logger"
	"woki/pkg/model"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) byType(eventType string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []events.Event
	for _, evt := range p.events {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		SlotMinutes:            15,
		ReservationDurationMin: 90,
		Log:                    logger.New(logger.Config{Output: io.Discard}),
	}
}

func newTestService(t *testing.T) (*reservationService, *repository.MemoryRepository, *recordingPublisher) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	repo.Seed(repository.DefaultSeed())

	cfg := testConfig()
	idem := idempotency.NewInMemoryStore(time.Hour)
	t.Cleanup(idem.Stop)

	pub := &recordingPublisher{}
	svc := NewReservationService(
		repo,
		keymutex.New(),
		idem,
		resvalidator.NewReservationValidator(cfg.Log),
		pub,
		cfg,
	).(*reservationService)
	return svc, repo, pub
}

// validCreateRequest targets the seeded restaurant's evening shift.
func validCreateRequest() *model.CreateReservationRequest {
	return &model.CreateReservationRequest{
		RestaurantID:  "R1",
		SectorID:      "S1",
		PartySize:     2,
		StartDateTime: "2025-09-08T20:00:00-03:00",
		Customer: model.CustomerRequest{
			Name:  "Juan Perez",
			Phone: "+5491145678901",
			Email: "juan@example.com",
		},
	}
}
