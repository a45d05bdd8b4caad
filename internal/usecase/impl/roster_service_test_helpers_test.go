package impl

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"guild/internal/infra/persistence/memory"
	mockRepo "guild/internal/mocks/repository"
	"guild/internal/usecase"
)

// recordingHandler keeps every log record so tests can count them.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record.Clone())

	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func (h *recordingHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, record := range h.records {
		if record.Level == level {
			n++
		}
	}

	return n
}

func (h *recordingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, 0, len(h.records))
	for _, record := range h.records {
		out = append(out, record.Message)
	}

	return out
}

// rosterServiceFixtures holds all test dependencies for roster service tests.
type rosterServiceFixtures struct {
	service usecase.RosterUsecase
	gateway *mockRepo.MockRosterGateway
	logs    *recordingHandler
	ctx     context.Context
}

func createTestRosterService(t *testing.T) rosterServiceFixtures {
	gateway := mockRepo.NewMockRosterGateway(t)
	logs := &recordingHandler{}
	service := NewRosterService(memory.NewHeroRepository(), gateway, slog.New(logs))

	return rosterServiceFixtures{
		service: service,
		gateway: gateway,
		logs:    logs,
		ctx:     context.Background(),
	}
}

func intPtr(v int) *int {
	return &v
}
