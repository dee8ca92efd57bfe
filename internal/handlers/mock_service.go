package handlers

import (
	"context"

	"gigahouse/internal/models"
	"gigahouse/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDispatcher struct {
	on          bool
	err         error
	toggleCalls int
	lastDevice  string
}

func (m *mockDispatcher) Toggle(_ context.Context, deviceID string) (bool, error) {
	m.toggleCalls++
	m.lastDevice = deviceID
	return m.on, m.err
}

type mockObserver struct {
	snap       models.StateSnapshot
	probeErr   error
	probeCalls int
	started    int
	stopped    int
}

func (m *mockObserver) Start(context.Context) error { m.started++; return nil }
func (m *mockObserver) Stop()                       { m.stopped++ }
func (m *mockObserver) Snapshot() models.StateSnapshot {
	return m.snap
}
func (m *mockObserver) Probe(context.Context) error {
	m.probeCalls++
	return m.probeErr
}

type mockScheduler struct {
	saveErr  error
	getRule  models.ScheduleRule
	getFound bool
	getErr   error
	lastSave models.ScheduleRule
}

func (m *mockScheduler) Save(_ context.Context, rule models.ScheduleRule) error {
	m.lastSave = rule
	return m.saveErr
}
func (m *mockScheduler) Get(context.Context, string) (models.ScheduleRule, bool, error) {
	return m.getRule, m.getFound, m.getErr
}

type mockHistory struct {
	entries   []models.HistoryEntry
	listErr   error
	appended  []string
	appendErr error
}

func (m *mockHistory) Start(context.Context) error { return nil }
func (m *mockHistory) Stop()                       {}
func (m *mockHistory) List(context.Context) ([]models.HistoryEntry, error) {
	return m.entries, m.listErr
}
func (m *mockHistory) Append(_ context.Context, event string) error {
	m.appended = append(m.appended, event)
	return m.appendErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
