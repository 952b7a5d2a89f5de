package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visualizer-service/internal/models"
	"visualizer-service/internal/visualizer"
	"visualizer-service/internal/visualizer/drop"
)

func newTestManager(ttl time.Duration) (*Manager, *time.Time) {
	m := NewManager(visualizer.NewReducer(drop.Default()), ttl)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func TestManagerLifecycle(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	s := m.Create()
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	got.Store.Dispatch(visualizer.SetDisplay{Display: models.DisplayBar})
	again, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DisplayBar, again.Store.State().Present.Display)

	require.NoError(t, m.Delete(s.ID))
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(s.ID), ErrSessionNotFound)
}

func TestManagerOnCreateHook(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	var seen []string
	m.OnCreate(func(s *Session) { seen = append(seen, s.ID) })

	a := m.Create()
	b := m.Create()
	assert.Equal(t, []string{a.ID, b.ID}, seen)
}

func TestManagerSweepEvictsIdleSessions(t *testing.T) {
	m, clock := newTestManager(time.Hour)

	idle := m.Create()
	*clock = clock.Add(30 * time.Minute)
	active := m.Create()

	*clock = clock.Add(45 * time.Minute)
	_, err := m.Get(active.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Sweep())
	_, err = m.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(active.ID)
	assert.NoError(t, err)
}

func TestManagerSweepDisabled(t *testing.T) {
	m, clock := newTestManager(0)
	m.Create()
	*clock = clock.Add(24 * time.Hour)
	assert.Equal(t, 0, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestSweeperRejectsInvalidSchedule(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	err := NewSweeper(m, "not a schedule").Start()
	assert.ErrorContains(t, err, "invalid session sweep schedule")

	sw := NewSweeper(m, "@every 1h")
	require.NoError(t, sw.Start())
	sw.Stop()
}
