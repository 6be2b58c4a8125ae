package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nexla-ia/sistemaclinicaandre/internal/reservation"
	"github.com/nexla-ia/sistemaclinicaandre/internal/session"
)

type fakeGenerator struct {
	from, to time.Time
	actor    string
}

func (g *fakeGenerator) GenerateRange(ctx context.Context, from, to time.Time) (*reservation.GenerateResult, error) {
	g.from, g.to = from, to
	g.actor = session.FromContext(ctx).Actor
	return &reservation.GenerateResult{From: from.Format("2006-01-02"), To: to.Format("2006-01-02")}, nil
}

func TestSlotGeneration_RunUsesClinicDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	gen := &fakeGenerator{}
	job := NewSlotGeneration(gen, 30, loc, zaptest.NewLogger(t))
	// 01:00 UTC 11 июня — в Сан-Паулу ещё 10 июня
	job.now = func() time.Time { return time.Date(2024, 6, 11, 1, 0, 0, 0, time.UTC) }

	res, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", res.From)
	assert.Equal(t, "2024-07-09", res.To)
	assert.Equal(t, "scheduler", gen.actor)
}

func TestSlotGeneration_RejectsBadHorizon(t *testing.T) {
	job := NewSlotGeneration(&fakeGenerator{}, 0, nil, zaptest.NewLogger(t))
	_, err := job.Run(context.Background())
	require.Error(t, err)
}

func TestSlotGeneration_Schedule(t *testing.T) {
	job := NewSlotGeneration(&fakeGenerator{}, 7, time.UTC, zaptest.NewLogger(t))

	require.Error(t, job.Start("every day please"))

	require.NoError(t, job.Start("@daily"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job.Stop(ctx)
}
