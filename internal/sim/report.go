package sim

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/game/battle"
)

// Report is the tally of one simulation run.
type Report struct {
	RunID uuid.UUID
	Seed  uint64

	Requested int // battles asked for
	Played    int // battles that finished with a winner
	Failed    int // battles aborted by an error

	P1Wins    int
	P2Wins    int
	Decisions int // battles decided by hp ratio at the cycle limit
	Cycles    int // summed over played battles
}

func (r *Report) add(res battle.Result) {
	r.Played++
	r.Cycles += res.Cycles
	if res.Decision {
		r.Decisions++
	}
	switch res.Winner {
	case data.Player1:
		r.P1Wins++
	case data.Player2:
		r.P2Wins++
	}
}

// P1WinRate returns player 1's share of played battles.
func (r Report) P1WinRate() float64 {
	if r.Played == 0 {
		return 0
	}
	return float64(r.P1Wins) / float64(r.Played)
}

// AvgCycles returns the mean battle length in cycles.
func (r Report) AvgCycles() float64 {
	if r.Played == 0 {
		return 0
	}
	return float64(r.Cycles) / float64(r.Played)
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", r.RunID.String()),
		slog.Uint64("seed", r.Seed),
		slog.Int("requested", r.Requested),
		slog.Int("played", r.Played),
		slog.Int("failed", r.Failed),
		slog.Int("p1_wins", r.P1Wins),
		slog.Int("p2_wins", r.P2Wins),
		slog.Int("decisions", r.Decisions),
		slog.Float64("p1_win_rate", r.P1WinRate()),
		slog.Float64("avg_cycles", r.AvgCycles()),
	)
}
