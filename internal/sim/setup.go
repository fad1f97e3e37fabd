package sim

import (
	"fmt"

	"github.com/udisondev/famsim/internal/config"
	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/game/battle"
)

// BuildSetup converts the configured teams and mode into a battle.Setup.
func BuildSetup(sim config.Simulation, teams config.Teams) (battle.Setup, error) {
	mode, err := data.ParseBattleMode(sim.Mode)
	if err != nil {
		return battle.Setup{}, fmt.Errorf("simulation.mode: %w", err)
	}
	order, err := data.ParseProcOrder(sim.ProcOrder)
	if err != nil {
		return battle.Setup{}, fmt.Errorf("simulation.proc_order: %w", err)
	}
	p1, err := buildTeam(teams.P1)
	if err != nil {
		return battle.Setup{}, fmt.Errorf("teams.p1: %w", err)
	}
	p2, err := buildTeam(teams.P2)
	if err != nil {
		return battle.Setup{}, fmt.Errorf("teams.p2: %w", err)
	}
	return battle.Setup{P1: p1, P2: p2, Mode: mode, ProcOrder: order}, nil
}

func buildTeam(t config.Team) (battle.Team, error) {
	f, err := data.ParseFormation(t.Formation)
	if err != nil {
		return battle.Team{}, fmt.Errorf("formation: %w", err)
	}
	return battle.Team{Formation: f, Cards: t.Cards, WarlordSkills: t.WarlordSkills}, nil
}
