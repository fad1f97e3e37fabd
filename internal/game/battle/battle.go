// Package battle runs one familiar battle: two lineups, a turn loop over
// up to MaxCycles cycles and a winner decided by annihilation or hp ratio.
//
// A Battle is single-use and not safe for concurrent use. Every random decision
// is drawn from the rng.Source it was built with, so a battle replays exactly
// from the same source.
package battle

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/udisondev/famsim/internal/config"
	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/game/affliction"
	"github.com/udisondev/famsim/internal/game/combat"
	"github.com/udisondev/famsim/internal/rng"
)

// Team is one side's composition. Cards lists field cards by column,
// followed by the reserves in blood clash.
type Team struct {
	Formation     data.FormationType
	Cards         []int
	WarlordSkills []int
}

// Setup describes a battle.
type Setup struct {
	P1, P2    Team
	Mode      data.BattleMode
	ProcOrder data.ProcOrder
}

// Result is the outcome of a finished battle.
type Result struct {
	Winner int // data.Player1 or data.Player2
	Cycles int
	// Decision is set when the cycle limit ran out and the hp ratio decided.
	Decision bool
}

// Battle — один бой между двумя командами.
type Battle struct {
	cat       *data.Catalog
	rules     config.Rules
	params    combat.Params
	afflRules affliction.Rules
	src       rng.Source
	log       *zap.Logger
	mode      data.BattleMode

	sides [2]*side
	cards []*Card

	cycle            int
	basis            data.TurnOrderBasis
	basisTurns       int
	turnOrderChanged bool
	current          int // player of the acting card
	onDeath          []*Card

	finished bool
	winner   int
	decision bool
	ran      bool
}

// New builds a battle. log may be nil.
func New(setup Setup, cat *data.Catalog, rules config.Rules, src rng.Source, log *zap.Logger) (*Battle, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", errors.Join(err, ErrConfig))
	}
	if log == nil {
		log = zap.NewNop()
	}
	b := &Battle{
		cat:   cat,
		rules: rules,
		params: combat.Params{
			VarianceMin: rules.VarianceMin,
			VarianceMax: rules.VarianceMax,
			FloorFactor: rules.DamageFloorFactor,
		},
		afflRules: affliction.Rules{
			DefaultPoisonPercent: rules.DefaultPoisonPercent,
			PoisonStackFactor:    rules.PoisonStackFactor,
			PoisonMaxDamage:      rules.PoisonMaxDamage,
		},
		src:   src,
		log:   log,
		mode:  setup.Mode,
		basis: data.TurnOrderAGI,
	}

	for i, team := range []Team{setup.P1, setup.P2} {
		sd, err := b.buildSide(i+1, team, setup.ProcOrder)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		b.sides[i] = sd
	}
	return b, nil
}

func (b *Battle) buildSide(player int, team Team, order data.ProcOrder) (*side, error) {
	if !team.Formation.Valid() {
		return nil, configf("formation %d", team.Formation)
	}
	if want := b.mode.TeamSize(); len(team.Cards) != want {
		return nil, configf("%s needs %d cards, got %d", b.mode, want, len(team.Cards))
	}

	sd := &side{player: player, formation: team.Formation}
	for i, id := range team.Cards {
		col := i % data.Columns
		c, err := b.buildCard(player, col, id, team, order)
		if err != nil {
			return nil, err
		}
		if i < data.Columns {
			sd.main[col] = c
		} else {
			sd.reserve[col] = c
		}
	}
	return sd, nil
}

func (b *Battle) buildCard(player, col, id int, team Team, order data.ProcOrder) (*Card, error) {
	tmpl, err := b.cat.Card(id)
	if err != nil {
		return nil, configf("%v", err)
	}
	row, err := team.Formation.Row(col)
	if err != nil {
		return nil, configf("%v", err)
	}
	proc, err := order.ProcIndex(row, col)
	if err != nil {
		return nil, configf("%v", err)
	}

	c := &Card{
		ID:        len(b.cards) + 1,
		Template:  tmpl,
		Player:    player,
		Column:    col,
		Row:       row,
		ProcIndex: proc,
		Mounted:   tmpl.Mounted,
		base: stats{
			hp:  float64(tmpl.HP),
			atk: float64(tmpl.ATK),
			def: float64(tmpl.DEF),
			wis: float64(tmpl.WIS),
			agi: float64(tmpl.AGI),
		},
		hp:          float64(tmpl.HP),
		floorFactor: b.rules.DebuffFloorFactor,
	}

	if c.autoAttack, err = b.bind(tmpl.AutoAttackID()); err != nil {
		return nil, fmt.Errorf("card %d: auto attack: %w", tmpl.ID, err)
	}
	skills := tmpl.Skills
	if tmpl.Warlord {
		skills = team.WarlordSkills
	}
	for _, sid := range skills {
		s, err := b.bind(sid)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", tmpl.ID, err)
		}
		if err := c.addSkill(s); err != nil {
			return nil, err
		}
	}
	if c.Mounted && len(c.active) < 2 {
		return nil, configf("card %d: mounted card needs two active skills, has %d", tmpl.ID, len(c.active))
	}

	b.cards = append(b.cards, c)
	return c, nil
}

func (b *Battle) bind(id int) (*Skill, error) {
	t, err := b.cat.Skill(id)
	if err != nil {
		return nil, configf("%v", err)
	}
	return bindSkill(t, b.cat)
}

// Card returns the battle card with the given battle-local id (1-based, player 1 first).
func (b *Battle) Card(id int) *Card {
	if id < 1 || id > len(b.cards) {
		return nil
	}
	return b.cards[id-1]
}

// Field returns the cards currently on the field of player, by column.
func (b *Battle) Field(player int) [data.Columns]*Card {
	return b.side(player).main
}

// Run plays the battle to the end.
// Configuration problems found mid-battle are returned wrapped in ErrConfig,
// broken engine state in ErrInvariant.
func (b *Battle) Run() (res Result, err error) {
	if b.ran {
		return Result{}, errors.New("battle already run")
	}
	b.ran = true

	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			err = a.err
			b.log.Warn("battle aborted", zap.Int("cycle", b.cycle), zap.Error(err))
		}
	}()

	b.openingPhase()
	for !b.finished {
		b.playCycle()
	}

	b.log.Debug("battle finished",
		zap.Int("winner", b.winner),
		zap.Int("cycles", b.cycle),
		zap.Bool("decision", b.decision),
	)
	return Result{Winner: b.winner, Cycles: b.cycle, Decision: b.decision}, nil
}

// openingPhase rolls one opening skill per field card in proc order, player 1 first.
func (b *Battle) openingPhase() {
	for _, sd := range b.sides {
		for _, c := range sd.byProcIndex() {
			b.rollOpening(c)
		}
	}
	b.turnOrderChanged = false
}

func (b *Battle) rollOpening(c *Card) {
	s := c.randomOpening(b.src)
	if s == nil {
		return
	}
	if a := (&action{executor: c, skill: s}); b.willBeExecuted(a) {
		b.execute(a)
	}
}

func (b *Battle) playCycle() {
	b.cycle++
	if b.basisTurns == 0 {
		b.basis = data.TurnOrderAGI
	} else {
		b.basisTurns--
	}
	b.log.Debug("cycle", zap.Int("cycle", b.cycle), zap.Stringer("basis", b.basis))

	for _, sl := range b.turnOrder() {
		if b.finished {
			return
		}
		b.playTurn(sl)
	}
	if !b.finished {
		b.endCycle()
	}
}

func (b *Battle) playTurn(sl slot) {
	c := b.occupant(sl)
	b.current = sl.player

	if c.dead {
		if b.mode != data.ModeBloodClash {
			return
		}
		if c = b.side(sl.player).switchIn(sl.column); c == nil {
			return
		}
		b.log.Debug("reserve switched in", zap.Int("card", c.ID), zap.Int("column", sl.column))
		b.rollOpening(c)
	}

	b.activePhase(c, 0)
	if b.finished {
		return
	}
	if !c.dead && c.status.WillAttackAgain != 0 {
		b.activePhase(c, 0)
		c.status.WillAttackAgain = 0
		if b.finished {
			return
		}
	}
	if !c.dead {
		b.updateAffliction(c)
		b.drainOnDeath()
	}
	b.checkFinish()
}

// activePhase is one action of c. Mounted cards act twice, with their
// first and then their second active skill.
func (b *Battle) activePhase(c *Card, nth int) {
	s := c.randomActive(b.src)
	if c.Mounted {
		s = c.active[nth]
	}
	if a := (&action{executor: c, skill: s}); s != nil && b.willBeExecuted(a) {
		b.execute(a)
	} else if c.CanAttack() {
		b.execute(&action{executor: c, skill: c.autoAttack})
	}

	b.drainOnDeath()
	b.checkFinish()
	if b.finished {
		return
	}
	if nth == 0 && c.Mounted && !c.dead {
		b.activePhase(c, 1)
	}
}

func (b *Battle) updateAffliction(c *Card) {
	if c.affl == nil {
		return
	}
	if dmg := c.affl.Update(c.base.hp, b.afflRules); dmg != 0 {
		b.log.Debug("poison", zap.Int("card", c.ID), zap.Float64("damage", dmg))
		b.damageDirect(c, dmg)
	}
	if c.affl.Finished() {
		c.affl = nil
	}
}

// checkFinish ends the battle when a side is wiped out. The acting side is checked second,
// so a card that takes both sides down wins for its own player.
func (b *Battle) checkFinish() {
	if len(b.onDeath) > 0 {
		return
	}
	bc := b.mode == data.ModeBloodClash
	cur, opp := b.side(b.current), b.enemyOf(b.current)
	switch {
	case opp.allDead(bc):
		b.finish(cur.player, false)
	case cur.allDead(bc):
		b.finish(opp.player, false)
	}
}

func (b *Battle) endCycle() {
	if b.cycle >= b.rules.MaxCycles {
		winner := data.Player2
		if b.sides[0].hpRatio() >= b.sides[1].hpRatio() {
			winner = data.Player1
		}
		b.finish(winner, true)
		return
	}
	if b.mode == data.ModeBloodClash {
		for _, sd := range b.sides {
			for _, c := range sd.cards() {
				if !c.dead {
					c.bcAddedProb += b.rules.BloodClashProbBonus
				}
			}
		}
	}
}

func (b *Battle) finish(winner int, decision bool) {
	b.finished = true
	b.winner = winner
	b.decision = decision
}
