package battle

import "go.uber.org/zap"

// drainOnDeath runs the on-death skills of every card queued by cardDied.
// Deaths caused by those skills queue up a further wave; the loop ends when a wave adds nothing.
func (b *Battle) drainOnDeath() {
	for wave := 1; len(b.onDeath) > 0; wave++ {
		queued := b.onDeath
		b.onDeath = nil
		b.log.Debug("on-death wave", zap.Int("wave", wave), zap.Int("cards", len(queued)))

		for _, c := range queued {
			if s := c.inherentOnDeath; s != nil {
				b.runOnDeath(c, s)
			}
			if s := c.grantedOnDeath; s != nil {
				c.grantedOnDeath = nil
				b.runOnDeath(c, s)
			}
		}
	}
}

func (b *Battle) runOnDeath(c *Card, s *Skill) {
	a := &action{executor: c, skill: s}
	if b.willBeExecuted(a) {
		b.execute(a)
	}
}
