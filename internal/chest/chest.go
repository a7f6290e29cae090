// Package chest rolls daily chest rewards and enforces their cooldowns.
package chest

import (
	"math/rand/v2"
	"sync"
	"time"

	dom "github.com/gdps-go/gdps/internal/ports"
)

const (
	SmallCooldown = 2 * time.Hour
	LargeCooldown = 24 * time.Hour

	// ManaPerDemonKey is the cumulative mana each bonus demon key is worth.
	ManaPerDemonKey = 500

	// ItemSlots is how many items one reward string can carry.
	ItemSlots = 2
)

var (
	smallMana     = []int{20, 25, 30, 35, 45, 50}
	smallDiamonds = []int{1, 2, 3, 4}
	largeMana     = []int{100, 150, 200, 300, 400}
	largeDiamonds = []int{4, 5}
)

// Cooldown returns the wait between two claims of tier t.
func Cooldown(t dom.ChestType) time.Duration {
	if t == dom.ChestLarge {
		return LargeCooldown
	}
	return SmallCooldown
}

// Remaining is how long until tier t can be claimed again given the latest
// claim, or zero when it can be claimed now.
func Remaining(t dom.ChestType, last *dom.DailyChest, now time.Time) time.Duration {
	if last == nil {
		return 0
	}
	next := last.ClaimedTs.Add(Cooldown(t))
	if !now.Before(next) {
		return 0
	}
	return next.Sub(now)
}

// Engine draws rewards from its random source. It is safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an engine seeded from the runtime's random source.
func New() *Engine {
	return &Engine{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewWithSource is for deterministic rolls.
func NewWithSource(src rand.Source) *Engine { return &Engine{rng: rand.New(src)} }

func (e *Engine) pick(vals []int) int { return vals[e.rng.IntN(len(vals))] }

// Roll draws the rewards for one claim of tier t by a user who has already
// collected priorMana across all chests. A claim grants at most ItemSlots
// items; demon keys earned by the claim's mana take slots before shards.
func (e *Engine) Roll(t dom.ChestType, priorMana int) dom.DailyChest {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := dom.DailyChest{Type: t}
	switch t {
	case dom.ChestLarge:
		c.Mana = e.pick(largeMana)
		if e.rng.IntN(10) == 0 {
			c.Diamonds = 10
		} else {
			c.Diamonds = e.pick(largeDiamonds)
		}
	default:
		c.Mana = e.pick(smallMana)
		c.Diamonds = e.pick(smallDiamonds)
	}
	c.DemonKeys = min(DemonKeysCrossed(priorMana, priorMana+c.Mana), ItemSlots)
	if t == dom.ChestLarge {
		for range ItemSlots - c.DemonKeys {
			if e.rng.IntN(2) == 0 {
				c.AddShard(dom.ShardTypes[e.rng.IntN(len(dom.ShardTypes))], 1)
			}
		}
	}
	return c
}

// DemonKeysCrossed counts the demon-key thresholds passed going from before
// to after cumulative mana.
func DemonKeysCrossed(before, after int) int {
	return after/ManaPerDemonKey - before/ManaPerDemonKey
}
