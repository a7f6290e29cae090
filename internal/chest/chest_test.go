package chest

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gdps-go/gdps/internal/codec"
	dom "github.com/gdps-go/gdps/internal/ports"
)

func TestRemainingBoundary(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	last := &dom.DailyChest{ClaimedTs: now.Add(-SmallCooldown)}
	if r := Remaining(dom.ChestSmall, last, now); r != 0 {
		t.Fatalf("remaining at cooldown end = %v", r)
	}
	last.ClaimedTs = now.Add(-SmallCooldown + time.Second)
	if r := Remaining(dom.ChestSmall, last, now); r != time.Second {
		t.Fatalf("remaining one second early = %v", r)
	}
	if r := Remaining(dom.ChestLarge, last, now); r != LargeCooldown-SmallCooldown+time.Second {
		t.Fatalf("large remaining = %v", r)
	}
	if r := Remaining(dom.ChestLarge, nil, now); r != 0 {
		t.Fatalf("never claimed remaining = %v", r)
	}
}

func TestSmallRollRanges(t *testing.T) {
	e := NewWithSource(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		c := e.Roll(dom.ChestSmall, 0)
		if !slices.Contains(smallMana, c.Mana) {
			t.Fatalf("small mana %d", c.Mana)
		}
		if c.Diamonds < 1 || c.Diamonds > 4 {
			t.Fatalf("small diamonds %d", c.Diamonds)
		}
		for _, s := range dom.ShardTypes {
			if c.ShardCount(s) != 0 {
				t.Fatalf("small chest carried shards: %+v", c)
			}
		}
	}
}

func TestLargeRollRanges(t *testing.T) {
	e := NewWithSource(rand.NewPCG(3, 4))
	sawTen := false
	for i := 0; i < 2000; i++ {
		c := e.Roll(dom.ChestLarge, 0)
		if !slices.Contains(largeMana, c.Mana) {
			t.Fatalf("large mana %d", c.Mana)
		}
		switch c.Diamonds {
		case 4, 5:
		case 10:
			sawTen = true
		default:
			t.Fatalf("large diamonds %d", c.Diamonds)
		}
		shards := 0
		for _, s := range dom.ShardTypes {
			shards += c.ShardCount(s)
		}
		if shards > 2 {
			t.Fatalf("large chest with %d shards", shards)
		}
	}
	if !sawTen {
		t.Fatal("10 diamond roll never drawn")
	}
}

func TestDemonKeysCrossed(t *testing.T) {
	cases := []struct{ before, after, want int }{
		{0, 50, 0},
		{480, 520, 1},
		{499, 500, 1},
		{500, 999, 0},
		{450, 1050, 2},
	}
	for _, c := range cases {
		if got := DemonKeysCrossed(c.before, c.after); got != c.want {
			t.Errorf("DemonKeysCrossed(%d, %d) = %d, want %d", c.before, c.after, got, c.want)
		}
	}

	e := NewWithSource(rand.NewPCG(5, 6))
	c := e.Roll(dom.ChestLarge, 499)
	if c.DemonKeys != 1 {
		t.Fatalf("roll from 499 mana gave %d demon keys", c.DemonKeys)
	}
}

// Every item a stored claim grants must show up in its reward string.
func TestRollFitsRewardString(t *testing.T) {
	tests := []struct {
		name      string
		tier      dom.ChestType
		priorMana int
		wantKeys  int
	}{
		{"large crossing", dom.ChestLarge, 450, 1},
		{"large below", dom.ChestLarge, 0, 0},
		{"small crossing", dom.ChestSmall, 490, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maxShards := 0
			for seed := uint64(0); seed < 400; seed++ {
				c := NewWithSource(rand.NewPCG(seed, seed+1)).Roll(tt.tier, tt.priorMana)
				if c.DemonKeys != tt.wantKeys {
					t.Fatalf("seed %d: demon keys = %d, want %d", seed, c.DemonKeys, tt.wantKeys)
				}
				var want []string
				for range c.DemonKeys {
					want = append(want, "6")
				}
				shards := 0
				for _, s := range dom.ShardTypes {
					for range c.ShardCount(s) {
						want = append(want, strconv.Itoa(int(s)))
						shards++
					}
				}
				maxShards = max(maxShards, shards)
				if len(want) > ItemSlots {
					t.Fatalf("seed %d: %d items do not fit: %+v", seed, len(want), c)
				}
				for len(want) < ItemSlots {
					want = append(want, "0")
				}
				got := strings.SplitN(codec.ChestRewards(&c), ",", 3)[2]
				if got != strings.Join(want, ",") {
					t.Fatalf("seed %d: items %q, want %q for %+v", seed, got, strings.Join(want, ","), c)
				}
			}
			if tt.tier == dom.ChestLarge && maxShards != ItemSlots-tt.wantKeys {
				t.Fatalf("max shards drawn = %d, want %d", maxShards, ItemSlots-tt.wantKeys)
			}
		})
	}
}
