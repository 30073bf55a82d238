package scoring

import (
	"math/rand/v2"
	"strings"
)

// Hint is a coarse sector guess used to bias synthetic scores.
type Hint string

const (
	HintNone Hint = ""
	HintBank Hint = "bank"
	HintTech Hint = "tech"
	HintFMCG Hint = "fmcg"
)

type bias struct{ s, t, f int }

var hintBias = map[Hint]bias{
	HintBank: {s: -10, t: -5, f: -5},
	HintTech: {s: 5, t: 7, f: 3},
	HintFMCG: {s: 8, t: 3, f: 6},
}

// SectorHint guesses a hint from a company name.
func SectorHint(name string) Hint {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "bank"):
		return HintBank
	case strings.Contains(n, "tech"):
		return HintTech
	case strings.Contains(n, "unilever"), strings.Contains(n, "titan"):
		return HintFMCG
	}
	return HintNone
}

// Synthetic generates placeholder scores for a stock nobody has analysed yet.
// Each score is 50 plus a uniform integer offset plus the hint bias, clamped:
// sentiment to [12,98], technical to [8,96], fundamental to [10,99].
func Synthetic(hint Hint, rng *rand.Rand) Metrics {
	b := hintBias[hint]
	return Metrics{
		Sentiment:   float64(clamp(50+randInt(rng, -30, 35)+b.s, 12, 98)),
		Technical:   float64(clamp(50+randInt(rng, -40, 40)+b.t, 8, 96)),
		Fundamental: float64(clamp(50+randInt(rng, -35, 45)+b.f, 10, 99)),
	}
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	if rng == nil {
		return lo + rand.IntN(hi-lo+1)
	}
	return lo + rng.IntN(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
