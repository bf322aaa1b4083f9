// Package eval contains position and move evaluation logic and utilities.
package eval

import (
	"fmt"

	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/chewxy/math32"
)

// Score is a position score: either a heuristic value in pawns, positive
// favoring White, or a forced mate in N plies by one side. Scores are totally
// ordered: a White mate beats any heuristic value beats a Black mate; among
// White mates the sooner is greater, among Black mates the later is greater.
type Score struct {
	heuristic float32
	mate      int32
	side      rules.Color
	isMate    bool
}

// HeuristicScore returns a numeric score. It panics on NaN; infinities are
// allowed and used as search sentinels.
func HeuristicScore(v float32) Score {
	if math32.IsNaN(v) {
		panic("NaN score")
	}
	return Score{heuristic: v}
}

// MateInScore returns a forced mate by side in n plies.
func MateInScore(side rules.Color, n int) Score {
	return Score{side: side, mate: int32(n), isMate: true}
}

// ZeroScore is the even heuristic score.
var ZeroScore = HeuristicScore(0)

// IsHeuristic reports whether the score is numeric rather than a mate.
func (s Score) IsHeuristic() bool {
	return !s.isMate
}

// MateDistance returns the mating side and distance in plies, if the score is
// a mate.
func (s Score) MateDistance() (rules.Color, int, bool) {
	if !s.isMate {
		return rules.White, 0, false
	}
	return s.side, int(s.mate), true
}

// Heuristic returns the numeric value of a heuristic score, or zero for mates.
func (s Score) Heuristic() float32 {
	return s.heuristic
}

// rank buckets scores for ordering: Black mates < heuristic values < White mates.
func (s Score) rank() int {
	switch {
	case s.isMate && s.side == rules.Black:
		return 0
	case s.isMate:
		return 2
	default:
		return 1
	}
}

// Less is the total order on scores from the maximizer's point of view.
func (s Score) Less(o Score) bool {
	if s.rank() != o.rank() {
		return s.rank() < o.rank()
	}
	switch {
	case !s.isMate:
		return s.heuristic < o.heuristic
	case s.side == rules.White:
		return s.mate > o.mate // sooner White mate is greater
	default:
		return s.mate < o.mate // later Black mate is greater
	}
}

// IncrementMateDistance adds one ply to a mate score and leaves heuristic
// scores unchanged. Used when propagating a child score up one ply.
func IncrementMateDistance(s Score) Score {
	if !s.isMate {
		return s
	}
	return MateInScore(s.side, int(s.mate)+1)
}

func (s Score) String() string {
	if !s.isMate {
		return fmt.Sprintf("%.2f", s.heuristic)
	}
	if s.side == rules.White {
		return fmt.Sprintf("+M%d", s.mate)
	}
	return fmt.Sprintf("-M%d", s.mate)
}
