package eval

import (
	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/chewxy/math32"
)

// Worth is the nominal value in pawns of a piece for interest scoring. The
// King is infinitely interesting to capture.
func Worth(k rules.PieceKind) float32 {
	switch k {
	case rules.Pawn:
		return 1
	case rules.Knight, rules.Bishop:
		return 3
	case rules.Rook:
		return 5
	case rules.Queen:
		return 9
	case rules.King:
		return math32.Inf(1)
	default:
		panic("invalid piece")
	}
}

// MaterialWorth is the nominal value in pawns of a piece for material
// counting. The King contributes nothing; mate is scored separately.
func MaterialWorth(k rules.PieceKind) float32 {
	if k == rules.King {
		return 0
	}
	return Worth(k)
}
