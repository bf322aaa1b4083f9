package eval

import "github.com/AbyssPortal/Teros/pkg/rules"

// Evaluate statically scores a position for use at search leaves. Mates and
// stalemate short-circuit; otherwise the score combines square control, check
// and signed material with a past-pawn advancement bonus. The king carries no
// material weight.
func Evaluate(w StaticWeights, b rules.Board) Score {
	switch b.Outcome() {
	case rules.WhiteMated:
		return MateInScore(rules.Black, 0)
	case rules.BlackMated:
		return MateInScore(rules.White, 0)
	case rules.Stalemate:
		return ZeroScore
	}

	v := w.SquareControl * float32(Control(b, rules.White)-Control(b, rules.Black))

	if c, check := b.InCheck(); check {
		if c == rules.Black {
			v += w.Check
		} else {
			v -= w.Check
		}
	}

	for row := 0; row < rules.Size; row++ {
		for col := 0; col < rules.Size; col++ {
			p, ok := b.Piece(row, col)
			if !ok {
				continue
			}
			worth := MaterialWorth(p.Kind) * w.PieceValue
			if p.Kind == rules.Pawn && IsPastPawn(b, p.Color, row, col) {
				worth += w.PastPawn * float32(advancement(p.Color, row))
			}
			if p.Color == rules.White {
				v += worth
			} else {
				v -= worth
			}
		}
	}
	return HeuristicScore(v)
}
