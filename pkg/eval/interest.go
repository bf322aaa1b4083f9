package eval

import (
	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/chewxy/math32"
)

// castlingInterest is the flat interest of a castling move.
const castlingInterest = 20.0

// Interest scores how much a candidate move warrants exploration, given the
// board before the move and the board after it. The score does not need to
// correlate with how good the move is.
func Interest(w InterestWeights, m rules.Move, pre, post rules.Board) float32 {
	switch m.Kind {
	case rules.Castling:
		return castlingInterest
	case rules.Promotion:
		return normalInterest(w, m, pre, post) + Worth(m.Promotion)
	default:
		return normalInterest(w, m, pre, post)
	}
}

func normalInterest(w InterestWeights, m rules.Move, pre, post rules.Board) float32 {
	mover, ok := pre.Piece(m.From.Row, m.From.Col)
	if !ok {
		panic("interest of a move with no piece on the source square")
	}

	var v float32

	// (1) Moving-piece term.
	switch mover.Kind {
	case rules.Pawn:
		if IsPastPawn(pre, mover.Color, m.To.Row, m.To.Col) {
			v += float32(m.To.Row)
		}
		if m.From.Row == homeRow(mover.Color) {
			v += w.HomeRowPawn
		}
	case rules.Knight, rules.Bishop:
		v += w.MinorPiece
	case rules.Rook:
		v += w.Rook
	case rules.Queen:
		v += w.Queen
	case rules.King:
		v += w.King
	}

	// (2) + (4) Target-square worth, plain and capture-weighted. Both lookups
	// are on the pre-move board.
	if target, ok := pre.Piece(m.To.Row, m.To.Col); ok {
		v += Worth(target.Kind)
		v += Worth(target.Kind) * w.Capture
	}

	// (3) Check and mate bonus on the resulting position.
	if _, mated := post.Outcome().Mated(); mated {
		v += math32.Inf(1)
	} else if _, check := post.InCheck(); check {
		v += w.Check
	}

	// (5) Square-control delta for the moving side.
	v += float32(Control(post, mover.Color)-Control(pre, mover.Color)) * w.SquareControl

	// (6) Opponent material under threat after the move.
	v += TotalAttack(post) * w.Attack

	return v
}
