package eval

import "fmt"

// InterestWeights tune how much a candidate move warrants further exploration.
// Interest measures how much a move changes the position, not how good it is.
type InterestWeights struct {
	// HomeRowPawn rewards a pawn leaving its starting rank.
	HomeRowPawn float32
	// MinorPiece, Rook, Queen and King are flat bonuses for moving that piece.
	// King is typically negative.
	MinorPiece float32
	Rook       float32
	Queen      float32
	King       float32
	// Check is the bonus for giving check.
	Check float32
	// Capture scales the worth of the captured piece.
	Capture float32
	// SquareControl scales the mover's change in controlled squares.
	SquareControl float32
	// Attack scales the opponent material under threat after the move.
	Attack float32
}

func (w InterestWeights) String() string {
	return fmt.Sprintf("{pawn=%v minor=%v rook=%v queen=%v king=%v check=%v capture=%v control=%v attack=%v}",
		w.HomeRowPawn, w.MinorPiece, w.Rook, w.Queen, w.King, w.Check, w.Capture, w.SquareControl, w.Attack)
}

// DefaultInterestWeights returns a balanced interest tuning.
func DefaultInterestWeights() InterestWeights {
	return InterestWeights{
		HomeRowPawn:   0.5,
		MinorPiece:    2,
		Rook:          1,
		Queen:         1.5,
		King:          -1,
		Check:         3,
		Capture:       0.5,
		SquareControl: 0.2,
		Attack:        0.1,
	}
}

// StaticWeights tune the static position evaluation and the frontier's
// per-ply depth penalty.
type StaticWeights struct {
	// SquareControl scales the difference in controlled squares.
	SquareControl float32
	// Check is the bonus against the checked side.
	Check float32
	// PieceValue scales nominal material.
	PieceValue float32
	// PastPawn scales a past pawn's advancement.
	PastPawn float32
	// DepthCost is the frontier penalty per ply of depth. Snapshotted onto
	// each frontier entry when it is enqueued.
	DepthCost float32
}

func (w StaticWeights) String() string {
	return fmt.Sprintf("{control=%v check=%v value=%v pastpawn=%v depthcost=%v}",
		w.SquareControl, w.Check, w.PieceValue, w.PastPawn, w.DepthCost)
}

// DefaultStaticWeights returns a balanced static tuning.
func DefaultStaticWeights() StaticWeights {
	return StaticWeights{
		SquareControl: 0.1,
		Check:         0.5,
		PieceValue:    1,
		PastPawn:      0.05,
		DepthCost:     2,
	}
}
