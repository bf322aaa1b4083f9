package notnil

import "github.com/notnil/chess"

// Attack detection by mailbox scan. The notnil/chess public API does not
// expose "is square attacked", so the adapter answers check queries itself.

type delta struct{ dr, dc int }

var (
	knightDeltas = []delta{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDeltas   = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookRays     = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays   = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// kingAttacked reports whether the king of the given color is attacked.
func kingAttacked(b *chess.Board, c chess.Color) bool {
	king := chess.WhiteKing
	if c == chess.Black {
		king = chess.BlackKing
	}
	for sq := 0; sq < 64; sq++ {
		if b.Piece(chess.Square(sq)) == king {
			return squareAttacked(b, sq/8, sq%8, c.Other())
		}
	}
	return false
}

// squareAttacked reports whether any piece of color by attacks (row,col).
func squareAttacked(b *chess.Board, row, col int, by chess.Color) bool {
	at := func(r, c int) chess.Piece {
		if r < 0 || r > 7 || c < 0 || c > 7 {
			return chess.NoPiece
		}
		return b.Piece(chess.Square(r*8 + c))
	}
	is := func(p chess.Piece, t chess.PieceType) bool {
		return p != chess.NoPiece && p.Color() == by && p.Type() == t
	}

	// Pawns attack diagonally backward from the target's point of view.
	dir := 1
	if by == chess.White {
		dir = -1
	}
	if is(at(row+dir, col-1), chess.Pawn) || is(at(row+dir, col+1), chess.Pawn) {
		return true
	}

	for _, d := range knightDeltas {
		if is(at(row+d.dr, col+d.dc), chess.Knight) {
			return true
		}
	}
	for _, d := range kingDeltas {
		if is(at(row+d.dr, col+d.dc), chess.King) {
			return true
		}
	}
	for _, d := range rookRays {
		if p, ok := firstAlongRay(b, row, col, d); ok && p.Color() == by &&
			(p.Type() == chess.Rook || p.Type() == chess.Queen) {
			return true
		}
	}
	for _, d := range bishopRays {
		if p, ok := firstAlongRay(b, row, col, d); ok && p.Color() == by &&
			(p.Type() == chess.Bishop || p.Type() == chess.Queen) {
			return true
		}
	}
	return false
}

func firstAlongRay(b *chess.Board, row, col int, d delta) (chess.Piece, bool) {
	for r, c := row+d.dr, col+d.dc; 0 <= r && r < 8 && 0 <= c && c < 8; r, c = r+d.dr, c+d.dc {
		if p := b.Piece(chess.Square(r*8 + c)); p != chess.NoPiece {
			return p, true
		}
	}
	return chess.NoPiece, false
}
