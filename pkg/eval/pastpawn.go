package eval

import "github.com/AbyssPortal/Teros/pkg/rules"

// IsPastPawn reports whether a pawn of the given color at (row,col) is past:
// no opposing pawn on its file or an adjacent file on any rank ahead of it.
// White looks at rows >= row, Black at rows < row.
func IsPastPawn(b rules.Board, c rules.Color, row, col int) bool {
	for f := col - 1; f <= col+1; f++ {
		if f < 0 || f >= rules.Size {
			continue
		}
		lo, hi := row, rules.Size
		if c == rules.Black {
			lo, hi = 0, row
		}
		for r := lo; r < hi; r++ {
			if p, ok := b.Piece(r, f); ok && p.Kind == rules.Pawn && p.Color == c.Other() {
				return false
			}
		}
	}
	return true
}

// homeRow is the starting rank for pawns of the given color.
func homeRow(c rules.Color) int {
	if c == rules.White {
		return 1
	}
	return rules.Size - 2
}

// advancement is how far a pawn at the given row has progressed toward
// promotion from its color's point of view.
func advancement(c rules.Color, row int) int {
	if c == rules.White {
		return row
	}
	return rules.Size - row
}
