package eval

import (
	"fmt"
	"math/bits"

	"github.com/AbyssPortal/Teros/pkg/rules"
)

// Control counts the distinct squares attacked or reachable by pieces of the
// given color, ignoring whose turn it is. Castling destinations do not count.
func Control(b rules.Board, c rules.Color) int {
	var seen uint64
	eachIgnoreTurnMove(b, c, func(m rules.Move) {
		seen |= 1 << uint(m.To.Row*rules.Size+m.To.Col)
	})
	return bits.OnesCount64(seen)
}

// TotalAttack sums, over every non-castling move of the side not on turn, the
// material worth of the piece on the destination square: how much material is
// under attack after the move that produced this position. A piece reachable
// by several moves is counted once per move.
func TotalAttack(b rules.Board) float32 {
	var sum float32
	eachIgnoreTurnMove(b, b.Turn().Other(), func(m rules.Move) {
		if target, ok := b.Piece(m.To.Row, m.To.Col); ok {
			sum += MaterialWorth(target.Kind)
		}
	})
	return sum
}

// eachIgnoreTurnMove visits every non-castling move available to pieces of
// the given color, ignoring whose turn it is.
func eachIgnoreTurnMove(b rules.Board, c rules.Color, fn func(rules.Move)) {
	for row := 0; row < rules.Size; row++ {
		for col := 0; col < rules.Size; col++ {
			p, ok := b.Piece(row, col)
			if !ok || p.Color != c {
				continue
			}
			moves, err := b.GenerateMovesIgnoreTurn(row, col)
			if err != nil {
				panic(fmt.Sprintf("move generation failed on occupied square %v: %v", rules.Square{Row: row, Col: col}, err))
			}
			for _, m := range moves {
				if m.Kind == rules.Castling {
					continue
				}
				fn(m)
			}
		}
	}
}
