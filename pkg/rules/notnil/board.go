// Package notnil adapts github.com/notnil/chess to the rules.Board interface.
package notnil

import (
	"fmt"
	"io"
	"strings"

	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// Board implements rules.Board over a notnil/chess position. Positions are
// immutable in notnil/chess: applying a move rebinds the pointer, so clones
// may share the underlying position.
type Board struct {
	pos *chess.Position
}

// Starting returns a board in the standard starting position.
func Starting() *Board {
	return &Board{pos: chess.StartingPosition()}
}

// FromFEN returns a board parsed from a FEN string.
func FromFEN(s string) (*Board, error) {
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(s)); err != nil {
		return nil, errors.Wrapf(err, "invalid FEN %q", s)
	}
	return &Board{pos: pos}, nil
}

// FEN returns the position in FEN format.
func (b *Board) FEN() string {
	return b.pos.String()
}

func (b *Board) Clone() rules.Board {
	return &Board{pos: b.pos}
}

func (b *Board) GenerateMoves(row, col int) ([]rules.Move, error) {
	sq, err := toSquare(row, col)
	if err != nil {
		return nil, err
	}
	p := b.pos.Board().Piece(sq)
	if p == chess.NoPiece {
		return nil, rules.ErrNoPiece
	}
	if p.Color() != b.pos.Turn() {
		return nil, rules.ErrWrongTurn
	}
	return movesFrom(b.pos, sq), nil
}

func (b *Board) GenerateMovesIgnoreTurn(row, col int) ([]rules.Move, error) {
	sq, err := toSquare(row, col)
	if err != nil {
		return nil, err
	}
	p := b.pos.Board().Piece(sq)
	if p == chess.NoPiece {
		return nil, rules.ErrNoPiece
	}
	pos := b.pos
	if p.Color() != pos.Turn() {
		flipped, err := flipTurn(pos)
		if err != nil {
			return nil, err
		}
		pos = flipped
	}
	return movesFrom(pos, sq), nil
}

func (b *Board) MakeLegalMove(m rules.Move) error {
	cm, ok := findMove(b.pos, m)
	if !ok {
		return errors.Errorf("illegal move %v", m)
	}
	b.pos = b.pos.Update(cm)
	return nil
}

func (b *Board) Piece(row, col int) (rules.Piece, bool) {
	sq, err := toSquare(row, col)
	if err != nil {
		return rules.Piece{}, false
	}
	p := b.pos.Board().Piece(sq)
	if p == chess.NoPiece {
		return rules.Piece{}, false
	}
	return rules.Piece{Kind: toKind(p.Type()), Color: toColor(p.Color())}, true
}

func (b *Board) Turn() rules.Color {
	return toColor(b.pos.Turn())
}

func (b *Board) InCheck() (rules.Color, bool) {
	for _, c := range []chess.Color{b.pos.Turn(), b.pos.Turn().Other()} {
		if kingAttacked(b.pos.Board(), c) {
			return toColor(c), true
		}
	}
	return rules.White, false
}

func (b *Board) Outcome() rules.Outcome {
	if len(b.pos.ValidMoves()) > 0 {
		return rules.Ongoing
	}
	if kingAttacked(b.pos.Board(), b.pos.Turn()) {
		if b.pos.Turn() == chess.White {
			return rules.WhiteMated
		}
		return rules.BlackMated
	}
	return rules.Stalemate
}

func (b *Board) InterpretMove(s string) (rules.Move, error) {
	cm, err := chess.AlgebraicNotation{}.Decode(b.pos, s)
	if err != nil {
		var uciErr error
		if cm, uciErr = (chess.UCINotation{}).Decode(b.pos, s); uciErr != nil {
			return rules.Move{}, errors.Wrapf(err, "cannot interpret move %q", s)
		}
	}
	return fromChessMove(cm), nil
}

func (b *Board) MoveName(m rules.Move) string {
	if cm, ok := findMove(b.pos, m); ok {
		return chess.AlgebraicNotation{}.Encode(b.pos, cm)
	}
	return m.String()
}

func (b *Board) Print(w io.Writer) {
	fmt.Fprintln(w, b.pos.Board().Draw())
}

func (b *Board) String() string {
	return b.FEN()
}

// movesFrom returns the legal moves originating on the given square.
func movesFrom(pos *chess.Position, sq chess.Square) []rules.Move {
	var ret []rules.Move
	for _, cm := range pos.ValidMoves() {
		if cm.S1() != sq {
			continue
		}
		ret = append(ret, fromChessMove(cm))
	}
	return ret
}

// findMove resolves a rules.Move to the matching legal notnil move, if any.
func findMove(pos *chess.Position, m rules.Move) (*chess.Move, bool) {
	for _, cm := range pos.ValidMoves() {
		if fromChessMove(cm) == m {
			return cm, true
		}
	}
	return nil, false
}

func fromChessMove(cm *chess.Move) rules.Move {
	switch {
	case cm.HasTag(chess.KingSideCastle):
		return rules.CastlingMove(rules.KingSide)
	case cm.HasTag(chess.QueenSideCastle):
		return rules.CastlingMove(rules.QueenSide)
	case cm.Promo() != chess.NoPieceType:
		return rules.PromotionMove(fromSquare(cm.S1()), fromSquare(cm.S2()), toKind(cm.Promo()))
	default:
		return rules.NormalMove(fromSquare(cm.S1()), fromSquare(cm.S2()))
	}
}

// flipTurn returns the position with the side to move swapped and the
// en passant square cleared.
func flipTurn(pos *chess.Position) (*chess.Position, error) {
	fields := strings.Fields(pos.String())
	if len(fields) != 6 {
		return nil, errors.Errorf("malformed FEN %q", pos.String())
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"

	flipped := &chess.Position{}
	if err := flipped.UnmarshalText([]byte(strings.Join(fields, " "))); err != nil {
		return nil, errors.Wrap(err, "flip turn")
	}
	return flipped, nil
}

func toSquare(row, col int) (chess.Square, error) {
	if !(rules.Square{Row: row, Col: col}).Valid() {
		return chess.NoSquare, errors.Errorf("square (%d,%d) off the board", row, col)
	}
	return chess.Square(row*8 + col), nil
}

func fromSquare(sq chess.Square) rules.Square {
	return rules.Square{Row: int(sq) / 8, Col: int(sq) % 8}
}

func toColor(c chess.Color) rules.Color {
	if c == chess.White {
		return rules.White
	}
	return rules.Black
}

func toKind(t chess.PieceType) rules.PieceKind {
	switch t {
	case chess.Pawn:
		return rules.Pawn
	case chess.Knight:
		return rules.Knight
	case chess.Bishop:
		return rules.Bishop
	case chess.Rook:
		return rules.Rook
	case chess.Queen:
		return rules.Queen
	case chess.King:
		return rules.King
	default:
		panic(fmt.Sprintf("invalid piece type: %v", t))
	}
}
