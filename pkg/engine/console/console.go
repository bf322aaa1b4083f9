// Package console implements a line-oriented console driver for interactive
// play and debugging.
package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AbyssPortal/Teros/pkg/engine"
	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/AbyssPortal/Teros/pkg/rules/notnil"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver implements the console protocol: human moves in algebraic notation,
// engine thinking and evaluation on demand.
type Driver struct {
	iox.AsyncCloser

	e       *engine.Engine
	workers int

	out chan<- string
}

// NewDriver returns a console driver over the given engine and input lines.
func NewDriver(ctx context.Context, e *engine.Engine, workers int, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		workers:     workers,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(strings.TrimSpace(line))
			if len(parts) == 0 {
				break
			}
			cmd, args := parts[0], parts[1:]

			switch strings.ToLower(cmd) {
			case "print", "p":
				d.printBoard()

			case "move", "m":
				// move <algebraic>

				if len(args) == 0 {
					d.out <- "usage: move <move>"
					break
				}
				if err := d.e.InterpretAndMakeMove(args[0]); err != nil {
					if errors.Is(err, engine.ErrIllegalMove) {
						d.out <- fmt.Sprintf("illegal move: %v", args[0])
						break
					}
					logw.Errorf(ctx, "Move failed: %v", err)
					break
				}
				d.printBoard()

			case "think", "t":
				// think [<count> [<workers>]]

				count := uint64(100)
				workers := d.workers
				if len(args) > 0 {
					n, _ := strconv.Atoi(args[0])
					count = uint64(n)
				}
				if len(args) > 1 {
					workers, _ = strconv.Atoi(args[1])
				}
				n, err := d.e.MultiThreadThink(ctx, workers, count)
				if err != nil {
					logw.Errorf(ctx, "Think failed: %v", err)
				}
				d.out <- fmt.Sprintf("explored %v positions (%v pending)", n, d.e.FrontierSize())

			case "eval", "e":
				score, move := d.e.ParallelEvalAndBestMove(d.workers)
				if m, ok := move.V(); ok {
					d.out <- fmt.Sprintf("eval %v, best %v", score, d.e.Board().MoveName(m))
				} else {
					d.out <- fmt.Sprintf("eval %v, no preferred move", score)
				}

			case "play":
				// Engine answers with its preferred move.

				_, move := d.e.ParallelEvalAndBestMove(d.workers)
				m, ok := move.V()
				if !ok {
					d.out <- "game over"
					break
				}
				d.out <- fmt.Sprintf("engine plays %v", d.e.Board().MoveName(m))
				if err := d.e.MakeMove(m); err != nil {
					logw.Errorf(ctx, "Engine move rejected: %v", err)
					break
				}
				d.printBoard()

			case "tree":
				depth := 1
				if len(args) > 0 {
					depth, _ = strconv.Atoi(args[0])
				}
				var sb strings.Builder
				d.e.FprintTree(&sb, depth)
				d.out <- strings.TrimRight(sb.String(), "\n")

			case "frontier", "f":
				var sb strings.Builder
				d.e.FprintFrontier(&sb)
				d.out <- strings.TrimRight(sb.String(), "\n")

			case "dot":
				depth := 2
				if len(args) > 0 {
					depth, _ = strconv.Atoi(args[0])
				}
				var sb strings.Builder
				if err := d.e.WriteDOT(&sb, depth); err != nil {
					logw.Errorf(ctx, "DOT export failed: %v", err)
					break
				}
				d.out <- sb.String()

			case "reset", "r":
				// reset [<fen>]

				board := rules.Board(notnil.Starting())
				if len(args) >= 6 {
					b, err := notnil.FromFEN(strings.Join(args[0:6], " "))
					if err != nil {
						d.out <- fmt.Sprintf("invalid position: %v", err)
						break
					}
					board = b
				}
				d.e.Reset(ctx, board)
				d.printBoard()

			case "quit", "q":
				return

			default:
				d.out <- fmt.Sprintf("unknown command: %v", cmd)
			}

		case <-d.Closed():
			logw.Infof(ctx, "Console driver closed")
			return
		}
	}
}

func (d *Driver) printBoard() {
	var sb strings.Builder
	b := d.e.Board()
	b.Print(&sb)
	fmt.Fprintf(&sb, "%v to move", b.Turn())
	d.out <- sb.String()
}
