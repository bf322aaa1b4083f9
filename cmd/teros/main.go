// teros is a best-first exploration chess engine with a console interface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/AbyssPortal/Teros/pkg/engine"
	"github.com/AbyssPortal/Teros/pkg/engine/console"
	"github.com/AbyssPortal/Teros/pkg/eval"
	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/AbyssPortal/Teros/pkg/rules/notnil"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 3, 0)

var (
	fen      = flag.String("fen", "", "Starting position in FEN format (standard start if empty)")
	workers  = flag.Int("workers", runtime.NumCPU(), "Number of exploration workers")
	minDepth = flag.Int("mindepth", 1, "Minimum exploration depth before heuristic leaves are trusted")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: teros [options]

Teros is a best-first exploration chess engine: it grows a game tree from the
current position, expanding whichever pending move looks most interesting, and
derives its evaluation and preferred move by minimax over the explored tree.
Commands: print, move <m>, think [n [w]], eval, play, tree [d], frontier,
dot [d], reset [fen], quit.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "Teros exploration engine %v (%v workers)", version, *workers)

	board := rules.Board(notnil.Starting())
	if *fen != "" {
		b, err := notnil.FromFEN(*fen)
		if err != nil {
			logw.Exitf(ctx, "Invalid position: %v", err)
		}
		board = b
	}

	e := engine.New(ctx, board, eval.DefaultStaticWeights(), eval.DefaultInterestWeights(),
		engine.Settings{MinDepth: *minDepth})

	in := console.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, *workers, in)
	go console.WriteStdoutLines(ctx, out)

	<-driver.Closed()
}
