// This reads one sudoku from stdin, solves it, and renders the solution
// alongside the coloring graph the zero-knowledge protocol would commit to:
// its node/edge counts and a local honest-prover self-check over a handful
// of rounds, so that a quick "does my puzzle actually work with the proof"
// check doesn't require standing up cmd/prover and cmd/verifier.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sudokuzkp/sudokuzkp/graph"
	"github.com/sudokuzkp/sudokuzkp/protocol"
	"github.com/sudokuzkp/sudokuzkp/sudoku"
)

func main() {
	puzzle, err := sudoku.ParseReader(bufio.NewReader(os.Stdin))
	if err != nil {
		fmt.Println(err)
		return
	}

	solved, err := puzzle.Solve()
	if err != nil {
		fmt.Println("NO SOLUTION FOUND")
		os.Exit(1)
		return
	}

	fmt.Print(solved.Render(true))

	g := graph.Of(&solved)
	fmt.Printf("\ngraph: %d nodes, %d edges\n", graph.NumNodes, g.NumEdges())

	prover := protocol.NewProver(solved)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	verifier := protocol.NewVerifier(protocol.LocalTransport{Prover: prover}, g.Edges(), rng)

	const passes, subrounds = 5, 20
	if err := verifier.RunRounds(passes, subrounds); err != nil {
		fmt.Printf("self-check FAILED after up to %d passes: %v\n", passes, err)
		os.Exit(1)
	}
	fmt.Printf("self-check passed %d rounds of %d sub-rounds each\n", passes, subrounds)
}
