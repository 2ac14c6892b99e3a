// cmd/verify is a single-process, no-network round-trip self-check: prover
// and verifier run in the same binary against the same puzzle, exercising
// the full commit/challenge/open/verify cycle without an HTTP hop. This is
// the Go-native analogue of the commented-out self-check loop in
// original_source/crates/prover/src/main.rs
// (`for _ in 0..1_000_000 { ... }`) and original_source/src/main.rs's
// single-binary main, useful for local development and for exercising the
// S1-S6 scenarios without standing up two processes.
package main

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	mathrand "math/rand"
	"os"

	"github.com/sudokuzkp/sudokuzkp/graph"
	"github.com/sudokuzkp/sudokuzkp/protocol"
	"github.com/sudokuzkp/sudokuzkp/sudoku"
)

// newRand seeds a math/rand source from crypto/rand so repeated runs of
// this tool draw different edge challenges; the edge-selection draw itself
// has no soundness requirement (unlike the mapper/key draws inside
// protocol, which always use crypto/rand directly), so a seeded PRNG is
// adequate here.
func newRand() *mathrand.Rand {
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return mathrand.New(mathrand.NewSource(1))
	}
	return mathrand.New(mathrand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))
}

func main() {
	puzzlePath := flag.String("puzzle", "", "path to the puzzle (givens only); reads stdin if empty")
	solutionPath := flag.String("solution", "", "path to a candidate solution; solved from the puzzle if empty")
	passes := flag.Int("passes", 10, "outer passes")
	subrounds := flag.Int("subrounds", 10, "sub-rounds per pass")
	flag.Parse()

	puzzleIn := os.Stdin
	if *puzzlePath != "" {
		f, err := os.Open(*puzzlePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "opening puzzle:", err)
			os.Exit(1)
		}
		defer f.Close()
		puzzleIn = f
	}
	puzzle, err := sudoku.ParseReader(bufio.NewReader(puzzleIn))
	if err != nil {
		fmt.Fprintln(os.Stderr, "parsing puzzle:", err)
		os.Exit(1)
	}

	var candidate sudoku.Sudoku
	if *solutionPath != "" {
		f, err := os.Open(*solutionPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "opening solution:", err)
			os.Exit(1)
		}
		defer f.Close()
		candidate, err = sudoku.ParseReader(bufio.NewReader(f))
		if err != nil {
			fmt.Fprintln(os.Stderr, "parsing solution:", err)
			os.Exit(1)
		}
	} else {
		candidate, err = puzzle.Solve()
		if err != nil {
			fmt.Fprintln(os.Stderr, "no solution found for puzzle:", err)
			os.Exit(1)
		}
	}

	fmt.Println(candidate.Render(true))

	prover := protocol.NewProver(candidate)
	edges := graph.Of(&puzzle).Edges()
	v := protocol.NewVerifier(protocol.LocalTransport{Prover: prover}, edges, newRand())

	if err := v.RunRounds(*passes, *subrounds); err != nil {
		fmt.Fprintln(os.Stderr, "FAIL:", err)
		os.Exit(1)
	}
	fmt.Printf("OK: %d passes x %d sub-rounds\n", *passes, *subrounds)
}
