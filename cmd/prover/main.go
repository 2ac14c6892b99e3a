// cmd/prover runs the long-running HTTP service that holds a candidate
// Sudoku solution and answers GET commitments / POST challenges requests
// from a verifier, per spec.md §4.3 and §6.
package main

import (
	"bufio"
	"flag"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/sudokuzkp/sudokuzkp/protocol"
	"github.com/sudokuzkp/sudokuzkp/sudoku"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	solutionPath := flag.String("solution", "", "path to a completed Sudoku grid (text format); reads stdin if empty")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	in := os.Stdin
	if *solutionPath != "" {
		f, err := os.Open(*solutionPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *solutionPath).Msg("opening solution file")
		}
		defer f.Close()
		in = f
	}

	puzzle, err := sudoku.ParseReader(bufio.NewReader(in))
	if err != nil {
		log.Fatal().Err(err).Msg("parsing candidate solution")
	}

	prover := protocol.NewProver(puzzle)
	server := protocol.NewServer(prover, log)

	log.Info().Str("addr", *addr).Msg("prover listening")
	if err := http.ListenAndServe(*addr, server.Handler()); err != nil {
		log.Fatal().Err(err).Msg("prover exited")
	}
}
