// cmd/verifier runs a verifier daemon against a prover service: it reads
// the puzzle (givens only, no solution) to compute the public edge set,
// then loops forever issuing passes of 10 sub-rounds each, sleeping
// between passes, per spec.md §4.3 and §5.
package main

import (
	"bufio"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/sudokuzkp/sudokuzkp/graph"
	"github.com/sudokuzkp/sudokuzkp/protocol"
	"github.com/sudokuzkp/sudokuzkp/sudoku"
)

func main() {
	proverURL := flag.String("prover", "http://localhost:8080", "base URL of the prover service")
	puzzlePath := flag.String("puzzle", "", "path to the puzzle (givens only); reads stdin if empty")
	passes := flag.Int("passes", 10, "number of outer passes per sleep cycle")
	subrounds := flag.Int("subrounds", 10, "sub-rounds challenged per pass")
	interval := flag.Duration("interval", 5*time.Second, "sleep between pass groups")
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
	if *puzzlePath != "" {
		f, err := os.Open(*puzzlePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *puzzlePath).Msg("opening puzzle file")
		}
		defer f.Close()
		in = f
	}

	puzzle, err := sudoku.ParseReader(bufio.NewReader(in))
	if err != nil {
		log.Fatal().Err(err).Msg("parsing puzzle")
	}

	edges := graph.Of(&puzzle).Edges()
	client := protocol.NewClient(*proverURL, nil)
	v := protocol.NewVerifier(client, edges, rand.New(rand.NewSource(time.Now().UnixNano())))

	for {
		if err := v.RunRounds(*passes, *subrounds); err != nil {
			log.Error().Err(err).Int("passes", *passes).Int("subrounds", *subrounds).Msg("verification failed")
		} else {
			log.Info().Int("passes", *passes).Int("subrounds", *subrounds).Msg("verification succeeded")
		}
		time.Sleep(*interval)
	}
}
