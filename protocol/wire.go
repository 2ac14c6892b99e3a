package protocol

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sessionHeader is the header the transport uses to bind session identity
// across the two requests of a round (§9: "transport binds session
// identity"). The server sets it on the commitments response; the client
// echoes it back on the challenge request.
const sessionHeader = "X-Session-Id"

// Server exposes a Prover over the two net/http endpoints §6 specifies,
// the way _examples/thriqon-sudoku/gae-app.go wires http.HandleFunc
// directly rather than reaching for a router framework — there are exactly
// two endpoints here too.
type Server struct {
	prover *Prover
	log    zerolog.Logger
}

// NewServer returns a Server backed by prover, logging with log.
func NewServer(prover *Prover, log zerolog.Logger) *Server {
	return &Server{prover: prover, log: log}
}

// Handler returns the http.Handler implementing both endpoints, for
// wiring into an http.Server or httptest.Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/commitments", s.handleCommitments)
	mux.HandleFunc("/challenges", s.handleChallenges)
	return mux
}

func (s *Server) handleCommitments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.log.Warn().Str("count", raw).Msg("malformed count query parameter")
			http.Error(w, "bad count", http.StatusBadRequest)
			return
		}
		count = n
	}

	id, batch, err := s.prover.Commit(count)
	if err != nil {
		s.log.Error().Err(err).Msg("commit failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set(sessionHeader, id.String())
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(EncodeCommitmentBatch(batch))
	s.log.Debug().Str("session", id.String()).Int("n", len(batch)).Msg("served commitments")
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := uuid.Parse(r.Header.Get(sessionHeader))
	if err != nil {
		s.log.Warn().Err(err).Msg("challenge request missing valid session id")
		http.Error(w, "missing or invalid "+sessionHeader, http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read error", http.StatusBadRequest)
		return
	}
	edges, err := DecodeChallengeBatch(body)
	if err != nil {
		s.log.Warn().Err(err).Msg("malformed challenge payload")
		http.Error(w, "malformed challenge payload", http.StatusBadRequest)
		return
	}

	openings, err := s.prover.Open(id, edges)
	if err != nil {
		s.log.Warn().Err(err).Str("session", id.String()).Msg("challenge rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(EncodeOpeningBatch(openings))
	s.log.Debug().Str("session", id.String()).Int("n", len(openings)).Msg("served openings")
}

// Client is an HTTP Transport implementation for Verifier, the counterpart
// to Server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client issuing requests against baseURL (e.g.
// "http://localhost:8080") using httpClient, or http.DefaultClient if nil.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// RequestCommitments implements Transport via GET commitments.
func (c *Client) RequestCommitments(count int) (uuid.UUID, CommitmentBatch, error) {
	url := fmt.Sprintf("%s/commitments", c.baseURL)
	if count > 0 {
		url += fmt.Sprintf("?count=%d", count)
	}

	resp, err := c.http.Get(url)
	if err != nil {
		return uuid.Nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return uuid.Nil, nil, fmt.Errorf("protocol: commitments request failed: %s", resp.Status)
	}

	id, err := uuid.Parse(resp.Header.Get(sessionHeader))
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("protocol: response missing valid %s: %w", sessionHeader, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return uuid.Nil, nil, err
	}
	batch, err := DecodeCommitmentBatch(body)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, batch, nil
}

// SendChallenges implements Transport via POST challenges.
func (c *Client) SendChallenges(id uuid.UUID, edges ChallengeBatch) (OpeningBatch, error) {
	url := fmt.Sprintf("%s/challenges", c.baseURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(EncodeChallengeBatch(edges)))
	if err != nil {
		return nil, err
	}
	req.Header.Set(sessionHeader, id.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("protocol: challenges request failed: %s: %s", resp.Status, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return DecodeOpeningBatch(body)
}
