package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

// SearchRequest asks for a search of FEN. Zero limits use the server
// defaults; larger ones are clamped.
type SearchRequest struct {
	FEN        string   `json:"fen"`
	Moves      []string `json:"moves,omitempty"`
	Depth      int      `json:"depth,omitempty"`
	MoveTimeMs int64    `json:"movetime_ms,omitempty"`
}

// SearchResponse reports a finished search, or one iteration of it when
// streamed.
type SearchResponse struct {
	Type     string   `json:"type,omitempty"`
	BestMove string   `json:"bestmove,omitempty"`
	Score    int      `json:"score"`
	Mate     int      `json:"mate,omitempty"`
	Display  string   `json:"display"`
	Depth    int      `json:"depth"`
	Nodes    uint64   `json:"nodes"`
	TimeMs   int64    `json:"time_ms"`
	PV       []string `json:"pv"`
}

// MovesResponse lists the legal moves of a position.
type MovesResponse struct {
	FEN       string            `json:"fen"`
	Moves     []string          `json:"moves"`
	InCheck   bool              `json:"in_check"`
	Status    string            `json:"status"`
	Draw      bool              `json:"draw"`
	DrawRules DrawRulesResponse `json:"draw_rules"`
}

// DrawRulesResponse reports the automatic draw conditions met while
// replaying the requested moves.
type DrawRulesResponse struct {
	SeventyFiveMove      bool `json:"seventy_five_move"`
	FivefoldRepetition   bool `json:"fivefold_repetition"`
	InsufficientMaterial bool `json:"insufficient_material"`
	MaterialOdds         bool `json:"material_odds"`
}

// ErrorResponse carries a request error.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (app *Application) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// movesHandler lists the legal moves after playing the optional
// space-separated "moves" list from "fen".
func (app *Application) movesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fen := query.Get("fen")
	if fen == "" {
		fen = engine.InitialFEN
	}
	start, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pos := start.Clone()
	line, err := pos.PlayLine(strings.Fields(query.Get("moves")))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	legal := pos.LegalMoves()
	moves := make([]string, 0, legal.Len())
	for _, m := range legal.Slice() {
		moves = append(moves, m.UCI())
	}
	rules := engine.AnalyzeDrawRules(start, line)
	status := pos.Status()
	writeJSON(w, http.StatusOK, MovesResponse{
		FEN:     pos.FEN(),
		Moves:   moves,
		InCheck: pos.IsInCheck(),
		Status:  status.String(),
		Draw:    status.IsDraw(),
		DrawRules: DrawRulesResponse{
			SeventyFiveMove:      rules.Has75MoveRule,
			FivefoldRepetition:   rules.Has5FoldRepetition,
			InsufficientMaterial: rules.HasInsufficientMaterial,
			MaterialOdds:         rules.HasMaterialOdds,
		},
	})
}

func (app *Application) searchHandler(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrParseFailure, err.Error()))
		return
	}
	pos, err := req.position()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	e := app.acquire()
	defer app.release(e)

	result := e.Search(r.Context(), pos, app.limits(req))
	writeJSON(w, http.StatusOK, resultResponse(result))
}

// position builds the requested position, defaulting to the start.
func (req SearchRequest) position() (*engine.Position, error) {
	fen := req.FEN
	if fen == "" {
		fen = engine.InitialFEN
	}
	pos, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.PlayMoves(req.Moves); err != nil {
		return nil, err
	}
	return pos, nil
}

func newResponse(kind string, score, depth int, nodes uint64, ms int64, pv []string) SearchResponse {
	eval := search.NewEvaluation(score, depth, chess.NullMove)
	resp := SearchResponse{
		Type:    kind,
		Score:   eval.Score,
		Mate:    eval.MateIn,
		Display: search.FormatEvaluation(eval),
		Depth:   depth,
		Nodes:   nodes,
		TimeMs:  ms,
		PV:      pv,
	}
	if len(pv) > 0 {
		resp.BestMove = pv[0]
	}
	return resp
}

func resultResponse(r search.Result) SearchResponse {
	resp := newResponse("bestmove", r.Score, r.Depth, r.Nodes, r.Elapsed.Milliseconds(), uciMoves(r.PV))
	resp.BestMove = ""
	if r.Move != chess.NullMove {
		resp.BestMove = r.Move.UCI()
	}
	return resp
}

func infoResponse(info search.Info) SearchResponse {
	return newResponse("info", info.Score, info.Depth, info.Nodes, info.Elapsed.Milliseconds(), uciMoves(info.PV))
}

func uciMoves(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.UCI()
	}
	return out
}
