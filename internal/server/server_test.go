package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/engine"
	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

const mateInOneFEN = "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.NewConfigBuilder().
		WithHashEntries(1<<12).
		WithDepth(3).
		WithServerLimits(4, 5*time.Second).
		WithLog(io.Discard).
		Build()
	srv := httptest.NewServer(NewApplication(cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, rawURL string, v any) int {
	t.Helper()
	resp, err := http.Get(rawURL)
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()
	testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func postSearch(t *testing.T, base string, req SearchRequest) (int, SearchResponse, ErrorResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	testutil.AssertNoError(t, err)
	resp, err := http.Post(base+"/api/search", "application/json", bytes.NewReader(body))
	testutil.AssertNoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	var sr SearchResponse
	var er ErrorResponse
	_ = json.Unmarshal(raw, &sr)
	_ = json.Unmarshal(raw, &er)
	return resp.StatusCode, sr, er
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var got map[string]string
	status := getJSON(t, srv.URL+"/api/health", &got)
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, got, map[string]string{"status": "ok"})
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)

	var got ErrorResponse
	status := getJSON(t, srv.URL+"/nowhere", &got)
	testutil.AssertEqual(t, status, http.StatusNotFound)
	testutil.AssertEqual(t, got.Error, "not found")
}

func TestMoves(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		wantStatus int
		wantMoves  int
		wantCheck  bool
		wantState  string
		wantDraw   bool
	}{
		{name: "default start", fen: "", wantStatus: http.StatusOK, wantMoves: 20, wantState: "ongoing"},
		{name: "kiwipete", fen: testutil.KiwipeteFEN, wantStatus: http.StatusOK, wantMoves: 48, wantState: "ongoing"},
		{name: "checkmated", fen: "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1", wantStatus: http.StatusOK,
			wantMoves: 0, wantCheck: true, wantState: "checkmate"},
		{name: "stalemate", fen: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", wantStatus: http.StatusOK,
			wantState: "stalemate", wantDraw: true},
		{name: "bad fen", fen: "8/8 w - - 0 1", wantStatus: http.StatusBadRequest},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := srv.URL + "/api/moves"
			if tt.fen != "" {
				u += "?fen=" + url.QueryEscape(tt.fen)
			}
			var got MovesResponse
			status := getJSON(t, u, &got)
			testutil.AssertEqual(t, status, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}
			testutil.AssertEqual(t, len(got.Moves), tt.wantMoves)
			testutil.AssertEqual(t, got.InCheck, tt.wantCheck)
			testutil.AssertEqual(t, got.Status, tt.wantState)
			testutil.AssertEqual(t, got.Draw, tt.wantDraw)
		})
	}
}

func TestMoves_DrawRules(t *testing.T) {
	shuffle := strings.Repeat("g1f3 g8f6 f3g1 f6g8 ", 4)
	tests := []struct {
		name       string
		fen        string
		moves      string
		wantStatus int
		want       DrawRulesResponse
	}{
		{name: "fivefold", moves: shuffle, wantStatus: http.StatusOK,
			want: DrawRulesResponse{FivefoldRepetition: true}},
		{name: "threefold only", moves: strings.Repeat("g1f3 g8f6 f3g1 f6g8 ", 2), wantStatus: http.StatusOK},
		{name: "seventy-five moves", fen: "4k3/8/8/8/8/8/8/4K2R w - - 149 80", moves: "e1d1",
			wantStatus: http.StatusOK, want: DrawRulesResponse{SeventyFiveMove: true, MaterialOdds: true}},
		{name: "bare bishop", fen: "4k3/8/8/8/8/8/8/4K2B w - - 0 1", wantStatus: http.StatusOK,
			want: DrawRulesResponse{InsufficientMaterial: true, MaterialOdds: true}},
		{name: "illegal move", moves: "e2e4 e2e4", wantStatus: http.StatusBadRequest},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := url.Values{}
			if tt.fen != "" {
				q.Set("fen", tt.fen)
			}
			q.Set("moves", tt.moves)
			var got MovesResponse
			status := getJSON(t, srv.URL+"/api/moves?"+q.Encode(), &got)
			testutil.AssertEqual(t, status, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}
			testutil.AssertEqual(t, got.DrawRules, tt.want)
		})
	}
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t)

	status, got, _ := postSearch(t, srv.URL, SearchRequest{FEN: mateInOneFEN, Depth: 3})
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertEqual(t, got.BestMove, "a1a8")
	testutil.AssertEqual(t, got.Mate, 1)
	testutil.AssertEqual(t, got.Display, "+M1")
	testutil.AssertEqual(t, got.PV[0], "a1a8")
}

func TestSearch_WithMoves(t *testing.T) {
	srv := newTestServer(t)

	status, got, _ := postSearch(t, srv.URL, SearchRequest{Moves: []string{"e2e4", "e7e5"}, Depth: 2})
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertTrue(t, got.BestMove != "")
	testutil.AssertEqual(t, got.Depth, 2)
}

func TestSearch_ClampsDepth(t *testing.T) {
	srv := newTestServer(t)

	status, got, _ := postSearch(t, srv.URL, SearchRequest{Depth: 40})
	testutil.AssertEqual(t, status, http.StatusOK)
	testutil.AssertTrue(t, got.Depth <= 4, "depth %d above the server cap", got.Depth)
}

func TestSearch_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "not json", body: "{", wantErr: "parse"},
		{name: "bad fen", body: `{"fen": "8/8/8/8 w - - 0 1"}`, wantErr: "FEN"},
		{name: "illegal move", body: `{"moves": ["e2e5"]}`, wantErr: "illegal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/search", "application/json", strings.NewReader(tt.body))
			testutil.AssertNoError(t, err)
			defer resp.Body.Close()

			var got ErrorResponse
			testutil.AssertNoError(t, json.NewDecoder(resp.Body).Decode(&got))
			testutil.AssertEqual(t, resp.StatusCode, http.StatusBadRequest)
			testutil.AssertContains(t, strings.ToLower(got.Error), strings.ToLower(tt.wantErr))
		})
	}
}

func TestSearch_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/search")
	testutil.AssertNoError(t, err)
	resp.Body.Close()
	testutil.AssertEqual(t, resp.StatusCode, http.StatusMethodNotAllowed)
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	return conn
}

// readUntilBestMove collects streamed messages up to the final one.
func readUntilBestMove(t *testing.T, conn *websocket.Conn) []SearchResponse {
	t.Helper()
	var msgs []SearchResponse
	for {
		var msg SearchResponse
		testutil.AssertNoError(t, conn.ReadJSON(&msg))
		msgs = append(msgs, msg)
		if msg.Type == "bestmove" {
			return msgs
		}
	}
}

func TestWebSocket_StreamsIterations(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWS(t, srv)

	testutil.AssertNoError(t, conn.WriteJSON(SearchRequest{FEN: engine.InitialFEN, Depth: 3}))
	msgs := readUntilBestMove(t, conn)

	testutil.AssertEqual(t, len(msgs), 4)
	for i, msg := range msgs[:3] {
		testutil.AssertEqual(t, msg.Type, "info")
		testutil.AssertEqual(t, msg.Depth, i+1)
	}
	final := msgs[3]
	testutil.AssertTrue(t, final.BestMove != "")
	testutil.AssertEqual(t, final.Depth, 3)

	// The connection serves further requests.
	testutil.AssertNoError(t, conn.WriteJSON(SearchRequest{FEN: mateInOneFEN, Depth: 2}))
	msgs = readUntilBestMove(t, conn)
	testutil.AssertEqual(t, msgs[len(msgs)-1].BestMove, "a1a8")
}

func TestWebSocket_Errors(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWS(t, srv)

	testutil.AssertNoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var got ErrorResponse
	testutil.AssertNoError(t, conn.ReadJSON(&got))
	testutil.AssertContains(t, got.Error, "parse")

	testutil.AssertNoError(t, conn.WriteJSON(SearchRequest{FEN: "bad"}))
	got = ErrorResponse{}
	testutil.AssertNoError(t, conn.ReadJSON(&got))
	testutil.AssertContains(t, got.Error, "FEN")
}

func TestWebSocket_Stop(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWS(t, srv)

	testutil.AssertNoError(t, conn.WriteJSON(SearchRequest{FEN: testutil.KiwipeteFEN, MoveTimeMs: 5000, Depth: 4}))
	testutil.AssertNoError(t, conn.WriteMessage(websocket.TextMessage, []byte("stop")))

	start := time.Now()
	msgs := readUntilBestMove(t, conn)
	testutil.AssertTrue(t, msgs[len(msgs)-1].BestMove != "")
	testutil.AssertTrue(t, time.Since(start) < 5*time.Second)
}
