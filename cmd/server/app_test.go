package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	app := NewApplication(DefaultConfig(), io.Discard)
	srv := httptest.NewServer(app)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return srv
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestVariantsAndSetup(t *testing.T) {
	srv := newTestServer(t)

	var variants []variantDTO
	if code := getJSON(t, srv.URL+"/api/variants", &variants); code != http.StatusOK {
		t.Fatalf("variants status %d", code)
	}
	if len(variants) != 2 || variants[0].Name != "standard" || !variants[1].MaximalCapture {
		t.Fatalf("unexpected variants %+v", variants)
	}

	var setup setupResponse
	if code := getJSON(t, srv.URL+"/api/turkish/setup", &setup); code != http.StatusOK {
		t.Fatalf("setup status %d", code)
	}
	if setup.Board != cm.MustRules(cm.Turkish).InitialSetup() || setup.ToMove != cm.Red {
		t.Fatalf("unexpected setup %+v", setup)
	}

	if code := getJSON(t, srv.URL+"/api/chess/setup", nil); code != http.StatusNotFound {
		t.Fatalf("unknown variant status %d, want 404", code)
	}
}

func TestMovesFromInitialPosition(t *testing.T) {
	srv := newTestServer(t)
	req := positionRequest{Board: cm.MustRules(cm.Standard).InitialSetup(), Player: cm.Red}
	var resp movesResponse
	if code := postJSON(t, srv.URL+"/api/standard/moves", req, &resp); code != http.StatusOK {
		t.Fatalf("moves status %d", code)
	}
	if len(resp.Moves) != 4 {
		t.Fatalf("expected 4 movable red men, got %+v", resp.Moves)
	}
	total := 0
	for _, m := range resp.Moves {
		if m.From.Row != 5 {
			t.Fatalf("only row 5 men can move, got %s", m.From)
		}
		total += len(m.To)
	}
	if total != 7 {
		t.Fatalf("expected 7 opening moves, got %d", total)
	}
}

func TestApplyMove(t *testing.T) {
	srv := newTestServer(t)
	board := cm.MustRules(cm.Standard).InitialSetup()

	illegal := positionRequest{Board: board, Player: cm.Red, From: cm.Position{Row: 5, Col: 2}, To: cm.Position{Row: 3, Col: 2}}
	if code := postJSON(t, srv.URL+"/api/standard/apply", illegal, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("illegal move status %d, want 422", code)
	}

	legal := positionRequest{Board: board, Player: cm.Red, From: cm.Position{Row: 5, Col: 2}, To: cm.Position{Row: 4, Col: 3}}
	var res cm.MoveResult
	if code := postJSON(t, srv.URL+"/api/standard/apply", legal, &res); code != http.StatusOK {
		t.Fatalf("legal move status %d", code)
	}
	if !res.TurnChanged || res.PieceKinged {
		t.Fatalf("unexpected result %+v", res)
	}
	if p, ok := res.Board.PieceOn(cm.Position{Row: 4, Col: 3}); !ok || p.Color != cm.Red {
		t.Fatalf("red man not on d4 after the move")
	}
}

func TestStatusAndBadBoard(t *testing.T) {
	srv := newTestServer(t)
	board, _ := cm.MustParseFEN("8/8/8/8/8/8/8/r7 b")

	var status cm.GameStatus
	req := positionRequest{Board: board, Player: cm.Black}
	if code := postJSON(t, srv.URL+"/api/standard/status", req, &status); code != http.StatusOK {
		t.Fatalf("status code %d", code)
	}
	if status.Outcome != cm.Win || status.Winner != cm.Red || status.Reason != cm.NoPiecesLeft {
		t.Fatalf("unexpected status %s", status)
	}

	overlapping := positionRequest{Board: cm.Board{RedMen: 1 << 40, BlackMen: 1 << 40}, Player: cm.Red}
	if code := postJSON(t, srv.URL+"/api/standard/status", overlapping, nil); code != http.StatusBadRequest {
		t.Fatalf("overlapping board status %d, want 400", code)
	}
}

func TestRecommend(t *testing.T) {
	srv := newTestServer(t)
	req := engine.Request{
		Variant:         cm.Standard,
		Board:           cm.MustRules(cm.Standard).InitialSetup(),
		Player:          cm.Red,
		Depth:           2,
		QuiescenceDepth: 2,
		Seed:            5,
	}
	var resp engine.Response
	if code := postJSON(t, srv.URL+"/api/recommend", req, &resp); code != http.StatusOK {
		t.Fatalf("recommend status %d", code)
	}
	if !resp.Found || resp.Move.From.Row != 5 || resp.Move.To.Row != 4 {
		t.Fatalf("unexpected recommendation %+v", resp)
	}
}

func TestWebsocketRecommend(t *testing.T) {
	srv := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var bad errorResponse
	if err := conn.ReadJSON(&bad); err != nil || bad.Error == "" {
		t.Fatalf("expected an error frame, got %+v (%v)", bad, err)
	}

	req := engine.Request{
		Variant:         cm.Turkish,
		Board:           cm.MustRules(cm.Turkish).InitialSetup(),
		Player:          cm.Red,
		Depth:           1,
		QuiescenceDepth: 1,
		Seed:            9,
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp engine.Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !resp.Found {
		t.Fatalf("expected a move, got %+v", resp)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil || cfg.Port != DefaultConfig().Port {
		t.Fatalf("empty path should give defaults, got %+v (%v)", cfg, err)
	}
	if _, err := LoadConfig(t.TempDir() + "/missing.json"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestPendingSquareMustHoldOwnPiece(t *testing.T) {
	srv := newTestServer(t)
	board, _ := cm.MustParseFEN("8/8/3b4/4r3/8/8/8/r7 b")
	d2, f4 := cm.Position{Row: 2, Col: 3}, cm.Position{Row: 4, Col: 5}

	foreign := positionRequest{Board: board, Player: cm.Red, Pending: &d2, From: d2, To: f4}
	if code := postJSON(t, srv.URL+"/api/standard/apply", foreign, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("apply with an opponent's pending piece: status %d, want 422", code)
	}
	if code := postJSON(t, srv.URL+"/api/standard/moves", foreign, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("moves with an opponent's pending piece: status %d, want 422", code)
	}

	empty := cm.Position{Row: 4, Col: 1}
	vacant := positionRequest{Board: board, Player: cm.Black, Pending: &empty, From: empty, To: f4}
	if code := postJSON(t, srv.URL+"/api/standard/apply", vacant, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("apply with an empty pending square: status %d, want 422", code)
	}

	own := positionRequest{Board: board, Player: cm.Black, Pending: &d2}
	var resp movesResponse
	if code := postJSON(t, srv.URL+"/api/standard/moves", own, &resp); code != http.StatusOK {
		t.Fatalf("moves with own pending piece: status %d", code)
	}
	if len(resp.Moves) != 1 || len(resp.Moves[0].To) != 1 || resp.Moves[0].To[0] != f4 {
		t.Fatalf("expected the single jump d2-f4, got %+v", resp.Moves)
	}

	own.From, own.To = d2, f4
	var res cm.MoveResult
	if code := postJSON(t, srv.URL+"/api/standard/apply", own, &res); code != http.StatusOK {
		t.Fatalf("apply with own pending piece: status %d", code)
	}
	if res.Captured != (cm.Position{Row: 3, Col: 4}) {
		t.Fatalf("expected e3 captured, got %+v", res)
	}
}

func TestWebsocketFrameAnswers(t *testing.T) {
	app := NewApplication(DefaultConfig(), io.Discard)
	defer app.Close()

	if reply, ok := app.answer([]byte("{")).(errorResponse); !ok || !strings.Contains(reply.Error, "bad request") {
		t.Fatalf("malformed frame should get an error reply, got %+v", reply)
	}

	bad, _ := json.Marshal(engine.Request{Variant: cm.Standard, Board: cm.Board{RedMen: 1}, Player: cm.Red})
	if reply, ok := app.answer(bad).(errorResponse); !ok || reply.Error == "" {
		t.Fatalf("invalid board should get an error reply, got %+v", reply)
	}

	good, _ := json.Marshal(engine.Request{
		Variant: cm.Standard,
		Board:   cm.MustRules(cm.Standard).InitialSetup(),
		Player:  cm.Red,
		Depth:   1,
		Seed:    3,
	})
	if resp, ok := app.answer(good).(engine.Response); !ok || !resp.Found {
		t.Fatalf("valid request should get a response, got %+v", resp)
	}
}

func TestWebsocketClientRemovedOnDisconnect(t *testing.T) {
	app := NewApplication(DefaultConfig(), io.Discard)
	srv := httptest.NewServer(app)
	defer func() {
		srv.Close()
		app.Close()
	}()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		app.clientsLock.RLock()
		n := len(app.clients)
		app.clientsLock.RUnlock()
		if n == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("client still registered after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
