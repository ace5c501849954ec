package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/maps"
)

var errBadRequest = errors.New("bad request")

type variantDTO struct {
	Name           string `json:"name"`
	MaximalCapture bool   `json:"maximal_capture"`
	StartFEN       string `json:"start_fen"`
}

type setupResponse struct {
	Board  cm.Board `json:"board"`
	ToMove cm.Color `json:"to_move"`
	FEN    string   `json:"fen"`
}

// positionRequest is the body of the moves, apply and status endpoints. Pending marks a
// capture turn in progress.
type positionRequest struct {
	Board   cm.Board     `json:"board"`
	Player  cm.Color     `json:"player"`
	Pending *cm.Position `json:"pending,omitempty"`
	From    cm.Position  `json:"from"`
	To      cm.Position  `json:"to"`
	History cm.History   `json:"history,omitempty"`
}

type pieceMovesDTO struct {
	From cm.Position   `json:"from"`
	To   []cm.Position `json:"to"`
}

type movesResponse struct {
	Moves     []pieceMovesDTO `json:"moves"`
	Sequences []string        `json:"sequences,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type Application struct {
	config      Config
	router      *mux.Router
	handler     http.Handler
	worker      *engine.Worker
	upgrader    websocket.Upgrader
	clients     map[*Client]struct{}
	clientsLock sync.RWMutex
}

func NewApplication(cfg Config, logOut io.Writer) *Application {
	app := &Application{
		config:  cfg,
		router:  mux.NewRouter(),
		worker:  engine.NewWorker(),
		clients: make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.WSReadBuffer,
			WriteBufferSize: cfg.WSWriteBuffer,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	logger := func(next http.Handler) http.Handler { return handlers.LoggingHandler(logOut, next) }
	app.router.NotFoundHandler = logger(http.HandlerFunc(notFoundHandler))
	app.router.Use(logger)

	api := app.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/variants", app.variantsHandler).Methods(http.MethodGet)
	api.HandleFunc("/recommend", app.recommendHandler).Methods(http.MethodPost)
	api.HandleFunc("/{variant}/setup", app.setupHandler).Methods(http.MethodGet)
	api.HandleFunc("/{variant}/moves", app.movesHandler).Methods(http.MethodPost)
	api.HandleFunc("/{variant}/apply", app.applyHandler).Methods(http.MethodPost)
	api.HandleFunc("/{variant}/status", app.statusHandler).Methods(http.MethodPost)
	app.router.HandleFunc("/ws", app.wsHandler)

	app.handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.CORS(
			handlers.AllowedOrigins(cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(app.router))
	return app
}

// Handler is the router wrapped in recovery and CORS middleware.
func (app *Application) Handler() http.Handler { return app.handler }

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.handler.ServeHTTP(w, r)
}

// Close drops every websocket client and stops the search worker.
func (app *Application) Close() {
	app.clientsLock.Lock()
	for c := range app.clients {
		c.conn.Close()
	}
	maps.Clear(app.clients)
	app.clientsLock.Unlock()
	app.worker.Close()
}

func (app *Application) variantsHandler(w http.ResponseWriter, r *http.Request) {
	out := make([]variantDTO, 0, len(cm.Variants))
	for _, v := range cm.Variants {
		rules := cm.MustRules(v)
		out = append(out, variantDTO{
			Name:           v.String(),
			MaximalCapture: rules.IsMaximalCaptureMandatory(),
			StartFEN:       cm.StartFEN(rules),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (app *Application) setupHandler(w http.ResponseWriter, r *http.Request) {
	rules, err := rulesFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	b := rules.InitialSetup()
	writeJSON(w, http.StatusOK, setupResponse{Board: b, ToMove: cm.Red, FEN: cm.ToFEN(b, cm.Red)})
}

func (app *Application) movesHandler(w http.ResponseWriter, r *http.Request) {
	rules, req, err := decodePosition(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var legal map[cm.Position][]cm.Position
	if req.Pending != nil {
		legal = map[cm.Position][]cm.Position{*req.Pending: cm.Continuations(rules, req.Board, req.Player, *req.Pending)}
	} else {
		legal = rules.AllMovesForPlayer(req.Board, req.Player, false)
	}

	froms := maps.Keys(legal)
	cm.SortPositions(froms)
	resp := movesResponse{Moves: make([]pieceMovesDTO, 0, len(froms))}
	for _, from := range froms {
		if len(legal[from]) == 0 {
			continue
		}
		resp.Moves = append(resp.Moves, pieceMovesDTO{From: from, To: legal[from]})
	}
	if req.Pending == nil {
		for _, seq := range cm.TurnSequences(rules, req.Board, req.Player, true) {
			resp.Sequences = append(resp.Sequences, cm.PathString(seq.Path))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (app *Application) applyHandler(w http.ResponseWriter, r *http.Request) {
	rules, req, err := decodePosition(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var allowed []cm.Position
	if req.Pending != nil {
		if *req.Pending == req.From {
			allowed = cm.Continuations(rules, req.Board, req.Player, req.From)
		}
	} else if req.From.Valid() {
		allowed = rules.AllMovesForPlayer(req.Board, req.Player, false)[req.From]
	}
	if !containsPosition(allowed, req.To) {
		writeError(w, fmt.Errorf("%w: %s-%s for %s", cm.ErrIllegalMove, req.From, req.To, req.Player))
		return
	}
	writeJSON(w, http.StatusOK, rules.ApplyMove(req.Board, req.From, req.To, req.Player))
}

func (app *Application) statusHandler(w http.ResponseWriter, r *http.Request) {
	rules, req, err := decodePosition(r)
	if err != nil {
		writeError(w, err)
		return
	}
	history := req.History
	if history == nil {
		history = cm.History{}
	}
	jumps := rules.AllMovesForPlayer(req.Board, req.Player, true)
	var regular map[cm.Position][]cm.Position
	if len(jumps) == 0 {
		regular = rules.AllMovesForPlayer(req.Board, req.Player, false)
	}
	writeJSON(w, http.StatusOK, rules.CheckWinCondition(req.Board, req.Player, jumps, regular, history))
}

func (app *Application) recommendHandler(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	resp, err := app.recommend(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (app *Application) recommend(ctx context.Context, req engine.Request) (engine.Response, error) {
	req.Depth = min(req.Depth, app.config.MaxDepth)
	req.QuiescenceDepth = min(req.QuiescenceDepth, app.config.MaxQDepth)
	ctx, cancel := context.WithTimeout(ctx, app.config.requestTimeout())
	defer cancel()
	return app.worker.Submit(ctx, req)
}

// wsHandler answers every text frame holding a search request with its response.
func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{conn: conn}
	app.clientsLock.Lock()
	app.clients[client] = struct{}{}
	app.clientsLock.Unlock()

	go func() {
		defer func() {
			app.clientsLock.Lock()
			delete(app.clients, client)
			app.clientsLock.Unlock()
			conn.Close()
		}()
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := client.writeJSON(app.answer(payload)); err != nil {
				return
			}
		}
	}()
}

// answer turns one websocket frame into its reply: a Response or an errorResponse.
func (app *Application) answer(payload []byte) any {
	var req engine.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return errorResponse{Error: fmt.Sprintf("%v: %v", errBadRequest, err)}
	}
	resp, err := app.recommend(context.Background(), req)
	if err != nil {
		return errorResponse{Error: err.Error()}
	}
	return resp
}

func rulesFromRequest(r *http.Request) (cm.Rules, error) {
	v, err := cm.ParseVariant(mux.Vars(r)["variant"])
	if err != nil {
		return nil, err
	}
	return cm.NewRules(v)
}

func decodePosition(r *http.Request) (cm.Rules, positionRequest, error) {
	var req positionRequest
	rules, err := rulesFromRequest(r)
	if err != nil {
		return nil, req, err
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, req, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if !req.Board.Valid(rules.Variant()) {
		return nil, req, engine.ErrInvalidBoard
	}
	if req.Pending != nil {
		if !req.Pending.Valid() {
			return nil, req, fmt.Errorf("%w: pending square off the board", errBadRequest)
		}
		if p, ok := req.Board.PieceOn(*req.Pending); !ok || p.Color != req.Player {
			return nil, req, fmt.Errorf("%w: no %s piece on pending square %s", cm.ErrIllegalMove, req.Player, *req.Pending)
		}
	}
	return rules, req, nil
}

func containsPosition(list []cm.Position, p cm.Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, cm.ErrUnknownVariant):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, engine.ErrInvalidBoard):
		status = http.StatusBadRequest
	case errors.Is(err, cm.ErrIllegalMove):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}
