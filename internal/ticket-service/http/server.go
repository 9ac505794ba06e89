package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lototrack/ticket-engine-poc/internal/engine/game"
	"github.com/lototrack/ticket-engine-poc/internal/engine/ledger"
	"github.com/lototrack/ticket-engine-poc/internal/engine/quickpick"
	"github.com/lototrack/ticket-engine-poc/internal/engine/ticket"
	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
	"github.com/lototrack/ticket-engine-poc/internal/ticket-service/dto"
	"github.com/lototrack/ticket-engine-poc/internal/ticket-service/repo"
	"github.com/lototrack/ticket-engine-poc/internal/ticket-service/ws"
	"github.com/lototrack/ticket-engine-poc/pkg/contracts/events"
)

const dateLayout = "2006-01-02"

// Metrics agrupa os contadores do serviço; registrados no main.
type Metrics struct {
	TicketsFinalized   prometheus.Counter
	PlaysPriced        prometheus.Counter
	ValidationFailures *prometheus.CounterVec // label "kind"
}

// Publisher publica o evento de bilhete confirmado.
type Publisher interface {
	PublishTicketFinalized(context.Context, events.TicketFinalized) error
}

// TicketStore persiste e recupera bilhetes confirmados.
type TicketStore interface {
	CreateFinalized(ctx context.Context, t *repo.Ticket, plays []repo.TicketPlay) (string, error)
	GetByNumber(ctx context.Context, number int64) (*repo.Ticket, []repo.TicketPlay, error)
}

// Server expõe o motor de bilhetes por HTTP. Os handlers são stateless:
// cada requisição reconstrói o bilhete a partir do payload, então o estado
// do motor nunca é compartilhado entre requisições.
type Server struct {
	log     *zap.Logger
	catalog *track.Catalog
	asm     *ticket.Assembler
	repo    TicketStore
	publ    Publisher
	hub     *ws.Hub
	metrics *Metrics

	now    func() time.Time
	newRng func() *rand.Rand
}

func NewServer(log *zap.Logger, catalog *track.Catalog, asm *ticket.Assembler, store TicketStore, p Publisher, hub *ws.Hub, m *Metrics) *Server {
	return &Server{
		log:     log,
		catalog: catalog,
		asm:     asm,
		repo:    store,
		publ:    p,
		hub:     hub,
		metrics: m,
		now:     time.Now,
		newRng: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/tracks", s.listTracks)
	r.Post("/v1/plays/classify", s.classifyPlay)
	r.Post("/v1/plays/price", s.pricePlay)
	r.Post("/v1/quickpick", s.quickPick)
	r.Post("/v1/permute", s.permute)
	r.Post("/v1/tickets/validate", s.validateTicket)
	r.Post("/v1/tickets", s.createTicket)
	r.Get("/v1/tickets/{number}", s.getTicket)
	if s.hub != nil {
		r.Get("/v1/ws", s.hub.HandleWS)
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listTracks devolve o quadro de sorteios; ?dates=2026-03-10,2026-03-11
// informa as datas selecionadas para o estado de corte.
func (s *Server) listTracks(w http.ResponseWriter, r *http.Request) {
	dates, err := parseDatesParam(r.URL.Query().Get("dates"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: "BAD_DATE"})
		return
	}

	now := s.now()
	out := make([]dto.TrackStatusResponse, 0)
	for _, t := range s.catalog.Tracks() {
		out = append(out, dto.TrackStatusResponse{
			Name:           t.Name,
			Region:         string(t.Region),
			Close:          t.Close,
			RequiredDigits: t.RequiredDigits,
			State:          string(track.CutoffState(t, dates, now)),
		})
	}
	writeJSON(w, http.StatusOK, dto.TracksResponse{Tracks: out})
}

func (s *Server) classifyPlay(w http.ResponseWriter, r *http.Request) {
	var req dto.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json", Code: "BAD_JSON"})
		return
	}
	mode := game.Classify(req.BetNumber, s.catalog.ActiveRegions(req.Tracks))
	writeJSON(w, http.StatusOK, dto.ClassifyResponse{BetNumber: req.BetNumber, GameMode: string(mode)})
}

func (s *Server) pricePlay(w http.ResponseWriter, r *http.Request) {
	var req dto.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json", Code: "BAD_JSON"})
		return
	}
	total := game.Price(req.BetNumber, game.Mode(req.GameMode), req.Straight, req.Box, req.Combo)
	if s.metrics != nil {
		s.metrics.PlaysPriced.Inc()
	}
	writeJSON(w, http.StatusOK, dto.PriceResponse{
		BetNumber: req.BetNumber,
		GameMode:  req.GameMode,
		Total:     total.StringFixed(2),
	})
}

func (s *Server) quickPick(w http.ResponseWriter, r *http.Request) {
	var req dto.QuickPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json", Code: "BAD_JSON"})
		return
	}

	g := quickpick.New(s.newRng())
	err := g.QuickPick(game.Mode(req.GameMode), req.Count, quickpick.Locks{
		Straight:     req.Straight,
		Box:          req.Box,
		Combo:        req.Combo,
		LockStraight: req.LockStraight,
		LockBox:      req.LockBox,
		LockCombo:    req.LockCombo,
	}, s.catalog.ActiveRegions(req.Tracks))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: "BAD_QUICKPICK"})
		return
	}
	writeJSON(w, http.StatusOK, dto.QuickPickResponse{Plays: toPlayResponses(g.Batch())})
}

func (s *Server) permute(w http.ResponseWriter, r *http.Request) {
	var req dto.PermuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json", Code: "BAD_JSON"})
		return
	}

	active := s.catalog.ActiveRegions(req.Tracks)
	g := quickpick.New(s.newRng())
	g.Load(toFields(req.Plays), active)
	g.Permute(active)
	writeJSON(w, http.StatusOK, dto.PermuteResponse{Plays: toPlayResponses(g.Batch())})
}

func (s *Server) validateTicket(w http.ResponseWriter, r *http.Request) {
	var req dto.TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json", Code: "BAD_JSON"})
		return
	}

	draft, led, err := s.assemble(&req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse(draft, led))
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var req dto.TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json", Code: "BAD_JSON"})
		return
	}

	draft, _, err := s.assemble(&req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	fin, err := s.asm.Confirm(r.Context(), draft)
	if err != nil {
		s.log.Error("confirm ticket", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "sequence unavailable", Code: "SEQUENCE"})
		return
	}

	event := finalizedEvent(fin)
	if _, err := s.repo.CreateFinalized(r.Context(), finalizedModel(fin), playModels(fin)); err != nil {
		s.log.Error("persist ticket", zap.Int64("ticketNumber", fin.Number), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "persistence unavailable", Code: "PERSISTENCE"})
		return
	}

	// Publicação é fire-and-forget: falha aqui não desfaz o bilhete.
	if err := s.publ.PublishTicketFinalized(r.Context(), event); err != nil {
		s.log.Warn("publish ticket_finalized", zap.Int64("ticketNumber", fin.Number), zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.TicketsFinalized.Inc()
	}
	writeJSON(w, http.StatusCreated, ticketResponse(fin))
}

func (s *Server) getTicket(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad ticket number", Code: "BAD_NUMBER"})
		return
	}

	t, plays, err := s.repo.GetByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "not found", Code: "NOT_FOUND"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error(), Code: "PERSISTENCE"})
		return
	}

	out := dto.TicketResponse{
		TicketNumber: t.TicketNumber,
		DraftID:      t.DraftID,
		Dates:        t.Dates,
		Tracks:       t.Tracks,
		GrandTotal:   t.GrandTotal,
		ConfirmedAt:  t.ConfirmedAt,
	}
	for _, pl := range plays {
		out.Plays = append(out.Plays, dto.PlayResponse{
			Position:  pl.Position,
			BetNumber: pl.BetNumber,
			GameMode:  pl.GameMode,
			Straight:  pl.Straight,
			Box:       pl.Box,
			Combo:     pl.Combo,
			Total:     pl.Total,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// assemble reconstrói o bilhete do payload e roda a validação completa.
func (s *Server) assemble(req *dto.TicketRequest) (*ticket.Draft, *ledger.Ledger, error) {
	dates, err := parseDates(req.Dates)
	if err != nil {
		return nil, nil, err
	}

	active := s.catalog.ActiveRegions(req.Tracks)
	led := ledger.New()
	for _, f := range req.Plays {
		if _, err := led.Add(ledger.Fields(f), active); err != nil {
			return nil, nil, err
		}
	}

	draft, err := s.asm.Assemble(led, dates, req.Tracks, s.now())
	if err != nil {
		return nil, nil, err
	}
	return draft, led, nil
}

// writeEngineError traduz os erros do motor para o contrato HTTP.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	countFailure := func(kind string) {
		if s.metrics != nil {
			s.metrics.ValidationFailures.WithLabelValues(kind).Inc()
		}
	}

	var closed *ticket.TrackClosedError
	var invalid *ticket.InvalidPlaysError
	var badDate *dateError

	switch {
	case errors.Is(err, ticket.ErrMissingSelection):
		countFailure("missing_selection")
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: "MISSING_SELECTION"})
	case errors.Is(err, ledger.ErrCapacityExceeded):
		countFailure("capacity_exceeded")
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: "CAPACITY_EXCEEDED"})
	case errors.As(err, &closed):
		countFailure("track_closed")
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: "TRACK_CLOSED", Track: closed.Track})
	case errors.As(err, &invalid):
		countFailure("invalid_plays")
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:     err.Error(),
			Code:      "INVALID_PLAYS",
			Positions: invalid.Positions(),
			Reasons:   invalid.Reasons,
		})
	case errors.As(err, &badDate):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: "BAD_DATE"})
	default:
		s.log.Error("assemble ticket", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error(), Code: "INTERNAL"})
	}
}

type dateError struct{ raw string }

func (e *dateError) Error() string { return fmt.Sprintf("bad date %q, want YYYY-MM-DD", e.raw) }

func parseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, &dateError{raw: s}
		}
		out = append(out, d)
	}
	return out, nil
}

func parseDatesParam(param string) ([]time.Time, error) {
	if param == "" {
		return nil, nil
	}
	var raw []string
	for _, s := range strings.Split(param, ",") {
		if s != "" {
			raw = append(raw, s)
		}
	}
	return parseDates(raw)
}

func toFields(plays []dto.PlayFields) []ledger.Fields {
	out := make([]ledger.Fields, 0, len(plays))
	for _, p := range plays {
		out = append(out, ledger.Fields(p))
	}
	return out
}

func toPlayResponses(plays []*ledger.Play) []dto.PlayResponse {
	out := make([]dto.PlayResponse, 0, len(plays))
	for _, p := range plays {
		out = append(out, dto.PlayResponse{
			Position:  p.Position,
			BetNumber: p.BetNumber,
			GameMode:  string(p.Mode),
			Straight:  p.Straight,
			Box:       p.Box,
			Combo:     p.Combo,
			Total:     p.Total.StringFixed(2),
		})
	}
	return out
}

func draftResponse(d *ticket.Draft, led *ledger.Ledger) dto.DraftResponse {
	out := dto.DraftResponse{
		DraftID:    d.ID,
		Tracks:     d.Tracks,
		GrandTotal: d.Total.StringFixed(2),
		Duplicates: led.Duplicates(),
	}
	for _, dt := range d.Dates {
		out.Dates = append(out.Dates, dt.Format(dateLayout))
	}
	for i := range d.Plays {
		p := &d.Plays[i]
		out.Plays = append(out.Plays, dto.PlayResponse{
			Position:  p.Position,
			BetNumber: p.BetNumber,
			GameMode:  string(p.Mode),
			Straight:  p.Straight,
			Box:       p.Box,
			Combo:     p.Combo,
			Total:     p.Total.StringFixed(2),
		})
	}
	return out
}

func ticketResponse(f *ticket.Finalized) dto.TicketResponse {
	out := dto.TicketResponse{
		TicketNumber: f.Number,
		DraftID:      f.Draft.ID,
		Tracks:       f.Draft.Tracks,
		GrandTotal:   f.Draft.Total.StringFixed(2),
		ConfirmedAt:  f.ConfirmedAt,
	}
	for _, dt := range f.Draft.Dates {
		out.Dates = append(out.Dates, dt.Format(dateLayout))
	}
	for i := range f.Draft.Plays {
		p := &f.Draft.Plays[i]
		out.Plays = append(out.Plays, dto.PlayResponse{
			Position:  p.Position,
			BetNumber: p.BetNumber,
			GameMode:  string(p.Mode),
			Straight:  p.Straight,
			Box:       p.Box,
			Combo:     p.Combo,
			Total:     p.Total.StringFixed(2),
		})
	}
	return out
}

func finalizedEvent(f *ticket.Finalized) events.TicketFinalized {
	e := events.TicketFinalized{
		TicketNumber: f.Number,
		DraftID:      f.Draft.ID,
		Tracks:       f.Draft.Tracks,
		GrandTotal:   f.Draft.Total.StringFixed(2),
		ConfirmedAt:  f.ConfirmedAt,
	}
	for _, dt := range f.Draft.Dates {
		e.Dates = append(e.Dates, dt.Format(dateLayout))
	}
	for i := range f.Draft.Plays {
		p := &f.Draft.Plays[i]
		e.Plays = append(e.Plays, events.PlayLine{
			Position:  p.Position,
			BetNumber: p.BetNumber,
			GameMode:  string(p.Mode),
			Straight:  p.Straight,
			Box:       p.Box,
			Combo:     p.Combo,
			Total:     p.Total.StringFixed(2),
		})
	}
	return e
}

func finalizedModel(f *ticket.Finalized) *repo.Ticket {
	t := &repo.Ticket{
		TicketNumber: f.Number,
		DraftID:      f.Draft.ID,
		Tracks:       f.Draft.Tracks,
		GrandTotal:   f.Draft.Total.StringFixed(2),
		ConfirmedAt:  f.ConfirmedAt,
	}
	for _, dt := range f.Draft.Dates {
		t.Dates = append(t.Dates, dt.Format(dateLayout))
	}
	return t
}

func playModels(f *ticket.Finalized) []repo.TicketPlay {
	out := make([]repo.TicketPlay, 0, len(f.Draft.Plays))
	for i := range f.Draft.Plays {
		p := &f.Draft.Plays[i]
		out = append(out, repo.TicketPlay{
			Position:  p.Position,
			BetNumber: p.BetNumber,
			GameMode:  string(p.Mode),
			Straight:  p.Straight,
			Box:       p.Box,
			Combo:     p.Combo,
			Total:     p.Total.StringFixed(2),
		})
	}
	return out
}
