package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lototrack/ticket-engine-poc/internal/engine/ticket"
	"github.com/lototrack/ticket-engine-poc/internal/engine/track"
	"github.com/lototrack/ticket-engine-poc/internal/shared/config"
	"github.com/lototrack/ticket-engine-poc/internal/shared/db"
	skafka "github.com/lototrack/ticket-engine-poc/internal/shared/kafka"
	"github.com/lototrack/ticket-engine-poc/internal/shared/logger"
	thttp "github.com/lototrack/ticket-engine-poc/internal/ticket-service/http"
	kpub "github.com/lototrack/ticket-engine-poc/internal/ticket-service/producer"
	"github.com/lototrack/ticket-engine-poc/internal/ticket-service/repo"
	"github.com/lototrack/ticket-engine-poc/internal/ticket-service/sequence"
	"github.com/lototrack/ticket-engine-poc/internal/ticket-service/ws"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis (contador de números de bilhete)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writer (topic ticket_finalized)
	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTicketFinalized)
	defer writer.Close()

	// métricas
	m := &thttp.Metrics{
		TicketsFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticket_finalized_total", Help: "bilhetes confirmados"}),
		PlaysPriced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticket_plays_priced_total", Help: "jogadas precificadas via API"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticket_validation_failures_total", Help: "falhas de validação por tipo"}, []string{"kind"}),
	}
	wsConnections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ticket_ws_connections", Help: "conexões WebSocket ativas no quadro de sorteios"})
	prometheus.MustRegister(m.TicketsFinalized, m.PlaysPriced, m.ValidationFailures, wsConnections)

	// deps
	catalog := track.NewCatalog()
	seq := sequence.NewRedis(rdb, cfg.TicketSequenceKey)
	asm := ticket.NewAssembler(catalog, seq, nil)
	repository := repo.NewPostgres(pg)
	publ := kpub.NewKafkaPublisher(writer, cfg.TopicTicketFinalized)
	hub := ws.NewHub(func(r *http.Request) bool { return true })

	api := thttp.NewServer(log, catalog, asm, repository, publ, hub, m)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// Tick periódico do corte: reavalia o quadro de sorteios para o dia
	// corrente e publica a foto para os clientes conectados. A reavaliação
	// só fecha pistas; nunca reabre dentro do mesmo dia.
	go func() {
		t := time.NewTicker(time.Duration(cfg.CutoffTickSeconds) * time.Second)
		defer t.Stop()
		for now := range t.C {
			hub.Broadcast(cutoffBoard(catalog, now))
			wsConnections.Set(float64(hub.Count()))
		}
	}()

	// metrics/health
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pg.PingContext(r.Context()); err != nil {
			http.Error(w, "pg", http.StatusServiceUnavailable)
			return
		}
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() {
		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, metricsMux)
	}()

	log.Info("ticket-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}

// cutoffBoard monta a foto do quadro para o dia corrente.
func cutoffBoard(catalog *track.Catalog, now time.Time) []map[string]string {
	today := []time.Time{now}
	out := make([]map[string]string, 0)
	for _, t := range catalog.Tracks() {
		out = append(out, map[string]string{
			"name":  t.Name,
			"state": string(track.CutoffState(t, today, now)),
		})
	}
	return out
}
