package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/lototrack/ticket-engine-poc/internal/shared/config"
	"github.com/lototrack/ticket-engine-poc/internal/shared/db"
	"github.com/lototrack/ticket-engine-poc/internal/shared/kafka"
	"github.com/lototrack/ticket-engine-poc/internal/shared/logger"
	ev "github.com/lototrack/ticket-engine-poc/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Banco onde fica o histórico de bilhetes confirmados
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	// Kafka consumer: consome eventos ticket_finalized para arquivar
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicTicketFinalized, "ticket-archive")
	defer reader.Close()

	var dlqWriter *kafkago.Writer
	if cfg.TopicTicketFinalizedDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTicketFinalizedDLQ)
		defer dlqWriter.Close()
	}

	// métricas
	archived := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ticket_archive_written_total", Help: "bilhetes arquivados"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ticket_archive_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(archived, errorsBy)

	// Servidor HTTP para métricas Prometheus e healthcheck
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()
			if err := pg.PingContext(ctx); err != nil {
				http.Error(w, "pg", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		addr := ":" + cfg.MetricsPort
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	log.Info("ticket-archive-worker started", zap.String("consume", cfg.TopicTicketFinalized))

	ctx := context.Background()

	// Loop principal: consome eventos, grava o histórico, manda os
	// envenenados para a DLQ
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			log.Warn("kafka read", zap.Error(err))
			errorsBy.WithLabelValues("consume").Inc()
			time.Sleep(time.Second)
			continue
		}

		var fin ev.TicketFinalized
		if jerr := json.Unmarshal(msg.Value, &fin); jerr != nil {
			log.Error("unmarshal ticket_finalized", zap.Error(jerr))
			errorsBy.WithLabelValues("unmarshal").Inc()
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, string(msg.Key), msg.Value)
			}
			continue
		}

		if err := archiveOne(ctx, pg, &fin, msg.Value); err != nil {
			log.Error("archive ticket", zap.Int64("ticketNumber", fin.TicketNumber), zap.Error(err))
			errorsBy.WithLabelValues("persist").Inc()
			if dlqWriter != nil {
				_ = kafka.WriteJSON(ctx, dlqWriter, string(msg.Key), msg.Value)
			}
			continue
		}
		archived.Inc()
	}
}

// archiveOne grava uma linha de histórico por bilhete confirmado, com o
// payload completo do evento para auditoria. Tenta 3 vezes antes de
// devolver erro (e cair na DLQ).
func archiveOne(ctx context.Context, pg *sql.DB, fin *ev.TicketFinalized, payload []byte) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(300*attempt) * time.Millisecond)
		}
		_, err = pg.ExecContext(ctx, `
			INSERT INTO ticket_archive (ticket_number, draft_id, grand_total, play_count, confirmed_at, payload, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,NOW())
			ON CONFLICT (ticket_number) DO NOTHING`,
			fin.TicketNumber, fin.DraftID, fin.GrandTotal, len(fin.Plays), fin.ConfirmedAt, payload,
		)
		if err == nil {
			return nil
		}
	}
	return err
}
