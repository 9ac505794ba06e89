package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub gerencia conexões WebSocket interessadas no quadro de sorteios.
// O tick periódico de corte publica o quadro aqui; todo cliente conectado
// recebe a mesma foto.
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	conns    map[*websocket.Conn]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		conns:    make(map[*websocket.Conn]struct{}),
	}
}

// HandleWS mantém a conexão registrada até o cliente encerrar.
// O canal é só de saída; qualquer mensagem recebida é descartada.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
	}()

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// Broadcast envia o payload a todas as conexões; conexões com erro de
// escrita são derrubadas na próxima leitura.
func (h *Hub) Broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.conns {
		_ = conn.WriteJSON(v)
	}
}

// Count retorna a quantidade de conexões ativas (para métricas).
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
