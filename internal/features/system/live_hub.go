package system

import (
	"encoding/json"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const clientBuffer = 4

type liveClient struct {
	send chan []byte
}

// LiveHub fans live snapshots out to every connected page.
type LiveHub struct {
	mu      sync.Mutex
	clients map[*liveClient]struct{}
	gauge   prometheus.Gauge
	logger  *zap.Logger
}

func NewLiveHub(reg prometheus.Registerer, logger *zap.Logger) *LiveHub {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fraud_console",
		Subsystem: "live",
		Name:      "clients",
		Help:      "Connected live feed clients.",
	})
	reg.MustRegister(gauge)
	return &LiveHub{
		clients: make(map[*liveClient]struct{}),
		gauge:   gauge,
		logger:  logger.Named("live"),
	}
}

func (h *LiveHub) register() *liveClient {
	client := &liveClient{send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	h.gauge.Inc()
	return client
}

func (h *LiveHub) unregister(client *liveClient) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if ok {
		h.gauge.Dec()
	}
}

// Clients is the number of connected pages.
func (h *LiveHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues v for every client. A client that is not keeping up
// misses the message.
func (h *LiveHub) Broadcast(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to encode live snapshot", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
		}
	}
}
