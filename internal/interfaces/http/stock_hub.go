package http

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-hojas/internal/application/dto"
	"github.com/jhoicas/inventario-hojas/internal/application/ports"
)

const clientBuffer = 16

type stockMessage struct {
	seq  uint64
	data []byte
}

// stockClient conexión suscrita a los cambios de stock.
type stockClient struct {
	id   string
	send chan stockMessage

	// solo los usa el escritor de la conexión
	last uint64
	sent bool
}

func newStockClient(id string, buffer int) *stockClient {
	return &stockClient{id: id, send: make(chan stockMessage, buffer)}
}

// fresh descarta los mensajes con Seq ya superado. El resumen inicial puede
// encolarse detrás de un cambio más nuevo.
func (c *stockClient) fresh(seq uint64) bool {
	if c.sent && seq <= c.last {
		return false
	}
	c.last, c.sent = seq, true
	return true
}

// StockHub reparte el resumen de stock recalculado a los websockets conectados.
// Un cliente cuyo buffer está lleno se desconecta; nunca bloquea al Workbook.
type StockHub struct {
	mu      sync.RWMutex
	clients map[string]*stockClient
	current func() ports.StockChange
	log     zerolog.Logger
}

// NewStockHub construye el hub. current entrega el resumen inicial de cada conexión
// junto con su Seq; no se invoca con el lock del hub tomado.
func NewStockHub(current func() ports.StockChange, log zerolog.Logger) *StockHub {
	return &StockHub{
		clients: make(map[string]*stockClient),
		current: current,
		log:     log,
	}
}

var _ ports.StockNotifier = (*StockHub)(nil)

// StockChanged implementa ports.StockNotifier.
func (h *StockHub) StockChanged(_ context.Context, change ports.StockChange) {
	data, err := json.Marshal(dto.NewStockChangedEvent(change))
	if err != nil {
		h.log.Warn().Err(err).Msg("no se pudo serializar el evento de stock")
		return
	}
	h.broadcast(stockMessage{seq: change.Seq, data: data})
}

func (h *StockHub) broadcast(msg stockMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		h.enqueueLocked(client, msg)
	}
}

func (h *StockHub) enqueueLocked(client *stockClient, msg stockMessage) {
	select {
	case client.send <- msg:
	default:
		h.log.Warn().Str("client", client.id).Msg("cliente lento, se desconecta")
		close(client.send)
		delete(h.clients, client.id)
	}
}

// subscribe registra al cliente y después le encola el resumen actual. Registrar
// primero garantiza que ningún cambio posterior al resumen se pierda.
func (h *StockHub) subscribe(client *stockClient) {
	h.register(client)

	snapshot := h.current()
	data, err := json.Marshal(dto.NewStockChangedEvent(snapshot))
	if err != nil {
		h.log.Warn().Err(err).Str("client", client.id).Msg("no se pudo serializar el resumen inicial")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.id]; ok {
		h.enqueueLocked(client, stockMessage{seq: snapshot.Seq, data: data})
	}
}

func (h *StockHub) register(client *stockClient) {
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	h.log.Debug().Str("client", client.id).Msg("websocket registrado")
}

func (h *StockHub) unregister(client *stockClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.id]; ok {
		delete(h.clients, client.id)
		close(client.send)
		h.log.Debug().Str("client", client.id).Msg("websocket desconectado")
	}
}

// Connected cantidad de clientes suscritos.
func (h *StockHub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close desconecta a todos los clientes.
func (h *StockHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		close(client.send)
		delete(h.clients, id)
	}
}

// RequireUpgrade rechaza las peticiones que no son upgrade a websocket.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle atiende una conexión: envía el resumen actual y luego cada cambio.
func (h *StockHub) Handle(conn *websocket.Conn) {
	client := newStockClient(uuid.NewString(), clientBuffer)
	h.subscribe(client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Debug().Err(err).Str("client", client.id).Msg("lectura de websocket")
				}
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-client.send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if !client.fresh(msg.seq) {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
				h.unregister(client)
				return
			}
		case <-done:
			h.unregister(client)
			return
		}
	}
}
