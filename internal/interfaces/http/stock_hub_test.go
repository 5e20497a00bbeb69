package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-hojas/internal/application/dto"
	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

func emptySnapshot() ports.StockChange { return ports.StockChange{Command: "snapshot"} }

// drain simula al escritor de la conexión: devuelve los eventos que saldrían por el socket.
func drain(t *testing.T, c *stockClient) []dto.StockChangedEvent {
	t.Helper()
	var out []dto.StockChangedEvent
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return out
			}
			if !c.fresh(msg.seq) {
				continue
			}
			var ev dto.StockChangedEvent
			require.NoError(t, json.Unmarshal(msg.data, &ev))
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestStockHub_RepartePorCliente(t *testing.T) {
	hub := NewStockHub(emptySnapshot, zerolog.Nop())
	a := newStockClient("a", 1)
	b := newStockClient("b", 1)
	hub.register(a)
	hub.register(b)
	require.Equal(t, 2, hub.Connected())

	hub.StockChanged(context.Background(), ports.StockChange{
		Seq:     3,
		Command: "add_movement",
		At:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Summaries: []entity.StockSummary{
			{ProductID: "1", SKU: "LAP-001", TotalIn: decimal.NewFromInt(10), TotalOut: decimal.NewFromInt(3), CurrentStock: decimal.NewFromInt(7)},
		},
	})

	for _, c := range []*stockClient{a, b} {
		events := drain(t, c)
		require.Len(t, events, 1)
		ev := events[0]
		assert.Equal(t, dto.StockChangedType, ev.Type)
		assert.Equal(t, uint64(3), ev.Seq)
		assert.Equal(t, "add_movement", ev.Command)
		require.Len(t, ev.Items, 1)
		assert.True(t, ev.Items[0].CurrentStock.Equal(decimal.NewFromInt(7)))
	}
}

func TestStockHub_DesconectaClienteLento(t *testing.T) {
	hub := NewStockHub(emptySnapshot, zerolog.Nop())
	slow := newStockClient("lento", 1)
	hub.register(slow)

	hub.StockChanged(context.Background(), ports.StockChange{Seq: 1, Command: "add_product"})
	hub.StockChanged(context.Background(), ports.StockChange{Seq: 2, Command: "add_product"})

	assert.Equal(t, 0, hub.Connected())
	<-slow.send
	_, open := <-slow.send
	assert.False(t, open, "el canal del cliente lento queda cerrado")

	hub.unregister(slow)
}

func TestStockHub_Close(t *testing.T) {
	hub := NewStockHub(emptySnapshot, zerolog.Nop())
	c := newStockClient("c", 1)
	hub.register(c)
	hub.Close()
	assert.Equal(t, 0, hub.Connected())
	_, open := <-c.send
	assert.False(t, open)
}

func TestStockHub_SubscribeEnviaResumenInicial(t *testing.T) {
	hub := NewStockHub(func() ports.StockChange {
		return ports.StockChange{
			Seq:       7,
			Command:   "snapshot",
			Summaries: []entity.StockSummary{{ProductID: "1", CurrentStock: decimal.NewFromInt(7)}},
		}
	}, zerolog.Nop())
	c := newStockClient("c", clientBuffer)

	hub.subscribe(c)

	assert.Equal(t, 1, hub.Connected())
	events := drain(t, c)
	require.Len(t, events, 1)
	assert.Equal(t, "snapshot", events[0].Command)
	assert.Equal(t, uint64(7), events[0].Seq)
	require.Len(t, events[0].Items, 1)
}

// Un cambio que llega mientras se calcula el resumen inicial no se pierde y el
// resumen viejo que queda detrás en la cola no lo pisa.
func TestStockHub_CambioDuranteResumenInicial(t *testing.T) {
	var hub *StockHub
	hub = NewStockHub(func() ports.StockChange {
		hub.StockChanged(context.Background(), ports.StockChange{
			Seq:       2,
			Command:   "add_product",
			Summaries: []entity.StockSummary{{ProductID: "1"}, {ProductID: "2"}},
		})
		return ports.StockChange{
			Seq:       1,
			Command:   "snapshot",
			Summaries: []entity.StockSummary{{ProductID: "1"}},
		}
	}, zerolog.Nop())
	c := newStockClient("c", clientBuffer)

	hub.subscribe(c)

	events := drain(t, c)
	require.Len(t, events, 1, "el resumen con seq viejo se descarta")
	assert.Equal(t, "add_product", events[0].Command)
	assert.Equal(t, uint64(2), events[0].Seq)
	assert.Len(t, events[0].Items, 2)
}

func TestStockClient_Fresh(t *testing.T) {
	c := newStockClient("c", 1)
	assert.True(t, c.fresh(0), "el primer mensaje siempre sale")
	assert.True(t, c.fresh(3))
	assert.False(t, c.fresh(3))
	assert.False(t, c.fresh(2))
	assert.True(t, c.fresh(4))
}

func TestStockHub_SubscribeTrasCloseNoEncola(t *testing.T) {
	c := newStockClient("c", 1)
	var hub *StockHub
	hub = NewStockHub(func() ports.StockChange {
		hub.Close()
		return emptySnapshot()
	}, zerolog.Nop())

	assert.NotPanics(t, func() { hub.subscribe(c) })
	assert.Equal(t, 0, hub.Connected())
	_, open := <-c.send
	assert.False(t, open)
}
