package realtime

import (
	"encoding/json"
	"log"
)

// Hub 维护所有连接并串行处理注册、注销与广播。
// 单 goroutine 事件循环，台账镜像只在循环内读写，不加锁。
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	// 服务端自己的台账镜像。启动时从存储水合，
	// 之后只通过事件流推进，新连接的全量快照取自这里。
	ledger Ledger
}

func NewHub(initial Ledger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		ledger:     initial,
	}
}

// Broadcast 把事件投入广播队列。
// HTTP 变更与客户端上行事件都走这一条路径。
func (h *Hub) Broadcast(ev Event) {
	h.broadcast <- ev
}

// Run 事件循环，需在独立 goroutine 中启动
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.sendFullSync(client)
			log.Printf("[WebSocket] 客户端连接，当前 %d 个", len(h.clients))

		case client := <-h.unregister:
			if h.clients[client] {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[WebSocket] 客户端断开，当前 %d 个", len(h.clients))
			}

		case ev := <-h.broadcast:
			h.ledger = Apply(h.ledger, ev)
			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("[WebSocket] 事件编码失败: %v", err)
				continue
			}
			// 广播给所有客户端，包括发起方。
			// 尽力投递：发不进去的连接直接踢掉，等它重连全量同步。
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

func (h *Hub) sendFullSync(client *Client) {
	ev, err := NewEvent(EventFullSync, FullSyncPayload{
		Quotations: h.ledger.Quotations,
		Maturities: h.ledger.Maturities,
	})
	if err != nil {
		log.Printf("[WebSocket] 全量快照编码失败: %v", err)
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}
