// Package realtime 实现多端实时同步：
// 新连接收到一次全量快照，此后每次变更以事件广播给所有客户端
// （含发起方），各端状态仅由快照加事件流推导。
package realtime

import (
	"encoding/json"
	"fmt"

	"ncd-quote/internal/models"
)

// 命名事件，与前端约定保持一致
const (
	EventFullSync       = "sync:full"
	EventQuotationAdd   = "quotation:add"
	EventQuotationUpd   = "quotation:update"
	EventQuotationDel   = "quotation:delete"
	EventMaturityUpdate = "maturity:update"
)

// clientEvents 允许客户端上行的事件。
// 全量快照只由服务端下发，客户端送来的一律丢弃。
var clientEvents = map[string]bool{
	EventQuotationAdd:   true,
	EventQuotationUpd:   true,
	EventQuotationDel:   true,
	EventMaturityUpdate: true,
}

func isClientEvent(name string) bool {
	return clientEvents[name]
}

// Event 事件封包。data 的形状由事件名决定：
// 删除事件只带 id 字符串，期限事件带完整期限集合。
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// FullSyncPayload 全量快照
type FullSyncPayload struct {
	Quotations []models.Quotation `json:"quotations"`
	Maturities []models.Maturity  `json:"maturities"`
}

// NewEvent 包装任意负载为命名事件
func NewEvent(name string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", name, err)
	}
	return Event{Event: name, Data: data}, nil
}
