package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"ncd-quote/internal/models"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, sendBufferSize)}
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("broadcast is not a valid event: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubSendsFullSyncOnRegister(t *testing.T) {
	hub := NewHub(Ledger{
		Quotations: []models.Quotation{{ID: "q1", BankName: "兴业银行", Tenor: "6M"}},
		Maturities: []models.Maturity{{Tenor: "6M", Date: "2025/12/18", Weekday: "周四"}},
	})
	go hub.Run()

	client := newTestClient()
	hub.register <- client

	ev := recvEvent(t, client)
	if ev.Event != EventFullSync {
		t.Fatalf("first event = %s, want %s", ev.Event, EventFullSync)
	}

	var payload FullSyncPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("bad full sync payload: %v", err)
	}
	if len(payload.Quotations) != 1 || payload.Quotations[0].ID != "q1" {
		t.Errorf("payload quotations = %+v", payload.Quotations)
	}
	if len(payload.Maturities) != 1 {
		t.Errorf("payload maturities = %+v", payload.Maturities)
	}
}

func TestHubBroadcastReachesAllClientsIncludingOrigin(t *testing.T) {
	hub := NewHub(Ledger{})
	go hub.Run()

	origin := newTestClient()
	peer := newTestClient()
	hub.register <- origin
	hub.register <- peer
	recvEvent(t, origin) // 各自的全量快照
	recvEvent(t, peer)

	add, err := NewEvent(EventQuotationAdd, models.Quotation{ID: "q1", BankName: "兴业银行", Tenor: "6M"})
	if err != nil {
		t.Fatal(err)
	}
	hub.Broadcast(add)

	// 发起方也收到同一事件，本地状态和权威广播走同一条路径
	for _, c := range []*Client{origin, peer} {
		ev := recvEvent(t, c)
		if ev.Event != EventQuotationAdd {
			t.Errorf("event = %s, want %s", ev.Event, EventQuotationAdd)
		}
	}
}

func TestClientEventWhitelist(t *testing.T) {
	// 全量快照只能由服务端下发，客户端上行只放行四类变更事件
	tests := []struct {
		event string
		want  bool
	}{
		{EventQuotationAdd, true},
		{EventQuotationUpd, true},
		{EventQuotationDel, true},
		{EventMaturityUpdate, true},
		{EventFullSync, false},
		{"unknown:event", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isClientEvent(tt.event); got != tt.want {
			t.Errorf("isClientEvent(%q) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestHubMirrorFeedsLaterFullSync(t *testing.T) {
	hub := NewHub(Ledger{})
	go hub.Run()

	early := newTestClient()
	hub.register <- early
	recvEvent(t, early)

	add, _ := NewEvent(EventQuotationAdd, models.Quotation{ID: "q1", BankName: "兴业银行", Tenor: "6M"})
	hub.Broadcast(add)
	recvEvent(t, early)

	// 稍后接入的客户端的快照里必须已经包含这次变更
	late := newTestClient()
	hub.register <- late
	ev := recvEvent(t, late)
	if ev.Event != EventFullSync {
		t.Fatalf("first event = %s, want %s", ev.Event, EventFullSync)
	}
	var payload FullSyncPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Quotations) != 1 || payload.Quotations[0].ID != "q1" {
		t.Errorf("late snapshot = %+v", payload.Quotations)
	}
}
