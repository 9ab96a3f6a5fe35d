package realtime

import (
	"reflect"
	"testing"

	"ncd-quote/internal/models"
)

func mustEvent(t *testing.T, name string, payload any) Event {
	t.Helper()
	ev, err := NewEvent(name, payload)
	if err != nil {
		t.Fatalf("NewEvent(%s) failed: %v", name, err)
	}
	return ev
}

func TestApplyFullSyncIdempotent(t *testing.T) {
	payload := FullSyncPayload{
		Quotations: []models.Quotation{{ID: "q1", BankName: "兴业银行", Tenor: "6M", YieldRate: "1.62"}},
		Maturities: []models.Maturity{{Tenor: "6M", Date: "2025/12/18", Weekday: "周四"}},
	}
	ev := mustEvent(t, EventFullSync, payload)

	s1 := Apply(Ledger{}, ev)
	s2 := Apply(s1, ev)

	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("replaying sync:full changed state:\n s1=%+v\n s2=%+v", s1, s2)
	}
	if len(s1.Quotations) != 1 || len(s1.Maturities) != 1 {
		t.Errorf("state after full sync = %+v", s1)
	}
}

func TestApplyAddIgnoresDuplicateID(t *testing.T) {
	q := models.Quotation{ID: "q1", BankName: "兴业银行", Tenor: "6M"}
	ev := mustEvent(t, EventQuotationAdd, q)

	s := Apply(Ledger{}, ev)
	if len(s.Quotations) != 1 {
		t.Fatalf("quotations = %d, want 1", len(s.Quotations))
	}

	// 发起方乐观上屏后还会收到自己的回声广播
	s = Apply(s, ev)
	if len(s.Quotations) != 1 {
		t.Errorf("duplicate add grew ledger to %d", len(s.Quotations))
	}
}

func TestApplyUpdateMergesPartialFields(t *testing.T) {
	base := Ledger{Quotations: []models.Quotation{{
		ID: "q1", BankName: "兴业银行", Tenor: "6M", YieldRate: "1.50", Volume: "40e",
	}}}

	ev := Event{Event: EventQuotationUpd, Data: []byte(`{"id":"q1","yieldRate":"1.62↑"}`)}
	s := Apply(base, ev)

	q := s.Quotations[0]
	if q.YieldRate != "1.62↑" {
		t.Errorf("yieldRate = %q, want 1.62↑", q.YieldRate)
	}
	if q.BankName != "兴业银行" || q.Volume != "40e" {
		t.Errorf("update wiped untouched fields: %+v", q)
	}

	// 入参状态不被修改
	if base.Quotations[0].YieldRate != "1.50" {
		t.Errorf("Apply mutated input state: %+v", base.Quotations[0])
	}
}

func TestApplyUpdateUnknownIDIsNoop(t *testing.T) {
	base := Ledger{Quotations: []models.Quotation{{ID: "q1", BankName: "兴业银行"}}}
	ev := Event{Event: EventQuotationUpd, Data: []byte(`{"id":"missing","yieldRate":"1.62"}`)}

	s := Apply(base, ev)
	if !reflect.DeepEqual(s.Quotations, base.Quotations) {
		t.Errorf("update of unknown id changed state: %+v", s.Quotations)
	}
}

func TestApplyDelete(t *testing.T) {
	base := Ledger{Quotations: []models.Quotation{
		{ID: "q1", BankName: "兴业银行"},
		{ID: "q2", BankName: "建设银行"},
	}}
	ev := mustEvent(t, EventQuotationDel, "q1")

	s := Apply(base, ev)
	if len(s.Quotations) != 1 || s.Quotations[0].ID != "q2" {
		t.Errorf("after delete: %+v", s.Quotations)
	}
	if len(base.Quotations) != 2 {
		t.Error("Apply mutated input state")
	}
}

func TestApplyMaturityUpdateRecomputesDerivedFields(t *testing.T) {
	base := Ledger{
		Quotations: []models.Quotation{
			{ID: "q1", Tenor: "6M", YieldRate: "1.62↑", MaturityDate: "未同步", MaturityWeekday: "未知"},
			{ID: "q2", Tenor: "1Y", YieldRate: "1.70", MaturityDate: "未同步", MaturityWeekday: "未知"},
		},
	}
	mats := []models.Maturity{{Tenor: "6M", Date: "2025/12/18", Weekday: "周四"}}
	ev := mustEvent(t, EventMaturityUpdate, mats)

	s := Apply(base, ev)
	if len(s.Maturities) != 1 {
		t.Fatalf("maturities = %d, want 1", len(s.Maturities))
	}

	q1 := s.Quotations[0]
	if q1.MaturityDate != "2025/12/18" || q1.MaturityWeekday != "周四" {
		t.Errorf("q1 maturity = %q/%q", q1.MaturityDate, q1.MaturityWeekday)
	}
	if q1.YieldRate != "1.62↑" {
		t.Errorf("maturity update touched yieldRate: %q", q1.YieldRate)
	}

	// 期限没更新的报价保持原样
	q2 := s.Quotations[1]
	if q2.MaturityDate != "未同步" {
		t.Errorf("q2 maturityDate = %q, want 未同步", q2.MaturityDate)
	}
}

func TestApplyUndecodableEventKeepsState(t *testing.T) {
	base := Ledger{Quotations: []models.Quotation{{ID: "q1"}}}
	tests := []Event{
		{Event: EventFullSync, Data: []byte(`not json`)},
		{Event: EventQuotationDel, Data: []byte(`{"oops":1}`)},
		{Event: "unknown:event", Data: []byte(`{}`)},
	}
	for _, ev := range tests {
		s := Apply(base, ev)
		if !reflect.DeepEqual(s, base) {
			t.Errorf("Apply(%s) changed state: %+v", ev.Event, s)
		}
	}
}
