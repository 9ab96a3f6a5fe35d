package realtime

import (
	"encoding/json"

	"ncd-quote/internal/models"
)

// Ledger 一份台账副本。服务端和每个客户端各持一份，
// 全部通过 Apply 按事件流推进，可以离线重放做确定性测试。
type Ledger struct {
	Quotations []models.Quotation
	Maturities []models.Maturity
}

// Apply 把单个事件应用到台账上，返回新状态，入参不被修改。
// 无法解码的事件原样返回当前状态。
func Apply(s Ledger, ev Event) Ledger {
	switch ev.Event {
	case EventFullSync:
		var payload FullSyncPayload
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			return s
		}
		return Ledger{
			Quotations: append([]models.Quotation(nil), payload.Quotations...),
			Maturities: append([]models.Maturity(nil), payload.Maturities...),
		}

	case EventQuotationAdd:
		var q models.Quotation
		if err := json.Unmarshal(ev.Data, &q); err != nil {
			return s
		}
		// 发起方已乐观上屏，回声事件按 id 去重
		for _, existing := range s.Quotations {
			if existing.ID == q.ID {
				return s
			}
		}
		next := s
		next.Quotations = append(append([]models.Quotation(nil), s.Quotations...), q)
		return next

	case EventQuotationUpd:
		var probe struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(ev.Data, &probe); err != nil || probe.ID == "" {
			return s
		}
		next := s
		next.Quotations = append([]models.Quotation(nil), s.Quotations...)
		for i, q := range next.Quotations {
			if q.ID != probe.ID {
				continue
			}
			// 部分更新：把 JSON 覆盖到现有记录的副本上，
			// 未出现的字段保持原值
			merged := q
			if err := json.Unmarshal(ev.Data, &merged); err != nil {
				return s
			}
			next.Quotations[i] = merged
			break
		}
		return next

	case EventQuotationDel:
		var id string
		if err := json.Unmarshal(ev.Data, &id); err != nil {
			return s
		}
		next := s
		next.Quotations = make([]models.Quotation, 0, len(s.Quotations))
		for _, q := range s.Quotations {
			if q.ID != id {
				next.Quotations = append(next.Quotations, q)
			}
		}
		return next

	case EventMaturityUpdate:
		var mats []models.Maturity
		if err := json.Unmarshal(ev.Data, &mats); err != nil {
			return s
		}
		byTenor := make(map[string]models.Maturity, len(mats))
		for _, m := range mats {
			byTenor[m.Tenor] = m
		}
		next := s
		next.Maturities = append([]models.Maturity(nil), mats...)
		next.Quotations = append([]models.Quotation(nil), s.Quotations...)
		// 到期日基准变了，重算同期限报价的派生字段，利率不动
		for i, q := range next.Quotations {
			if m, ok := byTenor[q.Tenor]; ok {
				q.MaturityDate = m.Date
				q.MaturityWeekday = m.Weekday
				next.Quotations[i] = q
			}
		}
		return next
	}
	return s
}
