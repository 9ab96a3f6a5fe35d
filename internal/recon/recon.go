// Package recon 把一批确认后的报价候选合并进现有台账。
// 纯函数实现：输入台账快照与候选批次，输出有序的落库动作，
// 由调用方负责持久化与广播。
package recon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ncd-quote/internal/models"
)

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
)

// 到期日未同步时的占位值
const (
	MaturityNotSynced  = "未同步"
	MaturityUnknownDay = "未知"
)

// Action 一条合并决策及其结果记录
type Action struct {
	Kind      string
	Quotation models.Quotation
}

// Result 整批合并的产出
type Result struct {
	Actions []Action
	Applied int
	Skipped int
}

// Reconcile 按批次顺序逐条合并候选。
// 同批内后面的候选能看到前面的结果：同一自然键出现两次时，
// 第一条落为新增，第二条落为带方向标记的更新。
func Reconcile(ledger []models.Quotation, mats []models.Maturity, cands []models.Candidate, defaultWeekday string) Result {
	working := make([]models.Quotation, len(ledger))
	copy(working, ledger)

	matByTenor := make(map[string]models.Maturity, len(mats))
	for _, m := range mats {
		matByTenor[m.Tenor] = m
	}

	var res Result
	for _, cand := range cands {
		// 缺银行名或利率的候选跳过，计数不报错
		if cand.BankName == "" || cand.YieldRate == "" {
			res.Skipped++
			continue
		}
		newRate, ok := parseRate(cand.YieldRate)
		if !ok {
			res.Skipped++
			continue
		}

		mat, hasMat := matByTenor[cand.Tenor]

		// 自然键 (银行名, 期限) 精确匹配，台账序首个命中者
		idx := -1
		for i, q := range working {
			if q.BankName == cand.BankName && q.Tenor == cand.Tenor {
				idx = i
				break
			}
		}

		finalYield := fmt.Sprintf("%.2f", newRate)

		if idx >= 0 {
			existing := working[idx]
			if oldRate, ok := parseRate(existing.YieldRate); ok {
				if newRate > oldRate {
					finalYield += "↑"
				} else if newRate < oldRate {
					finalYield += "↓"
				}
			}

			merged := existing
			overlayCandidate(&merged, cand)
			merged.YieldRate = finalYield
			if hasMat {
				merged.MaturityDate = mat.Date
				merged.MaturityWeekday = mat.Weekday
			}

			working[idx] = merged
			res.Actions = append(res.Actions, Action{Kind: ActionUpdate, Quotation: merged})
			res.Applied++
		} else {
			q := models.Quotation{
				ID:        uuid.NewString(),
				BankName:  cand.BankName,
				Rating:    cand.Rating,
				Category:  cand.Category,
				Tenor:     cand.Tenor,
				YieldRate: finalYield,
				Weekday:   cand.Weekday,
				Volume:    cand.Volume,
				Remarks:   cand.Remarks,
			}
			if q.Weekday == "" {
				q.Weekday = defaultWeekday
			}
			if hasMat {
				q.MaturityDate = mat.Date
				q.MaturityWeekday = mat.Weekday
			} else {
				q.MaturityDate = MaturityNotSynced
				q.MaturityWeekday = MaturityUnknownDay
			}

			working = append(working, q)
			res.Actions = append(res.Actions, Action{Kind: ActionInsert, Quotation: q})
			res.Applied++
		}
	}
	return res
}

// overlayCandidate 浅合并：候选的全部字段覆盖现有记录，
// 空字段一样覆盖，只有 id 与创建时间保持不变。
// 利率与到期日字段随后由调用方按合并结果重写。
func overlayCandidate(q *models.Quotation, cand models.Candidate) {
	q.BankName = cand.BankName
	q.Rating = cand.Rating
	q.Category = cand.Category
	q.Tenor = cand.Tenor
	q.YieldRate = cand.YieldRate
	q.Weekday = cand.Weekday
	q.Volume = cand.Volume
	q.Remarks = cand.Remarks
}

// parseRate 解析利率文本。历史值可能带方向箭头和百分号，
// 与候选一样先剥掉非数字字符再解析。
func parseRate(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
