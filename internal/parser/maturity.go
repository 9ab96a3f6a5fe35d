package parser

import (
	"regexp"
	"strings"

	"ncd-quote/internal/models"
)

// 三遍结构化扫描，覆盖不同的书写顺序：
// 期限+日期、期限+到期日+日期、到期日+日期+期限。
// 多跑几遍换取召回率，重复项按 (期限, 日期) 去重。
var maturityPatterns = []*regexp.Regexp{
	// 日期后的星期距离不限，但中间不许再出现数字，
	// 避免越过下一条记录抢走它的星期
	regexp.MustCompile(`(?i)(\d{1,2}[MY])[^0-9]*?(\d{1,4}[/\-]\d{1,2}[/\-]\d{1,2})(?:[^0-9周]*(周[一二三四五六日]))?`),
	regexp.MustCompile(`(?i)(\d{1,2}[MY])\s*到期日\s*[:：]?\s*(\d{1,4}[/\-]\d{1,2}[/\-]\d{1,2})(?:\s*(周[一二三四五六日]))?`),
	regexp.MustCompile(`(?i)到期日\s*[:：]?\s*(\d{1,4}[/\-]\d{1,2}[/\-]\d{1,2})\s*(周[一二三四五六日])?\s*(\d{1,2}[MY])`),
}

var dateToken = regexp.MustCompile(`\d{1,4}[/\-]\d{1,2}[/\-]\d{1,2}`)

// 回填窗口：星期词前 20 字、后 5 字内出现的日期视为同一条记录
const (
	backfillBefore = 20
	backfillAfter  = 5
)

// ParseMaturityDates 从文本中提取各期限的到期日。
// 形如 "(1M 到期日 2025/10/16 周四)" 的片段可以出现多个。
// 结构化扫描后再做一遍星期回填：孤立的星期词若在窗口内
// 伴随日期，则补到同日期且尚无星期的记录上。
func ParseMaturityDates(text string) []models.Maturity {
	var results []models.Maturity
	seen := make(map[[2]string]bool)

	add := func(tenor, date, weekday string) {
		tenor = strings.ToUpper(tenor)
		if tenor == "12M" {
			tenor = "1Y"
		}
		key := [2]string{tenor, date}
		if seen[key] {
			return
		}
		seen[key] = true
		results = append(results, models.Maturity{Tenor: tenor, Date: date, Weekday: weekday})
	}

	for i, pattern := range maturityPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			switch i {
			case 0:
				add(m[1], m[2], m[3])
			case 1:
				add(m[1], m[2], m[3])
			case 2:
				add(m[3], m[1], m[2])
			}
		}
	}

	backfillWeekdays(text, results)
	return results
}

// backfillWeekdays 扫描散落的星期词，按日期对齐补全
func backfillWeekdays(text string, entries []models.Maturity) {
	runes := []rune(text)
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] != '周' || !isWeekdayRune(runes[i+1]) {
			continue
		}
		start := i - backfillBefore
		if start < 0 {
			start = 0
		}
		end := i + 2 + backfillAfter
		if end > len(runes) {
			end = len(runes)
		}
		date := dateToken.FindString(string(runes[start:end]))
		if date == "" {
			continue
		}
		weekday := string(runes[i : i+2])
		for j := range entries {
			if entries[j].Date == date && entries[j].Weekday == "" {
				entries[j].Weekday = weekday
			}
		}
	}
}

func isWeekdayRune(r rune) bool {
	switch r {
	case '一', '二', '三', '四', '五', '六', '日':
		return true
	}
	return false
}
