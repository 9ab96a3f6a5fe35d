package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// keywordEntry 关键词表项。表是有序切片而不是 map：
// 多个关键词同时出现时按表序先命中者胜，保证结果可复现。
type keywordEntry struct {
	key      string
	variants []string
}

var ratingTable = []keywordEntry{
	{"AAA", []string{"AAA", "aaa", "ＡＡＡ", "3A"}},
	{"AA+", []string{"AA+", "aa+", "ＡＡ＋", "AAplus", "2A+"}},
	{"AA", []string{"AA", "aa", "ＡＡ", "2A"}},
	{"AA-", []string{"AA-", "aa-", "ＡＡ－"}},
}

var tenorTable = []keywordEntry{
	{"1M", []string{"1M", "1个月", "一个月"}},
	{"3M", []string{"3M", "3个月", "三个月"}},
	{"6M", []string{"6M", "6个月", "六个月"}},
	{"9M", []string{"9M", "9个月", "九个月"}},
	{"1Y", []string{"1Y", "1年", "一年", "12M"}},
}

var weekdayTokens = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// ratingFuzzyThreshold 评级模糊回退的编辑相似度下限
const ratingFuzzyThreshold = 0.8

// ResolveRating 识别评级，未命中时对各变体做编辑相似度回退，
// 最终兜底为 AAA。
func ResolveRating(text string) string {
	for _, entry := range ratingTable {
		for _, kw := range entry.variants {
			if strings.Contains(text, kw) {
				return entry.key
			}
		}
	}

	// 模糊回退：按表序对每个变体检查整词相似度
	for _, entry := range ratingTable {
		for _, kw := range entry.variants {
			for _, token := range strings.Fields(text) {
				if editSimilarity(token, kw) >= ratingFuzzyThreshold {
					return entry.key
				}
			}
		}
	}
	return "AAA"
}

// ResolveTenor 识别期限，大小写不敏感。无模糊回退，未命中返回空串。
func ResolveTenor(text string) string {
	up := strings.ToUpper(text)
	for _, entry := range tenorTable {
		for _, kw := range entry.variants {
			if strings.Contains(up, kw) {
				return entry.key
			}
		}
	}
	return ""
}

// ResolveWeekday 识别星期，未命中返回空串，由调用方兜底
func ResolveWeekday(text string) string {
	for _, wd := range weekdayTokens {
		if strings.Contains(text, wd) {
			return wd
		}
	}
	return ""
}

// 利率模式，按序尝试：带百分号 → 两位以上裸数字（BP 风格）→ 一到两位小数
var yieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.?\d*)[%％]`),
	regexp.MustCompile(`(\d{2,})`),
	regexp.MustCompile(`(\d{1,2}(?:\.\d+)?)`),
}

// ResolveYieldRate 识别利率并归一成两位小数文本。
// 数值 >= 100 按 BP 报价处理除以 100（"150" → "1.50"）。
// 该启发式对真实 >=100% 的利率存在歧义，刻意保持原样。
func ResolveYieldRate(text string) string {
	for _, pattern := range yieldPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return NormalizeYield(m[1])
		}
	}
	return ""
}

// NormalizeYield 归一化利率文本，无法解析时原样返回
func NormalizeYield(raw string) string {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if v >= 100 {
		v = v / 100
	}
	return fmt.Sprintf("%.2f", v)
}

// 量的模式：数字紧跟 e/亿/万 类单位
var volumePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*[eE]`),
	regexp.MustCompile(`(\d+)\s*[亿億]`),
	regexp.MustCompile(`(\d+)\s*[万萬]`),
}

// ResolveVolume 识别募集量。单位后缀按原文中实际出现的单位字符归一，
// 与哪个模式匹配到数字无关。
func ResolveVolume(text string) string {
	for _, pattern := range volumePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1] + volumeUnit(text)
		}
	}
	return ""
}

func volumeUnit(text string) string {
	if strings.ContainsAny(text, "亿億") {
		return "亿"
	}
	if strings.ContainsAny(text, "万萬") {
		return "万"
	}
	return "e"
}
