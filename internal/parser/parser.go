package parser

import (
	"context"
	"regexp"
	"strings"

	"ncd-quote/internal/models"
)

// Extractor 报价抽取能力的统一契约。
// 规则解析与远端 AI 解析共用同一输出形状，下游合并引擎不感知来源。
type Extractor interface {
	ExtractQuotations(ctx context.Context, text, defaultWeekday string) ([]models.Candidate, error)
	ExtractMaturities(ctx context.Context, text string) ([]models.Maturity, error)
}

// RuleExtractor 内置规则解析器，纯函数实现，不会失败
type RuleExtractor struct{}

func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

func (RuleExtractor) ExtractQuotations(_ context.Context, text, defaultWeekday string) ([]models.Candidate, error) {
	return ParseQuotations(text, defaultWeekday), nil
}

func (RuleExtractor) ExtractMaturities(_ context.Context, text string) ([]models.Maturity, error) {
	return ParseMaturityDates(text), nil
}

// 分段：换行、半/全角逗号分号、制表符
var segmentSplitter = regexp.MustCompile(`[\n,，;；\t]+`)

// minSegmentRunes 过短的段落没有解析价值
const minSegmentRunes = 3

// ParseQuotations 把整段自由文本拆成报价候选项。
// 每段独立跑一遍全部字段识别；银行、期限、利率至少识别出一项
// 才产出候选，全部落空的段落丢弃。字段缺失留空，交由操作员补全。
func ParseQuotations(text, defaultWeekday string) []models.Candidate {
	var results []models.Candidate
	for _, segment := range segmentSplitter.Split(text, -1) {
		segment = strings.TrimSpace(segment)
		if len([]rune(segment)) < minSegmentRunes {
			continue
		}
		if cand, ok := parseSegment(segment, defaultWeekday); ok {
			results = append(results, cand)
		}
	}
	return results
}

func parseSegment(segment, defaultWeekday string) (models.Candidate, bool) {
	bankName, bankMatched := ResolveBank(segment)
	tenor := ResolveTenor(segment)
	yieldRate := ResolveYieldRate(segment)

	if !bankMatched && tenor == "" && yieldRate == "" {
		return models.Candidate{}, false
	}

	weekday := ResolveWeekday(segment)
	if weekday == "" {
		weekday = defaultWeekday
	}

	return models.Candidate{
		BankName:  bankName,
		Rating:    ResolveRating(segment),
		Category:  CategoryOf(bankName),
		Tenor:     tenor,
		YieldRate: yieldRate,
		Volume:    ResolveVolume(segment),
		Weekday:   weekday,
	}, true
}
