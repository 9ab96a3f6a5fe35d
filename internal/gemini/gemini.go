// Package gemini 提供基于 Gemini 的报价抽取后端。
// 输出契约与内置规则解析器一致，由 PARSER_MODE 选择启用。
// 尽力而为：失败返回错误或空集，绝不返回残缺 JSON 解出的脏数据。
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"ncd-quote/internal/models"
)

type Extractor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// New 创建 Gemini 抽取器，无 API Key 时直接失败
func New(ctx context.Context, apiKey, model string, timeout time.Duration) (*Extractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("缺少 GEMINI_API_KEY，无法启用 AI 解析")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 Gemini 客户端失败: %w", err)
	}
	return &Extractor{client: client, model: model, timeout: timeout}, nil
}

const standardBanks = `
【大行及股份制 - 归类为 BIG】
工商银行 农业银行 中国银行 建设银行 交通银行 邮储银行
中信银行 光大银行 华夏银行 广发银行 平安银行 招商银行 浦发银行 兴业银行 浙商银行 渤海银行 恒丰银行

【城商行 - 归类为 AAA 或更低】
北京银行 上海银行 江苏银行 宁波银行 南京银行 杭州银行 厦门国际银行 汉口银行 长沙银行 成都银行 重庆银行 贵阳银行 郑州银行 青岛银行 西安银行 苏州银行 河北银行 哈尔滨银行 大连银行 盛京银行 吉林银行 内蒙古银行 宁夏银行 甘肃银行 中原银行 湖北银行 温州银行 台州银行 厦门银行 齐鲁银行 威海银行 晋商银行 东莞银行 广州银行 珠海华润银行 泰隆银行 青海银行 新疆银行 绍兴银行 湖州银行 嘉兴银行 金华银行 海峡银行 泉州银行 赣州银行 上饶银行 日照银行 烟台银行 齐商银行 华兴银行 民泰银行 邯郸银行 邢台银行 沧州银行 承德银行 衡水银行 乌海银行 鄂尔多斯银行 抚顺银行 鞍山银行 丹东银行 营口银行 阜新银行 辽阳银行 铁岭银行 朝阳银行

【农商行 - 归类为 AAA 或更低】
重庆农商 上海农商 广州农商 深圳农商 东莞农商 顺德农商 天津农商 武汉农商 长沙农商行 江南农商 南海农商 珠海农商 佛山农商 无锡农商 常熟农商 张家港农商 江阴农商 吴江农商 太仓农商 昆山农商
`

// ExtractQuotations 调用 Gemini 解析报价文本
func (e *Extractor) ExtractQuotations(ctx context.Context, text, defaultWeekday string) ([]models.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`你是一个专业的金融 NCD 数据录入员。

【目标格式】: "兴业银行 AAA 周一 6M 1.62%%"
【默认起息星期】: %s

【标准银行参考库】:
%s

【任务】:
解析输入的 NCD 报价文本，将其转换为 JSON 数组。
1. bankName: 提取银行名称。
2. rating: 评级，如 AAA, AA+。
3. category: 根据银行属性选择 'BIG' (大行/股份制), 'AAA' (AAA级城农商), 'AAplus' (AA+级), 或 'AA_BELOW'。
4. tenor: 统一为 1M, 3M, 6M, 9M, 1Y。
5. yieldRate: 仅提取数字，如 "1.62"。
6. volume: 提取如 "40e" 或 "20亿"。

输入内容:
%s`, defaultWeekday, standardBanks, text)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"bankName":  {Type: genai.TypeString},
					"rating":    {Type: genai.TypeString},
					"category":  {Type: genai.TypeString, Enum: []string{"BIG", "AAA", "AAplus", "AA_BELOW"}},
					"tenor":     {Type: genai.TypeString},
					"yieldRate": {Type: genai.TypeString},
					"volume":    {Type: genai.TypeString},
					"remarks":   {Type: genai.TypeString},
					"weekday":   {Type: genai.TypeString},
				},
				Required: []string{"bankName", "tenor", "yieldRate", "category"},
			},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini 报价解析请求失败: %w", err)
	}

	var cands []models.Candidate
	if err := json.Unmarshal([]byte(resp.Text()), &cands); err != nil {
		return nil, fmt.Errorf("Gemini 响应不是合法 JSON: %w", err)
	}
	for i := range cands {
		if cands[i].Weekday == "" {
			cands[i].Weekday = defaultWeekday
		}
	}
	return cands, nil
}

// ExtractMaturities 调用 Gemini 解析到期日文本
func (e *Extractor) ExtractMaturities(ctx context.Context, text string) ([]models.Maturity, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`请从以下文本中提取 NCD 到期日信息。
输入示例: "(1M 到期日 2025/10/16 周四)"
输出 JSON 数组。
文本: %s`, text)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"tenor":   {Type: genai.TypeString},
					"date":    {Type: genai.TypeString},
					"weekday": {Type: genai.TypeString},
				},
				Required: []string{"tenor", "date", "weekday"},
			},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini 到期日解析请求失败: %w", err)
	}

	var mats []models.Maturity
	if err := json.Unmarshal([]byte(resp.Text()), &mats); err != nil {
		return nil, fmt.Errorf("Gemini 响应不是合法 JSON: %w", err)
	}
	return mats, nil
}
