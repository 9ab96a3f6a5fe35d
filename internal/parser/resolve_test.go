package parser

import "testing"

func TestResolveRating(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"兴业银行 AAA 6M", "AAA"},
		{"宁波银行 ＡＡＡ 3M", "AAA"},
		{"某银行 AA+ 1Y", "AA+"},
		{"某银行 ＡＡ＋ 1Y", "AA+"},
		{"某银行 aa 9M", "AA"},
		// 表序即裁决顺序："aa-" 先被 AA 的变体 "aa" 命中
		{"某银行 aa- 9M", "AA"},
		{"某银行 2A+ 6M", "AA+"},
		{"没有评级的报价 6M", "AAA"}, // 兜底
	}
	for _, tt := range tests {
		if got := ResolveRating(tt.text); got != tt.want {
			t.Errorf("ResolveRating(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestResolveRatingFuzzyFallback(t *testing.T) {
	// "ABplus" 不含任何字面变体，对 "AAplus" 相似度 5/6 过 0.8 线
	if got := ResolveRating("兴业银行 ABplus 6M"); got != "AA+" {
		t.Errorf("ResolveRating(ABplus) = %q, want AA+", got)
	}
}

func TestResolveTenor(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"兴业银行 6M 1.62%", "6M"},
		{"兴业银行 6m 1.62%", "6M"},
		{"兴业银行 六个月 1.62%", "6M"},
		{"兴业银行 1年 1.62%", "1Y"},
		{"兴业银行 12M 1.62%", "1Y"},
		{"兴业银行 一个月", "1M"},
		{"兴业银行 报价", ""}, // 无模糊回退
	}
	for _, tt := range tests {
		if got := ResolveTenor(tt.text); got != tt.want {
			t.Errorf("ResolveTenor(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestResolveWeekday(t *testing.T) {
	if got := ResolveWeekday("兴业银行 周四 6M"); got != "周四" {
		t.Errorf("ResolveWeekday = %q, want 周四", got)
	}
	if got := ResolveWeekday("兴业银行 6M"); got != "" {
		t.Errorf("ResolveWeekday = %q, want empty", got)
	}
}

func TestResolveYieldRate(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"1.62%", "1.62"},
		{"利率 1.5%", "1.50"},
		{"150", "1.50"},  // BP 风格，>=100 除以 100
		{"1.5", "1.50"},  // 已是小数，仅补位
		{"162%", "1.62"}, // 百分号形式同样过 BP 归一
		{"没有数字", ""},
	}
	for _, tt := range tests {
		if got := ResolveYieldRate(tt.text); got != tt.want {
			t.Errorf("ResolveYieldRate(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestNormalizeYieldIdempotent(t *testing.T) {
	// 二次归一不改变已归一的值
	if got := NormalizeYield(NormalizeYield("150")); got != "1.50" {
		t.Errorf("NormalizeYield twice = %q, want 1.50", got)
	}
}

func TestResolveVolume(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"兴业银行 6M 40e", "40e"},
		{"兴业银行 6M 40E", "40e"},
		{"兴业银行 6M 20亿", "20亿"},
		{"兴业银行 6M 20億", "20亿"},
		{"兴业银行 6M 50万", "50万"},
		{"兴业银行 6M 50萬", "50万"},
		{"兴业银行 6M", ""},
	}
	for _, tt := range tests {
		if got := ResolveVolume(tt.text); got != tt.want {
			t.Errorf("ResolveVolume(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
