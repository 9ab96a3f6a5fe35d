package parser

import "testing"

func TestParseQuotationsEndToEnd(t *testing.T) {
	text := "兴业银行 AAA 周一 6M 1.62%\n建设银行 AAA 周二 6M 1.58%"
	cands := ParseQuotations(text, "周三")

	if len(cands) != 2 {
		t.Fatalf("ParseQuotations returned %d candidates, want 2", len(cands))
	}

	first := cands[0]
	if first.BankName != "兴业银行" || first.Rating != "AAA" || first.Tenor != "6M" ||
		first.YieldRate != "1.62" || first.Weekday != "周一" || first.Category != "BIG" {
		t.Errorf("first candidate = %+v", first)
	}

	second := cands[1]
	if second.BankName != "建设银行" || second.Rating != "AAA" || second.Tenor != "6M" ||
		second.YieldRate != "1.58" || second.Weekday != "周二" || second.Category != "BIG" {
		t.Errorf("second candidate = %+v", second)
	}
}

func TestParseQuotationsSplitsOnFullwidthComma(t *testing.T) {
	text := "兴业银行 6M 1.62%，建设银行 3M 1.58%；宁波银行 1Y 1.70%"
	cands := ParseQuotations(text, "周一")
	if len(cands) != 3 {
		t.Fatalf("ParseQuotations returned %d candidates, want 3", len(cands))
	}
	if cands[2].BankName != "宁波银行" || cands[2].Category != "AAA" {
		t.Errorf("third candidate = %+v", cands[2])
	}
}

func TestParseQuotationsDefaultWeekday(t *testing.T) {
	cands := ParseQuotations("兴业银行 6M 1.62%", "周三")
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].Weekday != "周三" {
		t.Errorf("weekday = %q, want 周三", cands[0].Weekday)
	}
}

func TestParseQuotationsKeepsPartialSegments(t *testing.T) {
	// 只认出银行名也要产出候选，留给操作员补全
	cands := ParseQuotations("兴业银行 待定", "周一")
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].BankName != "兴业银行" {
		t.Errorf("bankName = %q", cands[0].BankName)
	}
	if cands[0].Tenor != "" || cands[0].YieldRate != "" {
		t.Errorf("partial candidate = %+v, want empty tenor/yield", cands[0])
	}
}

func TestParseQuotationsDropsUnresolvableSegments(t *testing.T) {
	// 银行、期限、利率全部落空的段落丢弃
	cands := ParseQuotations("你好吗\n随便说句话", "周一")
	if len(cands) != 0 {
		t.Errorf("got %d candidates, want 0: %+v", len(cands), cands)
	}
}

func TestParseQuotationsDropsShortSegments(t *testing.T) {
	cands := ParseQuotations("6M\n,,\n  ", "周一")
	if len(cands) != 0 {
		t.Errorf("got %d candidates, want 0: %+v", len(cands), cands)
	}
}

func TestParseQuotationsVolume(t *testing.T) {
	cands := ParseQuotations("兴业银行 6M 1.62% 40e", "周一")
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].Volume != "40e" {
		t.Errorf("volume = %q, want 40e", cands[0].Volume)
	}
	if cands[0].YieldRate != "1.62" {
		t.Errorf("yieldRate = %q, want 1.62", cands[0].YieldRate)
	}
}
