package api

import (
	"testing"

	"ncd-quote/internal/models"
)

func TestGroupByTenorCanonicalOrder(t *testing.T) {
	quotes := []models.Quotation{
		{ID: "a", BankName: "兴业银行", Tenor: "1Y"},
		{ID: "b", BankName: "建设银行", Tenor: "1M"},
		{ID: "c", BankName: "宁波银行", Tenor: "1M"},
		{ID: "d", BankName: "上海银行", Tenor: "6M"},
	}
	mats := []models.Maturity{
		{Tenor: "1M", Date: "2025/10/16", Weekday: "周四"},
		{Tenor: "1Y", Date: "2026/09/16", Weekday: "周三"},
	}

	groups := groupByTenor(quotes, mats)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}

	wantOrder := []string{"1M", "6M", "1Y"}
	for i, want := range wantOrder {
		if groups[i].Tenor != want {
			t.Errorf("groups[%d].Tenor = %s, want %s", i, groups[i].Tenor, want)
		}
	}

	if len(groups[0].Quotations) != 2 {
		t.Errorf("1M group has %d quotations, want 2", len(groups[0].Quotations))
	}
	if groups[0].Maturity.Date != "2025/10/16" {
		t.Errorf("1M maturity = %+v", groups[0].Maturity)
	}
	// 没配置到期日的期限组头留空
	if groups[1].Maturity.Date != "" {
		t.Errorf("6M maturity = %+v, want zero value", groups[1].Maturity)
	}
}

func TestGroupByTenorEmpty(t *testing.T) {
	if groups := groupByTenor(nil, nil); len(groups) != 0 {
		t.Errorf("groups = %d, want 0", len(groups))
	}
}
