package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"ncd-quote/internal/models"
)

var tenorOrder = []string{"1M", "3M", "6M", "9M", "1Y"}

// tenorGroup 同一期限下的报价及其基准到期日
type tenorGroup struct {
	Tenor      string
	Maturity   models.Maturity
	Quotations []models.Quotation
}

// groupByTenor 按标准期限顺序分组，没有报价的期限不出现
func groupByTenor(quotes []models.Quotation, mats []models.Maturity) []tenorGroup {
	matByTenor := make(map[string]models.Maturity, len(mats))
	for _, m := range mats {
		matByTenor[m.Tenor] = m
	}

	byTenor := make(map[string][]models.Quotation)
	for _, q := range quotes {
		byTenor[q.Tenor] = append(byTenor[q.Tenor], q)
	}

	var groups []tenorGroup
	for _, tenor := range tenorOrder {
		items, ok := byTenor[tenor]
		if !ok {
			continue
		}
		groups = append(groups, tenorGroup{
			Tenor:      tenor,
			Maturity:   matByTenor[tenor],
			Quotations: items,
		})
	}
	return groups
}

// ExportQuotations 导出报价板为 xlsx，按期限分块，
// 块头沿用文字版的 "(期限 到期日 日期 星期)" 格式。
func (h *APIHandler) ExportQuotations(c *gin.Context) {
	quotes, err := h.store.ListQuotations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取台账失败"})
		return
	}
	mats, err := h.store.ListMaturities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取期限配置失败"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "报价板"
	f.SetSheetName("Sheet1", sheet)

	row := 1
	for _, group := range groupByTenor(quotes, mats) {
		header := fmt.Sprintf("(%s 到期日 %s %s)", group.Tenor, group.Maturity.Date, group.Maturity.Weekday)
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, cell, header)
		row++

		titleCell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetSheetRow(sheet, titleCell, &[]any{"银行", "评级", "报价日", "期限", "收益率", "量", "备注"})
		row++

		for _, q := range group.Quotations {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			f.SetSheetRow(sheet, cell, &[]any{
				q.BankName, q.Rating, q.Weekday, q.Tenor, q.YieldRate, q.Volume, q.Remarks,
			})
			row++
		}
		row++ // 组间空行
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="quotations.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[API] 导出失败: %v", err)
	}
}
