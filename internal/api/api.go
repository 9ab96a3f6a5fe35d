package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ncd-quote/internal/models"
	"ncd-quote/internal/parser"
	"ncd-quote/internal/realtime"
	"ncd-quote/internal/recon"
	"ncd-quote/internal/store"
)

type APIHandler struct {
	store     *store.Store
	hub       *realtime.Hub
	extractor parser.Extractor
}

func SetupRoutes(r *gin.RouterGroup, st *store.Store, hub *realtime.Hub, extractor parser.Extractor) *APIHandler {
	handler := &APIHandler{
		store:     st,
		hub:       hub,
		extractor: extractor,
	}

	quotations := r.Group("/quotations")
	{
		quotations.GET("", handler.ListQuotations)
		quotations.POST("", handler.AddQuotation)
		quotations.POST("/confirm", handler.ConfirmQuotations)
		quotations.GET("/export", handler.ExportQuotations)
		quotations.PUT("/:id", handler.UpdateQuotation)
		quotations.DELETE("/:id", handler.DeleteQuotation)
	}

	parse := r.Group("/parse")
	{
		parse.POST("/quotations", handler.ParseQuotations)
		parse.POST("/maturities", handler.ParseMaturities)
	}

	r.GET("/maturities", handler.ListMaturities)
	r.POST("/maturities", handler.UpdateMaturities)

	r.GET("/config/:key", handler.GetConfig)
	r.PUT("/config/:key", handler.SetConfig)

	return handler
}

// ========== 报价 ==========

func (h *APIHandler) ListQuotations(c *gin.Context) {
	quotes, err := h.store.ListQuotations()
	if err != nil {
		log.Printf("[API] 获取报价失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取报价失败"})
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func (h *APIHandler) AddQuotation(c *gin.Context) {
	var quote models.Quotation
	if err := c.ShouldBindJSON(&quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if quote.Category == "" {
		quote.Category = parser.CategoryOf(quote.BankName)
	}

	saved, err := h.store.InsertQuotation(quote)
	if err != nil {
		log.Printf("[API] 新增报价失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "新增报价失败"})
		return
	}

	h.broadcast(realtime.EventQuotationAdd, saved)
	c.JSON(http.StatusOK, saved)
}

// quotationColumns 可部分更新的字段，JSON 名到列名
var quotationColumns = map[string]string{
	"bankName":        "bank_name",
	"rating":          "rating",
	"category":        "category",
	"tenor":           "tenor",
	"yieldRate":       "yield_rate",
	"weekday":         "weekday",
	"maturityDate":    "maturity_date",
	"maturityWeekday": "maturity_weekday",
	"volume":          "volume",
	"remarks":         "remarks",
}

func (h *APIHandler) UpdateQuotation(c *gin.Context) {
	id := c.Param("id")

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}

	updates := make(map[string]any)
	for field, raw := range body {
		column, ok := quotationColumns[field]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "字段 " + field + " 必须是字符串"})
			return
		}
		updates[column] = value
	}

	// 银行名被编辑后类别要跟着重算，除非请求里显式给了类别
	if bank, ok := updates["bank_name"]; ok {
		if _, explicit := updates["category"]; !explicit {
			updates["category"] = parser.CategoryOf(bank.(string))
		}
	}

	updated, err := h.store.UpdateQuotation(id, updates)
	if err != nil {
		log.Printf("[API] 修改报价失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "修改报价失败"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "报价不存在"})
		return
	}

	h.broadcast(realtime.EventQuotationUpd, updated)
	c.JSON(http.StatusOK, updated)
}

func (h *APIHandler) DeleteQuotation(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteQuotation(id); err != nil {
		log.Printf("[API] 删除报价失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除报价失败"})
		return
	}

	h.broadcast(realtime.EventQuotationDel, id)
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// ========== 确认合并 ==========

type confirmRequest struct {
	Candidates     []models.Candidate `json:"candidates"`
	DefaultWeekday string             `json:"defaultWeekday"`
}

// ConfirmQuotations 把操作员确认过的候选批量合并进台账：
// 跑合并引擎，逐条落库并广播，最后返回应用与跳过的条数。
func (h *APIHandler) ConfirmQuotations(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}

	ledger, err := h.store.ListQuotations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取台账失败"})
		return
	}
	mats, err := h.store.ListMaturities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取期限配置失败"})
		return
	}

	result := recon.Reconcile(ledger, mats, req.Candidates, req.DefaultWeekday)

	for _, action := range result.Actions {
		switch action.Kind {
		case recon.ActionInsert:
			saved, err := h.store.InsertQuotation(action.Quotation)
			if err != nil {
				log.Printf("[API] 合并落库失败: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "保存报价失败"})
				return
			}
			h.broadcast(realtime.EventQuotationAdd, saved)

		case recon.ActionUpdate:
			q := action.Quotation
			updates := map[string]any{
				"bank_name":        q.BankName,
				"rating":           q.Rating,
				"category":         q.Category,
				"tenor":            q.Tenor,
				"yield_rate":       q.YieldRate,
				"weekday":          q.Weekday,
				"maturity_date":    q.MaturityDate,
				"maturity_weekday": q.MaturityWeekday,
				"volume":           q.Volume,
				"remarks":          q.Remarks,
			}
			updated, err := h.store.UpdateQuotation(q.ID, updates)
			if err != nil || updated == nil {
				log.Printf("[API] 合并更新失败 id=%s: %v", q.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "更新报价失败"})
				return
			}
			h.broadcast(realtime.EventQuotationUpd, updated)
		}
	}

	quotes, err := h.store.ListQuotations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取台账失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applied":    result.Applied,
		"skipped":    result.Skipped,
		"quotations": quotes,
	})
}

// ========== 文本解析 ==========

type parseQuotationsRequest struct {
	Text           string `json:"text" binding:"required"`
	DefaultWeekday string `json:"defaultWeekday"`
}

func (h *APIHandler) ParseQuotations(c *gin.Context) {
	var req parseQuotationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text 不能为空"})
		return
	}

	cands, err := h.extractor.ExtractQuotations(c.Request.Context(), req.Text, req.DefaultWeekday)
	if err != nil {
		// AI 后端失败是可恢复错误，提示重新提交即可
		log.Printf("[API] 报价解析失败: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "解析失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": cands})
}

type parseMaturitiesRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *APIHandler) ParseMaturities(c *gin.Context) {
	var req parseMaturitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text 不能为空"})
		return
	}

	mats, err := h.extractor.ExtractMaturities(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("[API] 到期日解析失败: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "解析失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"maturities": mats})
}

// ========== 期限配置 ==========

func (h *APIHandler) ListMaturities(c *gin.Context) {
	mats, err := h.store.ListMaturities()
	if err != nil {
		log.Printf("[API] 获取期限配置失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取期限配置失败"})
		return
	}
	c.JSON(http.StatusOK, mats)
}

// UpdateMaturities 批量或单条更新期限配置。
// 升级后的全集广播给所有客户端，各端据此重算派生到期日。
func (h *APIHandler) UpdateMaturities(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}

	var mats []models.Maturity
	if err := json.Unmarshal(raw, &mats); err != nil {
		var single models.Maturity
		if err := json.Unmarshal(raw, &single); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
			return
		}
		mats = []models.Maturity{single}
	}

	all, err := h.store.UpsertMaturities(mats)
	if err != nil {
		log.Printf("[API] 更新期限配置失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新期限配置失败"})
		return
	}

	h.broadcast(realtime.EventMaturityUpdate, all)
	c.JSON(http.StatusOK, all)
}

// ========== 系统配置 ==========

func (h *APIHandler) GetConfig(c *gin.Context) {
	key := c.Param("key")
	value, err := h.store.GetConfig(key)
	if err != nil {
		log.Printf("[API] 获取配置失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取配置失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

func (h *APIHandler) SetConfig(c *gin.Context) {
	key := c.Param("key")
	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体格式错误"})
		return
	}
	if err := h.store.SetConfig(key, body.Value); err != nil {
		log.Printf("[API] 设置配置失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "设置配置失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": body.Value})
}

func (h *APIHandler) broadcast(name string, payload any) {
	ev, err := realtime.NewEvent(name, payload)
	if err != nil {
		log.Printf("[API] 事件编码失败: %v", err)
		return
	}
	h.hub.Broadcast(ev)
}
