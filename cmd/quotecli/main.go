// quotecli 命令行录入工具：从标准输入读取粘贴的报价文本，
// 先调服务端解析成候选，再确认合并进台账。
//
// 用法:
//
//	cat quotes.txt | quotecli -server http://localhost:3000 -weekday 周三
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-resty/resty/v2"

	"ncd-quote/internal/models"
)

type parseResponse struct {
	Candidates []models.Candidate `json:"candidates"`
	Error      string             `json:"error"`
}

type confirmResponse struct {
	Applied    int                `json:"applied"`
	Skipped    int                `json:"skipped"`
	Quotations []models.Quotation `json:"quotations"`
	Error      string             `json:"error"`
}

func main() {
	server := flag.String("server", "http://localhost:3000", "服务端地址")
	weekday := flag.String("weekday", "周一", "默认起息星期")
	dryRun := flag.Bool("dry-run", false, "只解析不落库")
	flag.Parse()

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("读取输入失败: %v", err)
	}
	text := string(raw)
	if text == "" {
		log.Fatal("输入为空")
	}

	client := resty.New().SetBaseURL(*server)

	var parsed parseResponse
	resp, err := client.R().
		SetBody(map[string]string{"text": text, "defaultWeekday": *weekday}).
		SetResult(&parsed).
		SetError(&parsed).
		Post("/api/v1/parse/quotations")
	if err != nil {
		log.Fatalf("解析请求失败: %v", err)
	}
	if resp.IsError() {
		log.Fatalf("解析失败 (HTTP %d): %s", resp.StatusCode(), parsed.Error)
	}

	if len(parsed.Candidates) == 0 {
		fmt.Println("未识别出报价项")
		return
	}
	fmt.Printf("识别出 %d 条候选:\n", len(parsed.Candidates))
	for _, cand := range parsed.Candidates {
		fmt.Printf("  %s %s %s %s %s %s\n",
			cand.BankName, cand.Rating, cand.Weekday, cand.Tenor, cand.YieldRate, cand.Volume)
	}

	if *dryRun {
		return
	}

	var confirmed confirmResponse
	resp, err = client.R().
		SetBody(map[string]any{"candidates": parsed.Candidates, "defaultWeekday": *weekday}).
		SetResult(&confirmed).
		SetError(&confirmed).
		Post("/api/v1/quotations/confirm")
	if err != nil {
		log.Fatalf("确认请求失败: %v", err)
	}
	if resp.IsError() {
		log.Fatalf("确认失败 (HTTP %d): %s", resp.StatusCode(), confirmed.Error)
	}

	fmt.Printf("已发布 %d 条，跳过 %d 条，台账共 %d 条\n",
		confirmed.Applied, confirmed.Skipped, len(confirmed.Quotations))
}
