package parser

import (
	"strings"
	"unicode"
)

// 模糊匹配阈值：综合得分下限，以及编辑相似度作为决定性指标时的下限
const (
	fuzzyAcceptScore = 0.5
	editDecideScore  = 0.6
)

// editDistance 计算两个字符串的编辑距离（按 rune）
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// editSimilarity 归一化编辑相似度：1 - 距离/较长串长度
func editSimilarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(editDistance(a, b))/float64(maxLen)
}

// prefixContainScore 前缀包含得分：从长度 2 起逐个前缀查找，
// 取最长命中前缀长度与全名长度之比。
func prefixContainScore(name, text string) float64 {
	runes := []rune(name)
	if len(runes) < 2 {
		return 0
	}
	best := 0.0
	for p := 2; p <= len(runes); p++ {
		if strings.Contains(text, string(runes[:p])) {
			best = float64(p) / float64(len(runes))
		}
	}
	return best
}

// syntheticBankName 兜底方案：取文本中第一段 2-6 个汉字或字母作为银行名。
// 对非空白输入永不返回空串。
func syntheticBankName(text string) string {
	var run []rune
	for _, r := range text {
		if unicode.Is(unicode.Han, r) || unicode.IsLetter(r) {
			run = append(run, r)
			if len(run) == 6 {
				break
			}
		} else if len(run) > 0 {
			break
		}
	}
	if len(run) >= 2 {
		return string(run)
	}
	return strings.TrimSpace(text)
}

// ResolveBank 从自由文本中识别标准银行名。
// 顺序：错字订正 → 精确子串 → 模糊匹配（前缀包含 + 编辑相似度取高者）
// → 合成名兜底。matched 表示是否命中参考库。
func ResolveBank(text string) (name string, matched bool) {
	corrected := applyTypoCorrections(text)

	// 精确匹配，参考库录入顺序，先命中者胜
	for _, bank := range bankRoster {
		if strings.Contains(corrected, bank) {
			return bank, true
		}
	}

	// 模糊匹配
	bestScore := 0.0
	bestBank := ""
	bestByEdit := false
	bestEditScore := 0.0
	for _, bank := range bankRoster {
		prefix := prefixContainScore(bank, corrected)
		edit := editSimilarity(bank, corrected)
		score := prefix
		byEdit := false
		if edit > score {
			score = edit
			byEdit = true
		}
		if score > bestScore {
			bestScore = score
			bestBank = bank
			bestByEdit = byEdit
			bestEditScore = edit
		}
	}

	if bestScore >= fuzzyAcceptScore {
		if !bestByEdit || bestEditScore >= editDecideScore {
			return bestBank, true
		}
	}

	return syntheticBankName(corrected), false
}
