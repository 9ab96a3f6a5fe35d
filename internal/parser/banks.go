package parser

import (
	"sort"
	"strings"
)

// bankRoster 标准银行参考库。匹配按录入顺序进行，先命中者胜，
// 顺序调整会改变同名前缀银行的归一结果。
var bankRoster = []string{
	"工商银行", "农业银行", "中国银行", "建设银行", "交通银行", "邮储银行",
	"中信银行", "光大银行", "华夏银行", "广发银行", "平安银行", "招商银行",
	"浦发银行", "兴业银行", "浙商银行", "渤海银行", "恒丰银行",
	"北京银行", "上海银行", "江苏银行", "宁波银行", "南京银行", "杭州银行",
	"厦门国际银行", "汉口银行", "长沙银行", "成都银行", "重庆银行", "贵阳银行",
	"郑州银行", "青岛银行", "西安银行", "苏州银行", "河北银行", "哈尔滨银行",
	"大连银行", "盛京银行", "吉林银行", "内蒙古银行", "宁夏银行", "甘肃银行",
	"中原银行", "湖北银行", "温州银行", "台州银行", "厦门银行", "齐鲁银行",
	"威海银行", "晋商银行", "东莞银行", "广州银行", "珠海华润银行", "泰隆银行",
	"青海银行", "新疆银行", "绍兴银行", "湖州银行", "嘉兴银行", "金华银行",
	"海峡银行", "泉州银行", "赣州银行", "上饶银行", "日照银行", "烟台银行",
	"齐商银行", "华兴银行", "民泰银行", "邯郸银行", "邢台银行", "沧州银行",
	"承德银行", "衡水银行", "乌海银行", "鄂尔多斯银行", "抚顺银行", "鞍山银行",
	"丹东银行", "营口银行", "阜新银行", "辽阳银行", "铁岭银行", "朝阳银行",
	"重庆农商", "上海农商", "广州农商", "深圳农商", "东莞农商", "顺德农商",
	"天津农商", "武汉农商", "长沙农商行", "江南农商", "南海农商", "珠海农商",
	"佛山农商", "无锡农商", "常熟农商", "张家港农商", "江阴农商", "吴江农商",
	"太仓农商", "昆山农商",
}

// bigBanks 大行及股份制，对应类别 BIG
var bigBanks = []string{
	"工商银行", "农业银行", "中国银行", "建设银行", "交通银行", "邮储银行",
	"中信银行", "光大银行", "华夏银行", "广发银行", "平安银行", "招商银行",
	"浦发银行", "兴业银行", "浙商银行", "渤海银行", "恒丰银行",
}

// typoCorrections 常见简称与错字的订正表。
// 键不能是任何标准银行名的子串，否则订正会破坏正常输入。
var typoCorrections = map[string]string{
	"工行":  "工商银行",
	"农行":  "农业银行",
	"中行":  "中国银行",
	"建行":  "建设银行",
	"交行":  "交通银行",
	"招行":  "招商银行",
	"邮储行": "邮储银行",
	"很行":  "银行",
	"垠行":  "银行",
	"银⾏":  "银行",
}

// typoKeys 订正键，长键优先，避免短键抢先改写长错词的一部分
var typoKeys = func() []string {
	keys := make([]string, 0, len(typoCorrections))
	for k := range typoCorrections {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// applyTypoCorrections 对文本做错字订正，长键先替换，
// 从左到右贪婪替换且互不重叠。
func applyTypoCorrections(text string) string {
	for _, k := range typoKeys {
		text = strings.ReplaceAll(text, k, typoCorrections[k])
	}
	return text
}

// CategoryOf 根据银行名推导类别：大行及股份制为 BIG，其余为 AAA。
// 银行名被编辑后需要重新调用。
func CategoryOf(bankName string) string {
	for _, bank := range bigBanks {
		if strings.Contains(bankName, bank) {
			return "BIG"
		}
	}
	return "AAA"
}
