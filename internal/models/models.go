package models

// Quotation NCD 报价记录
// yieldRate 为格式化后的文本（两位小数，可能带 ↑/↓ 方向标记），
// 合并比较时需要先剥掉非数字字符再解析。
type Quotation struct {
	ID              string `json:"id" gorm:"column:id;primaryKey"`
	BankName        string `json:"bankName" gorm:"column:bank_name;not null"`
	Rating          string `json:"rating" gorm:"column:rating;default:''"`
	Category        string `json:"category" gorm:"column:category;default:''"` // BIG, AAA, AAplus, AA_BELOW
	Tenor           string `json:"tenor" gorm:"column:tenor;not null"`         // 1M, 3M, 6M, 9M, 1Y
	YieldRate       string `json:"yieldRate" gorm:"column:yield_rate;default:''"`
	Weekday         string `json:"weekday" gorm:"column:weekday;default:''"` // 起息日
	MaturityDate    string `json:"maturityDate" gorm:"column:maturity_date;default:''"`
	MaturityWeekday string `json:"maturityWeekday" gorm:"column:maturity_weekday;default:''"`
	Volume          string `json:"volume" gorm:"column:volume;default:''"` // 募集量，如 40e
	Remarks         string `json:"remarks" gorm:"column:remarks;default:''"`
	CreatedAt       int64  `json:"createdAt" gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt       int64  `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// Maturity 每个期限的基准到期日
type Maturity struct {
	Tenor   string `json:"tenor" gorm:"column:tenor;primaryKey"`
	Date    string `json:"date" gorm:"column:date;not null"`
	Weekday string `json:"weekday" gorm:"column:weekday;not null"`
}

func (Maturity) TableName() string {
	return "maturities"
}

// SystemConfig 键值配置表
type SystemConfig struct {
	Key   string `json:"key" gorm:"column:key;primaryKey"`
	Value string `json:"value" gorm:"column:value;not null"`
}

func (SystemConfig) TableName() string {
	return "system_config"
}

// Candidate 解析流水线产出的报价候选项，未持久化，
// 任意字段可为空，由操作员确认补全后才会进入台账。
type Candidate struct {
	BankName  string `json:"bankName"`
	Rating    string `json:"rating"`
	Category  string `json:"category"`
	Tenor     string `json:"tenor"`
	YieldRate string `json:"yieldRate"`
	Volume    string `json:"volume"`
	Weekday   string `json:"weekday"`
	Remarks   string `json:"remarks"`
}
