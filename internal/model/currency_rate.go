package model

// CurrencyRate 汇率快照，由定时任务维护
// Rate 表示 1 单位 Base 兑多少 Quote
type CurrencyRate struct {
	BaseModel
	Base  string  `gorm:"size:5;not null;uniqueIndex:idx_pair" json:"base"`
	Quote string  `gorm:"size:5;not null;uniqueIndex:idx_pair" json:"quote"`
	Rate  float64 `gorm:"not null" json:"rate"`
}

func (CurrencyRate) TableName() string {
	return "currency_rates"
}
