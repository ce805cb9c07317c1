package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marinemarket_v1/internal/model"
)

// CurrencyRateRepository 汇率仓储接口
type CurrencyRateRepository interface {
	Upsert(ctx context.Context, rate *model.CurrencyRate) error
	GetAll(ctx context.Context) ([]model.CurrencyRate, error)
	Get(ctx context.Context, base, quote string) (*model.CurrencyRate, error)
}

type currencyRateRepo struct {
	db *gorm.DB
}

// NewCurrencyRateRepository 创建汇率仓储
func NewCurrencyRateRepository(db *gorm.DB) CurrencyRateRepository {
	return &currencyRateRepo{db: db}
}

func (r *currencyRateRepo) Upsert(ctx context.Context, rate *model.CurrencyRate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "base"}, {Name: "quote"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
		}).
		Create(rate).Error
}

func (r *currencyRateRepo) GetAll(ctx context.Context) ([]model.CurrencyRate, error) {
	var rates []model.CurrencyRate
	err := r.db.WithContext(ctx).Order("base, quote").Find(&rates).Error
	return rates, err
}

func (r *currencyRateRepo) Get(ctx context.Context, base, quote string) (*model.CurrencyRate, error) {
	var rate model.CurrencyRate
	err := r.db.WithContext(ctx).
		Where("base = ? AND quote = ?", base, quote).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
