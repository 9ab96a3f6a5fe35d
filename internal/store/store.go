// Package store 封装报价、期限配置与系统配置的持久化。
// 自然键 (银行名, 期限) 的唯一性由合并引擎维护，
// 存储层不加唯一约束，出现重复时上游按台账序取首条。
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ncd-quote/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListQuotations 全部报价，新的在前
func (s *Store) ListQuotations() ([]models.Quotation, error) {
	var quotes []models.Quotation
	if err := s.db.Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("查询报价失败: %w", err)
	}
	return quotes, nil
}

// InsertQuotation 新增报价。无 id 时生成，时间戳由存储层打
func (s *Store) InsertQuotation(q models.Quotation) (models.Quotation, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()
	q.CreatedAt = now
	q.UpdatedAt = now
	if err := s.db.Create(&q).Error; err != nil {
		return models.Quotation{}, fmt.Errorf("写入报价失败: %w", err)
	}
	return q, nil
}

// UpdateQuotation 按列名部分更新，返回更新后的记录；
// 记录不存在返回 (nil, nil)。
func (s *Store) UpdateQuotation(id string, updates map[string]any) (*models.Quotation, error) {
	if len(updates) == 0 {
		return nil, nil
	}
	delete(updates, "id")
	delete(updates, "created_at")
	updates["updated_at"] = time.Now().UnixMilli()

	tx := s.db.Model(&models.Quotation{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return nil, fmt.Errorf("更新报价失败: %w", tx.Error)
	}

	var updated models.Quotation
	if err := s.db.First(&updated, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("回读报价失败: %w", err)
	}
	return &updated, nil
}

// DeleteQuotation 按 id 删除
func (s *Store) DeleteQuotation(id string) error {
	if err := s.db.Delete(&models.Quotation{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("删除报价失败: %w", err)
	}
	return nil
}

// ListMaturities 全部期限配置
func (s *Store) ListMaturities() ([]models.Maturity, error) {
	var mats []models.Maturity
	if err := s.db.Find(&mats).Error; err != nil {
		return nil, fmt.Errorf("查询期限配置失败: %w", err)
	}
	return mats, nil
}

// UpsertMaturities 批量写入期限配置，并级联刷新同期限报价的
// 到期日派生字段（利率不动），返回最新全集。
func (s *Store) UpsertMaturities(mats []models.Maturity) ([]models.Maturity, error) {
	now := time.Now().UnixMilli()
	for _, m := range mats {
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenor"}},
			DoUpdates: clause.AssignmentColumns([]string{"date", "weekday"}),
		}).Create(&m).Error; err != nil {
			return nil, fmt.Errorf("写入期限配置失败: %w", err)
		}

		if err := s.db.Model(&models.Quotation{}).
			Where("tenor = ?", m.Tenor).
			Updates(map[string]any{
				"maturity_date":    m.Date,
				"maturity_weekday": m.Weekday,
				"updated_at":       now,
			}).Error; err != nil {
			return nil, fmt.Errorf("级联刷新到期日失败: %w", err)
		}
	}
	return s.ListMaturities()
}

// GetConfig 读取系统配置，键不存在返回空串
func (s *Store) GetConfig(key string) (string, error) {
	var cfg models.SystemConfig
	if err := s.db.First(&cfg, "`key` = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("读取配置失败: %w", err)
	}
	return cfg.Value, nil
}

// SetConfig 写入系统配置
func (s *Store) SetConfig(key, value string) error {
	cfg := models.SystemConfig{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&cfg).Error; err != nil {
		return fmt.Errorf("写入配置失败: %w", err)
	}
	return nil
}
