package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/savagerise/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository 会话键值数据访问接口
type KVRepository interface {
	Get(key string) (*models.KVEntry, error)
	Put(key, value string) error
	Delete(key string) error
	DeleteByPrefix(prefix string) (int64, error)
	WithTx(tx *gorm.DB) *GormKVRepository
}

// GormKVRepository GORM 实现
type GormKVRepository struct {
	db *gorm.DB
}

// NewKVRepository 创建键值仓库
func NewKVRepository(db *gorm.DB) *GormKVRepository {
	return &GormKVRepository{db: db}
}

// WithTx 绑定事务
func (r *GormKVRepository) WithTx(tx *gorm.DB) *GormKVRepository {
	if tx == nil {
		return r
	}
	return &GormKVRepository{db: tx}
}

// Get 获取键值，不存在时返回 nil
func (r *GormKVRepository) Get(key string) (*models.KVEntry, error) {
	var entry models.KVEntry
	if err := r.db.Where("kv_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Put 写入或覆盖键值
func (r *GormKVRepository) Put(key, value string) error {
	entry := &models.KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
}

// Delete 删除键值（不存在时不报错）
func (r *GormKVRepository) Delete(key string) error {
	return r.db.Where("kv_key = ?", key).Delete(&models.KVEntry{}).Error
}

// DeleteByPrefix 删除指定前缀下的全部键值
func (r *GormKVRepository) DeleteByPrefix(prefix string) (int64, error) {
	if strings.TrimSpace(prefix) == "" {
		return 0, nil
	}
	result := r.db.Where("kv_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").Delete(&models.KVEntry{})
	return result.RowsAffected, result.Error
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
