package models

import "time"

// KVEntry 会话持久化键值（购物车、优惠码、登录凭证）
type KVEntry struct {
	Key       string    `gorm:"column:kv_key;primaryKey;type:varchar(191)" json:"key"` // 命名空间内的完整键
	Value     string    `gorm:"type:text;not null" json:"value"`                       // 原始值
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                               // 更新时间
}

// TableName 指定表名
func (KVEntry) TableName() string {
	return "session_kv_entries"
}
