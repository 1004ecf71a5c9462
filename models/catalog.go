package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product kinds. Only KindTicket products get QR credentials on settlement.
const (
	ProductKindGoods  = "goods"
	ProductKindTicket = "ticket"
)

// Product and Store are owned by the catalog service; the settlement
// pipeline reads them for issuance eligibility and revenue grouping only.
type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Kind      string         `gorm:"type:varchar(20);not null;default:'goods'" json:"kind"`
	Price     int64          `gorm:"not null" json:"price"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Store struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
