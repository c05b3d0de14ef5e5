package model

import "time"

type Item struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"size:64" json:"category,omitempty"`
	Condition   string    `gorm:"size:32" json:"condition,omitempty"`
	ImageURL    string    `gorm:"size:255" json:"image_url,omitempty"`
	Consumable  bool      `gorm:"not null;default:false" json:"consumable"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommunityItem 物品与社区的关联，一个物品可以关联零个或多个社区
type CommunityItem struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CommunityID uint64    `gorm:"not null;index;uniqueIndex:uk_community_item" json:"community_id"`
	ItemID      uint64    `gorm:"not null;index;uniqueIndex:uk_community_item" json:"item_id"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CommunityItem) TableName() string { return "community_items" }
