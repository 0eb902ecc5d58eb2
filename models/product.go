package models

import (
	"time"
)

// Product is the GORM model persisted in Postgres. Records are never
// hard-deleted; IsDeleted marks them inactive and is never reset.
type Product struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`
	Name       string    `gorm:"type:varchar(256);not null" json:"name"`
	Brand      string    `gorm:"type:varchar(128);not null" json:"brand"`
	Model      string    `gorm:"type:varchar(256);not null" json:"model"`
	Category   string    `gorm:"type:varchar(128);not null" json:"category"`
	Color      string    `gorm:"type:varchar(64);not null" json:"color"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency   string    `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	Stock      int       `gorm:"not null;default:0" json:"stock"`
	IsDeleted  bool      `gorm:"not null;default:false;index" json:"isDeleted"`
	ExternalID string    `gorm:"type:varchar(128);index" json:"externalId,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ProductQuery holds the optional listing filters. Absent filters impose
// no constraint; text filters match as case-insensitive substrings.
type ProductQuery struct {
	SKU      string
	Name     string
	Brand    string
	Model    string
	Category string
	Color    string
	MinPrice *float64
	MaxPrice *float64
	Currency string
	Page     int
	Limit    int
}

// ProductPage is the listing response envelope.
type ProductPage struct {
	Data       []Product `json:"data"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int64     `json:"totalPages"`
}

// StatsQuery narrows the non-deleted percentage report.
//
// HasPrice=false selects rows with a NULL price; the column is NOT NULL,
// so that branch matches nothing. The condition is kept literal.
type StatsQuery struct {
	HasPrice  *bool
	StartDate *time.Time
	EndDate   *time.Time
}

// ExternalRecord is a transient record from the generic external source.
type ExternalRecord struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Price    float64 `json:"price"`
}
