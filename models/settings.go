package models

import (
	"time"

	"gorm.io/gorm"
)

// SiteSettings is the single-row table of staff-editable storefront
// content. MinimumOrderNotice is free text shown to customers and parsed
// for the checkout lead-time gate.
type SiteSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`

	HeroHeadline     string `json:"hero_headline"`
	HeroSubheadline  string `json:"hero_subheadline"`
	AboutTitle       string `json:"about_title"`
	AboutDescription string `json:"about_description"`

	OpeningHours       string `json:"opening_hours"`
	MinimumOrderNotice string `gorm:"default:'24 hours'" json:"minimum_order_notice"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings is what the storefront runs on before staff have saved
// anything.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		BusinessName:       "Pastries with Love",
		HeroHeadline:       "Freshly Baked, Made to Order",
		HeroSubheadline:    "Artisan cakes and pastries for every occasion",
		AboutTitle:         "Our Bakery",
		AboutDescription:   "Every order is baked fresh, which is why we ask for a little notice.",
		OpeningHours:       "Mon-Sat 8:00-18:00",
		MinimumOrderNotice: "24 hours",
	}
}

// LoadSettings returns the saved settings row, or the defaults when none
// has been saved yet. Reads never fail the caller; a broken settings table
// must not take the storefront down.
func LoadSettings(db *gorm.DB) SiteSettings {
	var settings SiteSettings
	if err := db.First(&settings).Error; err != nil {
		return DefaultSettings()
	}
	return settings
}
