package restaurant

import (
	"time"

	"github.com/google/uuid"
)

// TimeWindow is one open interval within a day, in HH:MM local time.
type TimeWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// OpeningDay describes opening hours for one weekday.
type OpeningDay struct {
	Day     string       `json:"day"`
	Open    bool         `json:"open"`
	Windows []TimeWindow `json:"windows"`
}

// Restaurant is the business record backing both the admin CMS and the
// public site. Images holds storage keys in display order; it is the
// authoritative list the gallery commit protocol reconciles against.
type Restaurant struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Address      string       `json:"address"`
	PhoneNumber  string       `json:"phoneNumber"`
	Images       []string     `json:"images"`
	OpeningHours []OpeningDay `json:"openingHours"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Patch is a partial update; nil fields are left untouched. Images, when
// present, replaces the whole ordered key list in a single write.
type Patch struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	Address      *string       `json:"address"`
	PhoneNumber  *string       `json:"phoneNumber"`
	Images       *[]string     `json:"images"`
	OpeningHours *[]OpeningDay `json:"openingHours"`
}
