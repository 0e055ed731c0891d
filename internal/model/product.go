package model

import (
	"encoding/json"
	"time"
)

// Product represents a catalog product
type Product struct {
	ID            uint    `json:"id" gorm:"primarykey"`
	Title         string  `json:"title" gorm:"type:varchar(255);not null"`
	Description   string  `json:"description" gorm:"type:text"`
	ShortNotes    string  `json:"short_notes" gorm:"type:text"`
	Price         float64 `json:"price" gorm:"not null"`
	DiscountPrice float64 `json:"discount_price"`
	Quantity      int     `json:"quantity" gorm:"default:0"`
	CategoryID    *uint   `json:"category_id" gorm:"index"`
	// Image holds the display-ordered list of image filenames, stored as a
	// single JSON-encoded array. Raw bytes never enter the database; files
	// live in the upload directory addressed by filename alone.
	Image     string    `json:"-" gorm:"type:text"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImageList decodes the stored image column into an ordered filename list.
// This is the only decode site: a value that was JSON-encoded twice upstream
// is unwrapped one level here, so callers never re-decode.
func (p *Product) ImageList() []string {
	return DecodeImageColumn(p.Image)
}

// SetImageList encodes the given filenames, in order, into the image column
func (p *Product) SetImageList(images []string) error {
	if images == nil {
		images = []string{}
	}

	encoded, err := json.Marshal(images)
	if err != nil {
		return err
	}
	p.Image = string(encoded)
	return nil
}

// FirstImage returns the first filename in display order, or "" when the
// product has no images. Used by list projections that show one thumbnail.
func (p *Product) FirstImage() string {
	images := p.ImageList()
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

// DecodeImageColumn decodes a raw image column value into a filename list.
// It tolerates a double-encoded column (a JSON string containing a JSON
// array), which older rows may carry.
func DecodeImageColumn(raw string) []string {
	if raw == "" {
		return nil
	}

	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err == nil {
		return images
	}

	// Double-encoded: the column is a JSON string whose content is the array.
	var nested string
	if err := json.Unmarshal([]byte(raw), &nested); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(nested), &images); err != nil {
		return nil
	}
	return images
}
