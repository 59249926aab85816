package model

import "gorm.io/datatypes"

// Book is a catalogue entry. Availability is set by callers and is not
// derived from transactions.
type Book struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Title         string          `json:"title" gorm:"size:255;not null"`
	Author        string          `json:"author" gorm:"size:255;not null"`
	PublishedDate *datatypes.Date `json:"published_date"`
	ISBN          *string         `json:"isbn" gorm:"column:isbn;size:13"`
	Pages         *int            `json:"pages"`
	Available     *bool           `json:"available" gorm:"default:true"`
}
