package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction records a book being issued to a user.
type Transaction struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	BookID     *uint           `json:"book_id" gorm:"index"`
	UserID     *uint           `json:"user_id" gorm:"index"`
	IssueDate  datatypes.Date  `json:"issue_date"`
	ReturnDate *datatypes.Date `json:"return_date"`

	// Relations
	Book *Book `json:"-" gorm:"foreignKey:BookID"`
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate defaults the issue date to the creation day.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if time.Time(t.IssueDate).IsZero() {
		t.IssueDate = datatypes.Date(time.Now().UTC())
	}
	return nil
}
