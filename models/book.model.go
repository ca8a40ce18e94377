package models

import "gorm.io/gorm"

// Book is the top of the content hierarchy: Book -> Unit -> SubUnit
type Book struct {
	gorm.Model
	TitleEn string `json:"title_en"`
	TitleHi string `json:"title_hi"`

	Units []Unit `json:"units,omitempty" gorm:"foreignKey:BookID"`
}

// Unit represents a chapter inside a book
type Unit struct {
	gorm.Model
	TitleEn    string `json:"title_en"`
	TitleHi    string `json:"title_hi"`
	UnitNumber int    `json:"unit_number" gorm:"default:0"` // Unit order in book
	BookID     uint   `json:"book_id" gorm:"index;not null"`

	SubUnits []SubUnit `json:"subunits,omitempty" gorm:"foreignKey:UnitID"`
}

// SubUnit holds the readable content and owns the quiz questions.
// IsPreview marks content viewable without any subscription.
type SubUnit struct {
	gorm.Model
	TitleEn       string `json:"title_en"`
	TitleHi       string `json:"title_hi"`
	ContentEn     string `json:"content_en" gorm:"type:text"`
	ContentHi     string `json:"content_hi" gorm:"type:text"`
	SubunitNumber int    `json:"subunit_number" gorm:"default:0"`
	UnitID        uint   `json:"unit_id" gorm:"index;not null"`
	IsPreview     bool   `json:"is_preview" gorm:"default:false"`
}
