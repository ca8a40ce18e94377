package models

import "gorm.io/gorm"

// Question belongs to a subunit. Exactly one of its choices is expected
// to carry IsCorrect.
type Question struct {
	gorm.Model
	TextEn    string `json:"text_en" gorm:"type:text"`
	TextHi    string `json:"text_hi" gorm:"type:text"`
	Active    bool   `json:"active" gorm:"default:true"`
	Reported  bool   `json:"reported" gorm:"default:false"`
	SubUnitID uint   `json:"subunit_id" gorm:"index;not null"`

	Choices []Choice `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
}

// Choice is one answer option. IsCorrect is never serialized so the
// answer stays hidden on every API response.
type Choice struct {
	gorm.Model
	TextEn     string `json:"text_en" gorm:"type:text"`
	TextHi     string `json:"text_hi" gorm:"type:text"`
	IsCorrect  bool   `json:"-" gorm:"default:false"`
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
}

// ReportedQuestion is a user complaint against a question
type ReportedQuestion struct {
	gorm.Model
	ExplanationEn string `json:"explanation_en" gorm:"type:text"`
	ExplanationHi string `json:"explanation_hi" gorm:"type:text"`
	Resolved      bool   `json:"resolved" gorm:"default:false"`
	QuestionID    uint   `json:"question_id" gorm:"index;not null"`
}
