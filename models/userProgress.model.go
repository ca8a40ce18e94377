package models

import "gorm.io/gorm"

// UserProgress status values
const (
	StatusRead      = "read"
	StatusSubmitted = "submitted"
)

// UserProgress is the durable record of a user's latest interaction
// with one question. The composite unique index makes the
// one-row-per-(user, question) rule a database guarantee, so two
// concurrent submissions cannot create duplicates.
type UserProgress struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_question"`
	QuestionID     uint   `json:"question_id" gorm:"not null;uniqueIndex:idx_user_question"`
	BookID         uint   `json:"book_id" gorm:"index;not null"`
	UnitID         uint   `json:"unit_id" gorm:"index;not null"`
	SubUnitID      uint   `json:"sub_unit_id" gorm:"index;not null"`
	SelectedChoice *uint  `json:"selected_choice"`
	IsCorrect      bool   `json:"is_correct" gorm:"default:false"`
	Status         string `json:"status" gorm:"type:varchar(20);default:'read';not null"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// ProgressScopeKind is the closed set of scopes a progress summary can
// be computed over.
type ProgressScopeKind int

const (
	ScopeBook ProgressScopeKind = iota
	ScopeUnit
	ScopeSubUnit
)

// ProgressScope names one scope entity for a progress summary.
type ProgressScope struct {
	Kind ProgressScopeKind
	ID   uint
}

// ParseProgressScope maps the API's type/type_id query pair onto a
// typed scope. ok is false for an unknown type string.
func ParseProgressScope(kind string, id uint) (ProgressScope, bool) {
	switch kind {
	case "book":
		return ProgressScope{Kind: ScopeBook, ID: id}, true
	case "unit":
		return ProgressScope{Kind: ScopeUnit, ID: id}, true
	case "subunit":
		return ProgressScope{Kind: ScopeSubUnit, ID: id}, true
	}
	return ProgressScope{}, false
}
