package types

import (
	"time"
)

// Guideline is one immutable entry of the regulatory rule corpus. The corpus
// is loaded in bulk, ordered by category, and never mutated by the pipeline.
type Guideline struct {
	ID                  string    `gorm:"primaryKey;column:id" json:"id"`
	Category            string    `gorm:"not null;index;column:category" json:"category"`
	Subcategory         string    `gorm:"column:subcategory" json:"subcategory"`
	SourceDocument      string    `gorm:"column:source_document" json:"source_document"`
	SectionReference    string    `gorm:"column:section_reference" json:"section_reference"`
	RuleText            string    `gorm:"not null;column:rule_text" json:"rule_text"`
	PlainEnglishSummary string    `gorm:"column:plain_english_summary" json:"plain_english_summary"`
	RecommendedAction   string    `gorm:"column:recommended_action" json:"recommended_action"`
	CreatedAt           time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Guideline) TableName() string {
	return "guideline"
}
