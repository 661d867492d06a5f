package translation

import "github.com/wildpine/wildpine/internal/types"

// EntityType names the kinds of content that can be localized
type EntityType string

const (
	EntityTypeRetreat  EntityType = "retreat"
	EntityTypeBlogPost EntityType = "blog_post"
)

// Translation stores one localized field of one entity
type Translation struct {
	ID         string     `db:"id" json:"id"`
	EntityType EntityType `db:"entity_type" json:"entity_type"`
	EntityID   string     `db:"entity_id" json:"entity_id"`
	Locale     string     `db:"locale" json:"locale"`
	Field      string     `db:"field" json:"field"`
	Value      string     `db:"value" json:"value"`

	types.BaseModel
}
