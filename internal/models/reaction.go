package models

// ReactionKind - тип направленной реакции пользователя
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Reaction - направленное ребро (from -> to) одного из двух видов.
// Уникальный индекс на (from, to, kind) гарантирует не более одной
// реакции каждого вида на упорядоченную пару; дубликат всплывает
// как конфликт на уровне стора, а не как "тихий" upsert.
type Reaction struct {
	BaseModel
	FromUserID string       `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_edge;index" json:"from_user_id"`
	ToUserID   string       `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_edge" json:"to_user_id"`
	Kind       ReactionKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_reaction_edge" json:"kind"`
}
