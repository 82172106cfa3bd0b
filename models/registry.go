package models

import "gorm.io/gorm"

// Registry is the single place the schema is declared. It is built once at
// process start and handed to components; nothing else holds entity lists.
// Foreign keys live on the struct tags above, so the registry plus the tags
// fully describe the relational shape.
type Registry struct {
	entities []interface{}
}

// NewRegistry returns the immutable entity registry in dependency order
// (referenced tables first).
func NewRegistry() *Registry {
	return &Registry{entities: []interface{}{
		&User{},
		&Category{},
		&Product{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&OutboxMessage{},
	}}
}

// Entities returns a copy so callers cannot mutate the registry.
func (r *Registry) Entities() []interface{} {
	out := make([]interface{}, len(r.entities))
	copy(out, r.entities)
	return out
}

// Migrate creates or updates every registered table.
func (r *Registry) Migrate(db *gorm.DB) error {
	return db.AutoMigrate(r.entities...)
}
