// package models defines the data model for the chord harvester
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Song is a catalog entry to harvest.
type Song struct {
	Title  string `json:"song_name"`
	Artist string `json:"artist"`
	Key    int    `json:"key"`  // Pitch class 0-11, -1 when the catalog could not detect one
	Mode   int    `json:"mode"` // 0 minor, 1 major
	Genre  string `json:"genre,omitempty"`
}

// Analysis holds the encoded progressions of one chord stream.
type Analysis struct {
	WindowSize   int        `json:"window_size"`
	Progressions [][]string `json:"progressions"`
	Mask         []bool     `json:"mask"`
}

// Valid counts progressions that passed the repetition check.
func (a Analysis) Valid() int {
	n := 0
	for _, ok := range a.Mask {
		if ok {
			n++
		}
	}
	return n
}
