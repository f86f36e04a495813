// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is one named movement logged within a session, with its sets in
// the order they were added.
type Exercise struct {
	Name string `bson:"name" json:"name"`
	Sets []Set  `bson:"sets" json:"sets"`
}

// Clone returns a copy that shares no backing array with e.
func (e Exercise) Clone() Exercise {
	sets := make([]Set, len(e.Sets))
	copy(sets, e.Sets)
	return Exercise{Name: e.Name, Sets: sets}
}

// CompletedSets counts the sets marked as completed.
func (e Exercise) CompletedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Completed {
			n++
		}
	}
	return n
}

// CatalogExercise is an entry of the exercise library the picker lists.
type CatalogExercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`                                   // Unique
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Back"
	Equipment   string             `bson:"equipment,omitempty" json:"equipment,omitempty"`     // e.g., "Barbell", "Dumbbell"
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
