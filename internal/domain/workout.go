package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLog is the serializable record of a finished session handed to the
// persistence layer when the athlete ends the workout.
type WorkoutLog struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID          string             `bson:"sessionId" json:"sessionId"` // Live session the log was taken from
	AthleteID          string             `bson:"athleteId" json:"athleteId"`
	Exercises          []Exercise         `bson:"exercises" json:"exercises"`
	ElapsedSeconds     int                `bson:"elapsedSeconds" json:"elapsedSeconds"`
	TotalSetsCompleted int                `bson:"totalSetsCompleted" json:"totalSetsCompleted"`
	StartedAt          time.Time          `bson:"startedAt" json:"startedAt"`
	EndedAt            time.Time          `bson:"endedAt" json:"endedAt"`
}
