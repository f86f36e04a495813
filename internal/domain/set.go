package domain

import "strings"

// VideoRef is an opaque handle to externally stored video media, typically an
// object storage key. The empty value means no video.
type VideoRef string

// SetField names one of the free-text fields of a Set.
type SetField string

const (
	FieldWeight SetField = "weight"
	FieldReps   SetField = "reps"
	FieldRPE    SetField = "rpe"
	FieldTUT    SetField = "tut"
)

// Valid reports whether f is one of the editable text fields.
func (f SetField) Valid() bool {
	switch f {
	case FieldWeight, FieldReps, FieldRPE, FieldTUT:
		return true
	}
	return false
}

// Set is one discrete attempt at an exercise. Numeric values are kept as the
// text the athlete typed; an empty string means unset.
type Set struct {
	Weight     string   `bson:"weight" json:"weight"`
	Reps       string   `bson:"reps" json:"reps"`
	RPE        string   `bson:"rpe" json:"rpe"`
	TUT        string   `bson:"tut" json:"tut"`
	Completed  bool     `bson:"completed" json:"completed"`
	Video      VideoRef `bson:"video,omitempty" json:"video,omitempty"`
	IsVideoSet bool     `bson:"isVideoSet" json:"isVideoSet"`
}

// NewVideoSet returns a set created through the video logging path.
func NewVideoSet(video VideoRef) Set {
	return Set{Video: video, IsVideoSet: true}
}

// Completable reports whether the set carries enough data to be marked done:
// both weight and reps must be non-blank.
func (s Set) Completable() bool {
	return strings.TrimSpace(s.Weight) != "" && strings.TrimSpace(s.Reps) != ""
}

// HasVideo reports whether a clip is attached.
func (s Set) HasVideo() bool {
	return s.Video != ""
}

// With returns a copy of s with field replaced by value. Unknown fields leave
// the copy unchanged. A completed set that loses its weight or reps is no
// longer completed.
func (s Set) With(field SetField, value string) Set {
	switch field {
	case FieldWeight:
		s.Weight = value
	case FieldReps:
		s.Reps = value
	case FieldRPE:
		s.RPE = value
	case FieldTUT:
		s.TUT = value
	}
	if s.Completed && !s.Completable() {
		s.Completed = false
	}
	return s
}
