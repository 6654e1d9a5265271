package intent

import (
	"encoding/json"
	"errors"
)

// Mood is the user's inferred emotional state
type Mood string

const (
	MoodStressed Mood = "stressed"
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodIntense  Mood = "intense"
)

// MarshalJSON encodes an absent mood as null
func (m Mood) MarshalJSON() ([]byte, error) {
	return nullable(string(m))
}

// EnergyLevel is derived from Mood, never detected on its own
type EnergyLevel string

const (
	EnergyLow  EnergyLevel = "low"
	EnergyHigh EnergyLevel = "high"
)

// MarshalJSON encodes an absent energy level as null
func (e EnergyLevel) MarshalJSON() ([]byte, error) {
	return nullable(string(e))
}

// ContentType distinguishes films from episodic content
type ContentType string

const (
	ContentMovie  ContentType = "movie"
	ContentSeries ContentType = "series"
)

// TimeCommitment is how long the user is willing to watch
type TimeCommitment string

const (
	TimeShort  TimeCommitment = "short"
	TimeMedium TimeCommitment = "medium" // implicit default, never emitted by the extractor
	TimeLong   TimeCommitment = "long"
)

// MarshalJSON encodes an absent time commitment as null
func (t TimeCommitment) MarshalJSON() ([]byte, error) {
	return nullable(string(t))
}

func nullable(s string) ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}

// Intent is the structured form of a free-text request
type Intent struct {
	Mood           Mood           `json:"mood"`
	EnergyLevel    EnergyLevel    `json:"energyLevel"`
	Genres         []string       `json:"genres"`
	AvoidGenres    []string       `json:"avoidGenres"`
	ContentType    ContentType    `json:"contentType"`
	TimeCommitment TimeCommitment `json:"timeCommitment"`
	Confidence     float64        `json:"confidence"`
}

// EnergyFor returns the energy level implied by a mood
func EnergyFor(m Mood) EnergyLevel {
	switch m {
	case MoodStressed:
		return EnergyLow
	case MoodIntense:
		return EnergyHigh
	default:
		return ""
	}
}

// ErrInvalidInput is returned for text that cannot be interpreted at all
var ErrInvalidInput = errors.New("invalid input text")

// InputError describes why a request text was rejected
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.Reason
}

// Unwrap allows errors.Is(err, ErrInvalidInput)
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
