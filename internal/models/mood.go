package models

import "strings"

type Mood string

const (
	MoodEnergetic Mood = "energetic"
	MoodSatisfied Mood = "satisfied"
	MoodNormal    Mood = "normal"
	MoodBloated   Mood = "bloated"
	MoodTired     Mood = "tired"
	MoodCraving   Mood = "craving"
)

type MoodType string

const (
	MoodTypePositive MoodType = "positive"
	MoodTypeNeutral  MoodType = "neutral"
	MoodTypeNegative MoodType = "negative"
	MoodTypeUnknown  MoodType = "unknown"
)

type MoodDescriptor struct {
	Mood  Mood
	Emoji string
	Label string
	Type  MoodType
	Color string
}

const unknownMoodEmoji = "❓"

// AllMoods lists the fixed mood buckets in display order.
func AllMoods() []Mood {
	return []Mood{MoodEnergetic, MoodSatisfied, MoodNormal, MoodBloated, MoodTired, MoodCraving}
}

func ParseMood(raw string) (Mood, bool) {
	mood := Mood(strings.ToLower(strings.TrimSpace(raw)))
	if !mood.IsKnown() {
		return "", false
	}
	return mood, true
}

func (mood Mood) IsKnown() bool {
	switch mood {
	case MoodEnergetic, MoodSatisfied, MoodNormal, MoodBloated, MoodTired, MoodCraving:
		return true
	default:
		return false
	}
}

func (mood Mood) Describe() MoodDescriptor {
	switch mood {
	case MoodEnergetic:
		return MoodDescriptor{Mood: mood, Emoji: "😊", Label: "Energetic", Type: MoodTypePositive, Color: "#22c55e"}
	case MoodSatisfied:
		return MoodDescriptor{Mood: mood, Emoji: "😌", Label: "Satisfied", Type: MoodTypePositive, Color: "#22c55e"}
	case MoodNormal:
		return MoodDescriptor{Mood: mood, Emoji: "😐", Label: "Normal", Type: MoodTypeNeutral, Color: "#6b7280"}
	case MoodBloated:
		return MoodDescriptor{Mood: mood, Emoji: "😟", Label: "Bloated", Type: MoodTypeNegative, Color: "#ef4444"}
	case MoodTired:
		return MoodDescriptor{Mood: mood, Emoji: "😴", Label: "Tired", Type: MoodTypeNegative, Color: "#ef4444"}
	case MoodCraving:
		return MoodDescriptor{Mood: mood, Emoji: "🍭", Label: "Sweet craving", Type: MoodTypeNegative, Color: "#ef4444"}
	default:
		return MoodDescriptor{Mood: mood, Emoji: unknownMoodEmoji, Label: string(mood), Type: MoodTypeUnknown, Color: "#6b7280"}
	}
}

func (mood Mood) IsPositive() bool {
	return mood.Describe().Type == MoodTypePositive
}

func (mood Mood) IsNegative() bool {
	return mood.Describe().Type == MoodTypeNegative
}
