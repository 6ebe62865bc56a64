package models

// Speaker identifies who produced a transcript turn
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ContextMode selects a behavioral preset for the tutoring backend
type ContextMode string

const (
	ModeGeneral  ContextMode = "general"
	ModeWriting  ContextMode = "writing"
	ModePlanning ContextMode = "planning"
)

// Valid reports whether the mode is one the tutoring backend accepts
func (m ContextMode) Valid() bool {
	switch m {
	case ModeGeneral, ModeWriting, ModePlanning:
		return true
	}
	return false
}

// ChatMessage is one turn of a tutoring conversation
type ChatMessage struct {
	Speaker Speaker `json:"role"`
	Text    string  `json:"content"`
}
