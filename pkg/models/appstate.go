package models

import (
	"github.com/getzep/contactner/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	TextExtractor TextExtractor
	Recognizer    EntityRecognizer
	Processor     DocumentProcessor
	Config        *config.Config
}
