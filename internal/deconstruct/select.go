package deconstruct

import (
	"context"
	"log"

	"book-deconstructor/internal/deconstruct/deps"
)

// Mode describes which gateway variant is serving requests
type Mode string

const (
	ModeLive        Mode = "ready"
	ModeDemo        Mode = "demo"
	ModeUnavailable Mode = "unavailable"
)

// Select picks the demo fixture, the live Gemini gateway or, with no usable
// API key, a gateway that fails every request with a configuration message
func Select(ctx context.Context, demo bool, apiKey, modelName string) (deps.Deconstructor, Mode) {
	if demo {
		fixture, err := DemoFixture()
		if err == nil {
			log.Println("[INFO] Demo mode: every title returns the bundled sample")
			return fixture, ModeDemo
		}
		log.Printf("[WARN] Failed to load demo fixture: %v", err)
	}

	if apiKey == "" {
		log.Println("[WARN] GEMINI_API_KEY is not set")
		log.Println("[WARN] Deconstruction will be unavailable")
		return Unavailable(), ModeUnavailable
	}

	gateway, err := NewLiveGateway(ctx, apiKey, modelName)
	if err != nil {
		log.Printf("[WARN] Failed to initialize Gemini gateway: %v", err)
		log.Println("[WARN] Deconstruction will be unavailable")
		return Unavailable(), ModeUnavailable
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	log.Printf("[INFO] Gemini gateway initialized model=%s", modelName)
	return gateway, ModeLive
}
