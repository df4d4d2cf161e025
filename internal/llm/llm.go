// Package llm defines the provider transport interface for the interview
// engine.
package llm

import "context"

// Client is a minimal interface for making generative-AI provider calls.
// Implementations provide the actual HTTP transport to a specific provider.
type Client interface {
	// Complete sends a system + user prompt and returns the text response.
	Complete(ctx context.Context, system, user string) (string, error)
	// Transcribe converts the audio of the referenced media file to text.
	Transcribe(ctx context.Context, mediaPath string) (string, error)
}
