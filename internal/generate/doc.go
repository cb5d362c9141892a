package generate

// Package generate turns text prompts into images through the Gemini API.
