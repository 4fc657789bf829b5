// Package llm generates candidate hotel URLs with a chat-completion model
// when neither crawling nor the local scout found any.
package llm

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a travel assistant that returns hotel data in JSON format."

const userPromptTemplate = `List %d well-known hotels in %s.
For each hotel, provide the hotel name and its Booking.com URL.
Return a JSON object where each key is the hotel name and each value is the URL.
Make sure all URLs follow the pattern: https://www.booking.com/hotel/<country_code>/<hotel-name>.html`

// fallbackHotels is used when no API key is configured (demo mode).
var fallbackHotels = []string{
	"https://www.booking.com/hotel/us/the-plaza.html",
	"https://www.booking.com/hotel/us/waldorf-astoria-new-york.html",
	"https://www.booking.com/hotel/gb/the-ritz-london.html",
	"https://www.booking.com/hotel/sg/marina-bay-sands.html",
	"https://www.booking.com/hotel/ae/burj-al-arab.html",
}

// Generator asks an OpenAI model for hotel URLs in a location.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator builds a Generator. With an empty API key the generator runs
// in demo mode and serves the built-in fallback list.
func NewGenerator(apiKey string) *Generator {
	g := &Generator{model: openai.GPT4o}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	return g
}

// GenerateHotelURLs returns up to count candidate URLs for the location.
// The model's reply is parsed defensively: JSON objects, JSON arrays,
// bulleted or numbered prose are all accepted.
func (g *Generator) GenerateHotelURLs(ctx context.Context, location string, count int) ([]string, error) {
	if g.client == nil {
		log.Println("No OpenAI API key configured, using fallback hotel list")
		urls := fallbackHotels
		if count > 0 && count < len(urls) {
			urls = urls[:count]
		}
		return urls, nil
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptTemplate, count, location)},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("generating hotel URLs: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("generating hotel URLs: empty completion")
	}

	urls := ParseURLList(resp.Choices[0].Message.Content)
	if count > 0 && len(urls) > count {
		urls = urls[:count]
	}
	return urls, nil
}
