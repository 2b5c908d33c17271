// Package schemas maps output types to structured payload shapes, provider
// response schemas, and platform writing guidance.
package schemas

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/style-transfer/internal/types"
)

// Spec describes everything the dispatcher and evaluator need for one
// output type: how to decode its payload, how to constrain the provider,
// how to guide the writer, and how to get human-readable text back out.
type Spec struct {
	// New returns a pointer to a zero payload of the right shape.
	New func() any
	// ResponseSchema constrains provider decoding to the payload shape.
	ResponseSchema *genai.Schema
	// Guidance is platform-specific writing instruction text.
	Guidance string
	// MaxTokens is the generation budget for this output type.
	MaxTokens int
	// ExtractText pulls the human-readable text out of a decoded payload.
	ExtractText func(payload any) (string, error)
}

// registry is the closed table of supported output types. Unknown types are
// rejected at OutputSchema construction, so a miss here is a programming
// error surfaced by Lookup.
var registry = map[types.OutputType]Spec{
	types.OutputTweetSingle: {
		New:            func() any { return &types.TweetSingle{} },
		ResponseSchema: tweetSingleSchema(),
		Guidance:       "Create engaging, concise content suitable for Twitter. Use hashtags appropriately and make it shareable.",
		MaxTokens:      100,
		ExtractText: func(payload any) (string, error) {
			tweet, ok := payload.(*types.TweetSingle)
			if !ok {
				return "", fmt.Errorf("payload is not a TweetSingle")
			}
			return tweet.Text, nil
		},
	},
	types.OutputTweetThread: {
		New:            func() any { return &types.TweetThread{} },
		ResponseSchema: tweetThreadSchema(),
		Guidance:       "Create a connected series of tweets that tell a story. Number them and make each tweet engaging. End the thread with a concluding call-to-action.",
		MaxTokens:      500,
		ExtractText: func(payload any) (string, error) {
			thread, ok := payload.(*types.TweetThread)
			if !ok {
				return "", fmt.Errorf("payload is not a TweetThread")
			}
			texts := make([]string, 0, len(thread.Tweets))
			for _, tweet := range thread.Tweets {
				texts = append(texts, tweet.Text)
			}
			return strings.Join(texts, "\n"), nil
		},
	},
	types.OutputLinkedInPost: {
		New:            func() any { return &types.LinkedInPost{} },
		ResponseSchema: textOnlySchema("Post text content"),
		Guidance:       "Write professional but engaging content. Use bullet points for readability and end with a call-to-action.",
		MaxTokens:      300,
		ExtractText: func(payload any) (string, error) {
			post, ok := payload.(*types.LinkedInPost)
			if !ok {
				return "", fmt.Errorf("payload is not a LinkedInPost")
			}
			return post.Text, nil
		},
	},
	types.OutputLinkedInComment: {
		New:            func() any { return &types.LinkedInComment{} },
		ResponseSchema: textOnlySchema("Comment text content"),
		Guidance:       "Be professional and constructive. Add value to the conversation and keep it concise.",
		MaxTokens:      150,
		ExtractText: func(payload any) (string, error) {
			comment, ok := payload.(*types.LinkedInComment)
			if !ok {
				return "", fmt.Errorf("payload is not a LinkedInComment")
			}
			return comment.Text, nil
		},
	},
	types.OutputBlogPost: {
		New:            func() any { return &types.BlogPost{} },
		ResponseSchema: blogPostSchema(),
		Guidance:       "Create comprehensive content with proper structure. Use markdown formatting with headings and include relevant details.",
		MaxTokens:      2000,
		ExtractText: func(payload any) (string, error) {
			post, ok := payload.(*types.BlogPost)
			if !ok {
				return "", fmt.Errorf("payload is not a BlogPost")
			}
			return post.Markdown, nil
		},
	},
	types.OutputGenericText: {
		New:            func() any { return &types.GenericText{} },
		ResponseSchema: textOnlySchema("Generated text content"),
		Guidance:       "Create well-structured, engaging content appropriate for the platform.",
		MaxTokens:      2000,
		ExtractText: func(payload any) (string, error) {
			text, ok := payload.(*types.GenericText)
			if !ok {
				return "", fmt.Errorf("payload is not a GenericText")
			}
			return text.Text, nil
		},
	},
}

// Lookup returns the Spec for an output type.
func Lookup(outputType types.OutputType) (Spec, error) {
	spec, ok := registry[outputType]
	if !ok {
		return Spec{}, fmt.Errorf("no spec registered for output type %q", outputType)
	}
	return spec, nil
}

// ParsePayload decodes serialized content back into the payload shape for
// the given output type.
func ParsePayload(outputType types.OutputType, content string) (any, error) {
	spec, err := Lookup(outputType)
	if err != nil {
		return nil, err
	}

	payload := spec.New()
	if err := json.Unmarshal([]byte(content), payload); err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", outputType, err)
	}
	return payload, nil
}

// ExtractText parses serialized content and returns its human-readable text.
// Parse failures surface as errors so callers can degrade per their own
// policy rather than crash.
func ExtractText(outputType types.OutputType, content string) (string, error) {
	spec, err := Lookup(outputType)
	if err != nil {
		return "", err
	}

	payload, err := ParsePayload(outputType, content)
	if err != nil {
		return "", err
	}
	return spec.ExtractText(payload)
}

// Guidance returns the platform writing guidance for an output type, or a
// generic fallback when the type has no spec.
func Guidance(outputType types.OutputType) string {
	spec, err := Lookup(outputType)
	if err != nil {
		return "Create well-structured, engaging content appropriate for the platform."
	}
	return spec.Guidance
}

func textOnlySchema(description string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text": {Type: genai.TypeString, Description: description},
		},
		Required: []string{"text"},
	}
}

func tweetSingleSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":        {Type: genai.TypeString, Description: "Tweet text content"},
			"url_allowed": {Type: genai.TypeBoolean, Description: "Whether URLs are allowed in this tweet"},
		},
		Required: []string{"text"},
	}
}

func tweetThreadSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"tweets": {
				Type:        genai.TypeArray,
				Description: "Tweets in the thread, in order",
				Items:       tweetSingleSchema(),
			},
			"max_tweets": {Type: genai.TypeInteger, Description: "Maximum number of tweets in thread"},
		},
		Required: []string{"tweets"},
	}
}

func blogPostSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":      {Type: genai.TypeString, Description: "Blog post title"},
			"subtitle":   {Type: genai.TypeString, Description: "Blog post subtitle"},
			"author":     {Type: genai.TypeString, Description: "Author name"},
			"markdown":   {Type: genai.TypeString, Description: "Blog post content in markdown format"},
			"tags":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"categories": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"title", "markdown"},
	}
}
