// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// TweetSingle is the payload shape for a single tweet.
type TweetSingle struct {
	Text       string `json:"text"`
	URLAllowed bool   `json:"url_allowed"`
}

// TweetThread is the payload shape for a connected series of tweets.
type TweetThread struct {
	Tweets    []TweetSingle `json:"tweets"`
	MaxTweets int           `json:"max_tweets,omitempty"`
}

// LinkedInPost is the payload shape for a LinkedIn post.
type LinkedInPost struct {
	Text          string `json:"text"`
	MultimediaURL string `json:"multimedia_url,omitempty"`
}

// LinkedInComment is the payload shape for a LinkedIn comment.
type LinkedInComment struct {
	Text string `json:"text"`
}

// BlogPost is the payload shape for a long-form article.
type BlogPost struct {
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	Author     string     `json:"author,omitempty"`
	Markdown   string     `json:"markdown"`
	Tags       []string   `json:"tags,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
}

// GenericText is the payload shape used when no platform-specific schema is
// requested.
type GenericText struct {
	Text string `json:"text"`
}
