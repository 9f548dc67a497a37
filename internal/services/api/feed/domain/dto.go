// Package domain holds DTOs for the feed http surface
package domain

import (
	feeddom "github.com/benya7/rss3-widget/internal/services/feed/domain"
)

// OpenInput opens a feed session. Empty fields fall back to the widget configuration
type OpenInput struct {
	Accounts  []string `json:"accounts,omitempty"  validate:"omitempty,max=50,dive,account" example:"vitalik.eth"`
	Networks  []string `json:"networks,omitempty"  validate:"omitempty,max=20,dive,min=1,max=64" example:"ethereum"`
	Tags      []string `json:"tags,omitempty"      validate:"omitempty,max=20,dive,min=1,max=64" example:"social"`
	Platforms []string `json:"platforms,omitempty" validate:"omitempty,max=20,dive,min=1,max=64" example:"Crossbell"`
	Limit     int      `json:"limit,omitempty"     validate:"omitempty,min=1,max=100" example:"10"`
}

// Query converts the input to a pipeline query
func (in OpenInput) Query() feeddom.Query {
	return feeddom.Query{
		Accounts: in.Accounts,
		Filters: feeddom.Filters{
			Networks:  in.Networks,
			Tags:      in.Tags,
			Platforms: in.Platforms,
			Limit:     in.Limit,
		},
	}
}

// ConfigOutput is the widget configuration an embedding page needs
type ConfigOutput struct {
	Presentation feeddom.Presentation `json:"presentation"`
	Defaults     feeddom.Query        `json:"defaults"`
}

// VerbQuery asks for the phrase of a category and subtype pair
type VerbQuery struct {
	Category string `validate:"required,min=1,max=32"`
	Subtype  string `validate:"omitempty,max=32"`
}

// VerbOutput is the classifier verb for a pair; Verb is empty when unknown
type VerbOutput struct {
	Category string `json:"category" example:"social"`
	Subtype  string `json:"subtype"  example:"post"`
	Verb     string `json:"verb"     example:"posted a note"`
}

// ProfileQuery names the address or handle to resolve
type ProfileQuery struct {
	Account string `validate:"required,account"`
}

// ProfileOutput is a resolved display name
type ProfileOutput struct {
	Address string `json:"address" example:"0x1234567890abcdef1234567890abcdef12345678"`
	Name    string `json:"name"    example:"vitalik.eth"`
}

// ClosedOutput acknowledges a closed session
type ClosedOutput struct {
	ID     string `json:"id"`
	Closed bool   `json:"closed"`
}
