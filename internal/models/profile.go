package models

import "time"

const (
	// MaxRepositories is how many top repositories a profile carries.
	MaxRepositories = 10
	// MaxTopics is how many topics are kept per repository.
	MaxTopics = 6
)

// Profile is a snapshot of a GitHub user's public profile and top repositories.
// Optional text fields are empty strings when GitHub has no value for them.
type Profile struct {
	Login             string       `json:"login"`
	Name              string       `json:"name"`
	AvatarURL         string       `json:"avatarUrl"`
	URL               string       `json:"url"`
	Email             string       `json:"email"`
	Location          string       `json:"location"`
	Company           string       `json:"company"`
	WebsiteURL        string       `json:"websiteUrl"`
	TwitterUsername   string       `json:"twitterUsername"`
	Bio               string       `json:"bio"`
	IsHireable        bool         `json:"isHireable"`
	CreatedAt         time.Time    `json:"createdAt"`
	Followers         int          `json:"followers"`
	Following         int          `json:"following"`
	TotalRepositories int          `json:"totalRepositories"`
	Status            *Status      `json:"status"`
	Repositories      []Repository `json:"repositories"`
}

type Status struct {
	Message   string `json:"message"`
	EmojiHTML string `json:"emojiHTML"`
}

// Repository is one entry of a profile's top repositories, ordered by stars.
type Repository struct {
	Name            string    `json:"name"`
	URL             string    `json:"url"`
	Description     string    `json:"description"`
	StargazerCount  int       `json:"stargazerCount"`
	ForkCount       int       `json:"forkCount"`
	PrimaryLanguage *Language `json:"primaryLanguage"`
	License         string    `json:"license"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Topics          []string  `json:"topics"`
}

type Language struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PageTitle returns the document title for the profile page.
func (p *Profile) PageTitle() string {
	if p == nil || p.Name == "" {
		return NotFoundTitle
	}
	return p.Name + " - DevFinder"
}

// NotFoundTitle is used when there is no display name to show.
const NotFoundTitle = "User not found - DevFinder"

// HasStatus reports whether the status has both a message and an emoji to show.
func (p *Profile) HasStatus() bool {
	return p.Status != nil && p.Status.Message != "" && p.Status.EmojiHTML != ""
}

// TwitterURL links to the user's Twitter profile, or "" when there is none.
func (p *Profile) TwitterURL() string {
	if p.TwitterUsername == "" {
		return ""
	}
	return "https://twitter.com/" + p.TwitterUsername
}
