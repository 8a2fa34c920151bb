package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/alimgiray/devfinder/internal/models"
	"github.com/alimgiray/devfinder/pkg/config"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// ErrNotFound is returned when GitHub has no user for a login. GraphQL-level
// errors are reported the same way.
var ErrNotFound = errors.New("user not found")

var errEmptyData = errors.New("response has no data")

type GitHubService struct {
	client *github.Client
}

// NewGitHubService builds a GraphQL client that authenticates every request with the configured token.
func NewGitHubService(cfg config.GitHubConfig) (*GitHubService, error) {
	if cfg.Token == "" {
		return nil, &config.ConfigurationError{Key: "GITHUB_TOKEN"}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	if cfg.APIURL != "" {
		baseURL, err := parseBaseURL(cfg.APIURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = baseURL
	}

	return &GitHubService{
		client: client,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API URL %q: scheme and host are required", raw)
	}
	return u, nil
}

// FetchProfile retrieves a user's profile and top repositories with a single GraphQL request
func (s *GitHubService) FetchProfile(ctx context.Context, login string) (*models.Profile, error) {
	if login == "" {
		return nil, ErrNotFound
	}

	req, err := s.client.NewRequest("POST", "graphql", &graphQLRequest{
		Query:     userQuery,
		Variables: map[string]interface{}{"login": login},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL request: %w", err)
	}

	var result graphQLResponse
	if _, err := s.client.Do(ctx, req, &result); err != nil {
		return nil, fmt.Errorf("failed to query GitHub for %q: %w", login, err)
	}

	if len(result.Errors) > 0 {
		return nil, ErrNotFound
	}
	// Do treats an empty body as success, so a missing data object is a decode failure
	if result.Data == nil {
		return nil, fmt.Errorf("failed to decode GitHub response for %q: %w", login, errEmptyData)
	}
	if result.Data.User == nil {
		return nil, ErrNotFound
	}

	return result.Data.User.toProfile(), nil
}
