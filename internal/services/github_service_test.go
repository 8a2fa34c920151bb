package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alimgiray/devfinder/pkg/config"
	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const octocatResponse = `{
  "data": {
    "user": {
      "url": "https://github.com/octocat",
      "login": "octocat",
      "name": "The Octocat",
      "avatarUrl": "https://avatars.githubusercontent.com/u/583231?s=80&v=4",
      "company": "@github",
      "location": "San Francisco",
      "email": "",
      "websiteUrl": "https://github.blog",
      "twitterUsername": null,
      "bio": null,
      "isHireable": false,
      "createdAt": "2011-01-25T18:44:36Z",
      "following": {"totalCount": 9},
      "followers": {"totalCount": 17640},
      "status": {"message": "Shipping", "emojiHTML": "<div><g-emoji class=\"g-emoji\" alias=\"ship\">🚢</g-emoji></div>"},
      "allRepositories": {"totalCount": 8},
      "repositories": {
        "nodes": [
          {
            "name": "Spoon-Knife",
            "url": "https://github.com/octocat/Spoon-Knife",
            "description": "This repo is for demonstration purposes only.",
            "stargazerCount": 12800,
            "forkCount": 151000,
            "primaryLanguage": {"name": "HTML", "color": "#e34c26"},
            "licenseInfo": null,
            "updatedAt": "2024-05-01T10:00:00Z",
            "repositoryTopics": {"nodes": []}
          },
          {
            "name": "Hello-World",
            "url": "https://github.com/octocat/Hello-World",
            "description": null,
            "stargazerCount": 2600,
            "forkCount": 2400,
            "primaryLanguage": null,
            "licenseInfo": {"name": "MIT License"},
            "updatedAt": "2024-04-01T10:00:00Z",
            "repositoryTopics": {"nodes": [
              {"topic": {"name": "a"}}, {"topic": {"name": "b"}}, {"topic": {"name": "c"}},
              {"topic": {"name": "d"}}, {"topic": {"name": "e"}}, {"topic": {"name": "f"}},
              {"topic": {"name": "g"}}
            ]}
          }
        ]
      }
    }
  }
}`

const notFoundResponse = `{
  "data": {"user": null},
  "errors": [{"type": "NOT_FOUND", "path": ["user"], "message": "Could not resolve to a User with the login of 'does-not-exist-xyz'."}]
}`

func newTestService(t *testing.T, handler http.HandlerFunc) *GitHubService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := NewGitHubService(config.GitHubConfig{
		Token:  "test-token",
		APIURL: server.URL,
	})
	require.NoError(t, err)
	return service
}

func TestNewGitHubService(t *testing.T) {
	t.Run("Missing token", func(t *testing.T) {
		service, err := NewGitHubService(config.GitHubConfig{})

		assert.Nil(t, service)
		var cfgErr *config.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("Default API URL", func(t *testing.T) {
		service, err := NewGitHubService(config.GitHubConfig{Token: "t", APIURL: config.DefaultAPIURL})
		require.NoError(t, err)

		assert.Equal(t, "https://api.github.com/", service.client.BaseURL.String())
	})

	t.Run("Trailing slash is added", func(t *testing.T) {
		service, err := NewGitHubService(config.GitHubConfig{Token: "t", APIURL: "https://ghe.example.com/api"})
		require.NoError(t, err)

		assert.Equal(t, "https://ghe.example.com/api/", service.client.BaseURL.String())
	})

	t.Run("Invalid API URL", func(t *testing.T) {
		_, err := NewGitHubService(config.GitHubConfig{Token: "t", APIURL: "not a url"})
		assert.Error(t, err)
	})
}

func TestFetchProfile(t *testing.T) {
	t.Run("Sends one authenticated GraphQL request", func(t *testing.T) {
		var calls int32
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)

			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/graphql", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			var body graphQLRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, userQuery, body.Query)
			assert.Equal(t, "octocat", body.Variables["login"])

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, octocatResponse)
		})

		_, err := service.FetchProfile(context.Background(), "octocat")

		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Normalizes the user", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, octocatResponse)
		})

		profile, err := service.FetchProfile(context.Background(), "octocat")
		require.NoError(t, err)

		assert.Equal(t, "octocat", profile.Login)
		assert.Equal(t, "The Octocat", profile.Name)
		assert.Equal(t, "@github", profile.Company)
		assert.Equal(t, "", profile.Bio)
		assert.Equal(t, "", profile.TwitterUsername)
		assert.Equal(t, 17640, profile.Followers)
		assert.Equal(t, 9, profile.Following)
		assert.Equal(t, 8, profile.TotalRepositories)
		assert.Equal(t, 2011, profile.CreatedAt.Year())
		require.NotNil(t, profile.Status)
		assert.Equal(t, "Shipping", profile.Status.Message)

		require.Len(t, profile.Repositories, 2)
		spoon, hello := profile.Repositories[0], profile.Repositories[1]

		assert.Equal(t, "Spoon-Knife", spoon.Name)
		require.NotNil(t, spoon.PrimaryLanguage)
		assert.Equal(t, "#e34c26", spoon.PrimaryLanguage.Color)
		assert.Equal(t, "", spoon.License)
		assert.NotNil(t, spoon.Topics)
		assert.Empty(t, spoon.Topics)

		assert.Equal(t, "", hello.Description)
		assert.Nil(t, hello.PrimaryLanguage)
		assert.Equal(t, "MIT License", hello.License)
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, hello.Topics)

		assert.GreaterOrEqual(t, spoon.StargazerCount, hello.StargazerCount)
	})

	t.Run("Null user", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data": {"user": null}}`)
		})

		profile, err := service.FetchProfile(context.Background(), "ghost-user")

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GraphQL errors", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, notFoundResponse)
		})

		_, err := service.FetchProfile(context.Background(), "does-not-exist-xyz")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Empty login skips the request", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := service.FetchProfile(context.Background(), "")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Upstream HTTP failure is not a not-found", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, `{"message": "Bad gateway"}`)
		})

		_, err := service.FetchProfile(context.Background(), "octocat")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		var ghErr *github.ErrorResponse
		require.True(t, errors.As(err, &ghErr))
		assert.Equal(t, http.StatusBadGateway, ghErr.Response.StatusCode)
	})

	t.Run("Malformed body", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data": `)
		})

		_, err := service.FetchProfile(context.Background(), "octocat")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("Empty body", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		_, err := service.FetchProfile(context.Background(), "octocat")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, errEmptyData)
	})

	t.Run("Missing data object", func(t *testing.T) {
		service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		})

		_, err := service.FetchProfile(context.Background(), "octocat")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("Transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		service, err := NewGitHubService(config.GitHubConfig{Token: "test-token", APIURL: server.URL})
		require.NoError(t, err)

		_, err = service.FetchProfile(context.Background(), "octocat")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
