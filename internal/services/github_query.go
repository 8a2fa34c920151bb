package services

import (
	"time"

	"github.com/alimgiray/devfinder/internal/models"
)

const userQuery = `query ProfileQuery($login: String!) {
  user(login: $login) {
    url
    login
    name
    avatarUrl(size: 80)
    company
    location
    email
    websiteUrl
    twitterUsername
    bio
    isHireable
    createdAt
    following {
      totalCount
    }
    followers {
      totalCount
    }
    status {
      message
      emojiHTML
    }
    allRepositories: repositories {
      totalCount
    }
    repositories(
      ownerAffiliations: OWNER
      orderBy: { field: STARGAZERS, direction: DESC }
      first: 10
      privacy: PUBLIC
    ) {
      nodes {
        name
        url
        description
        stargazerCount
        forkCount
        primaryLanguage {
          name
          color
        }
        licenseInfo {
          name
        }
        updatedAt
        repositoryTopics(first: 6) {
          nodes {
            topic {
              name
            }
          }
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Data *struct {
		User *userNode `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type graphQLError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type totalCount struct {
	TotalCount int `json:"totalCount"`
}

type userNode struct {
	URL             string     `json:"url"`
	Login           string     `json:"login"`
	Name            *string    `json:"name"`
	AvatarURL       string     `json:"avatarUrl"`
	Company         *string    `json:"company"`
	Location        *string    `json:"location"`
	Email           string     `json:"email"`
	WebsiteURL      *string    `json:"websiteUrl"`
	TwitterUsername *string    `json:"twitterUsername"`
	Bio             *string    `json:"bio"`
	IsHireable      bool       `json:"isHireable"`
	CreatedAt       time.Time  `json:"createdAt"`
	Following       totalCount `json:"following"`
	Followers       totalCount `json:"followers"`
	Status          *struct {
		Message   *string `json:"message"`
		EmojiHTML *string `json:"emojiHTML"`
	} `json:"status"`
	AllRepositories totalCount `json:"allRepositories"`
	Repositories    struct {
		Nodes []repositoryNode `json:"nodes"`
	} `json:"repositories"`
}

type repositoryNode struct {
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	Description     *string `json:"description"`
	StargazerCount  int     `json:"stargazerCount"`
	ForkCount       int     `json:"forkCount"`
	PrimaryLanguage *struct {
		Name  string  `json:"name"`
		Color *string `json:"color"`
	} `json:"primaryLanguage"`
	LicenseInfo *struct {
		Name string `json:"name"`
	} `json:"licenseInfo"`
	UpdatedAt        time.Time `json:"updatedAt"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic struct {
				Name string `json:"name"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toProfile builds the full profile in one pass so callers never see a partial record.
func (u *userNode) toProfile() *models.Profile {
	profile := &models.Profile{
		Login:             u.Login,
		Name:              stringValue(u.Name),
		AvatarURL:         u.AvatarURL,
		URL:               u.URL,
		Email:             u.Email,
		Location:          stringValue(u.Location),
		Company:           stringValue(u.Company),
		WebsiteURL:        stringValue(u.WebsiteURL),
		TwitterUsername:   stringValue(u.TwitterUsername),
		Bio:               stringValue(u.Bio),
		IsHireable:        u.IsHireable,
		CreatedAt:         u.CreatedAt,
		Followers:         u.Followers.TotalCount,
		Following:         u.Following.TotalCount,
		TotalRepositories: u.AllRepositories.TotalCount,
		Repositories:      make([]models.Repository, 0, len(u.Repositories.Nodes)),
	}

	if u.Status != nil {
		profile.Status = &models.Status{
			Message:   stringValue(u.Status.Message),
			EmojiHTML: stringValue(u.Status.EmojiHTML),
		}
	}

	nodes := u.Repositories.Nodes
	if len(nodes) > models.MaxRepositories {
		nodes = nodes[:models.MaxRepositories]
	}
	for _, node := range nodes {
		profile.Repositories = append(profile.Repositories, node.toRepository())
	}

	return profile
}

func (r *repositoryNode) toRepository() models.Repository {
	repo := models.Repository{
		Name:           r.Name,
		URL:            r.URL,
		Description:    stringValue(r.Description),
		StargazerCount: r.StargazerCount,
		ForkCount:      r.ForkCount,
		UpdatedAt:      r.UpdatedAt,
		Topics:         make([]string, 0, len(r.RepositoryTopics.Nodes)),
	}

	if r.PrimaryLanguage != nil {
		repo.PrimaryLanguage = &models.Language{
			Name:  r.PrimaryLanguage.Name,
			Color: stringValue(r.PrimaryLanguage.Color),
		}
	}
	if r.LicenseInfo != nil {
		repo.License = r.LicenseInfo.Name
	}

	for _, node := range r.RepositoryTopics.Nodes {
		if len(repo.Topics) == models.MaxTopics {
			break
		}
		repo.Topics = append(repo.Topics, node.Topic.Name)
	}

	return repo
}
