package services

import (
	"fmt"
	"strings"

	"github.com/alimgiray/devfinder/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	profileSheet      = "Profile"
	repositoriesSheet = "Repositories"
)

var repositoryColumns = []string{"Name", "URL", "Description", "Language", "Stars", "Forks", "License", "Updated", "Topics"}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportFilename returns the download name for a profile workbook.
func ExportFilename(login string) string {
	return login + "-devfinder.xlsx"
}

// BuildWorkbook writes the profile and its top repositories into a two-sheet workbook
func (s *ExportService) BuildWorkbook(profile *models.Profile) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with "Sheet1"; rename it instead of adding a third sheet
	if err := f.SetSheetName("Sheet1", profileSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(repositoriesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := s.writeProfile(f, profile); err != nil {
		f.Close()
		return nil, err
	}
	if err := s.writeRepositories(f, profile.Repositories); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func (s *ExportService) writeProfile(f *excelize.File, profile *models.Profile) error {
	status := ""
	if profile.Status != nil {
		status = profile.Status.Message
	}

	rows := [][]interface{}{
		{"Field", "Value"},
		{"Login", profile.Login},
		{"Name", profile.Name},
		{"Profile URL", profile.URL},
		{"Email", profile.Email},
		{"Location", profile.Location},
		{"Company", profile.Company},
		{"Website", profile.WebsiteURL},
		{"Twitter", profile.TwitterUsername},
		{"Bio", profile.Bio},
		{"Status", status},
		{"Hireable", profile.IsHireable},
		{"Joined", profile.CreatedAt.Format("2006-01-02")},
		{"Repositories", profile.TotalRepositories},
		{"Followers", profile.Followers},
		{"Following", profile.Following},
	}

	return writeRows(f, profileSheet, rows)
}

func (s *ExportService) writeRepositories(f *excelize.File, repositories []models.Repository) error {
	header := make([]interface{}, len(repositoryColumns))
	for i, column := range repositoryColumns {
		header[i] = column
	}

	rows := [][]interface{}{header}
	for _, repo := range repositories {
		language := ""
		if repo.PrimaryLanguage != nil {
			language = repo.PrimaryLanguage.Name
		}
		rows = append(rows, []interface{}{
			repo.Name,
			repo.URL,
			repo.Description,
			language,
			repo.StargazerCount,
			repo.ForkCount,
			repo.License,
			repo.UpdatedAt.Format("2006-01-02"),
			strings.Join(repo.Topics, ", "),
		})
	}

	return writeRows(f, repositoriesSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
