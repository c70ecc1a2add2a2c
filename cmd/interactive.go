package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/jobs"
	"github.com/spigell/resume-matcher/internal/pipeline"
)

const (
	PromptDetails         = "Show match details"
	PromptReportByCompany = "Report by company"
	PromptListingsToFile  = "Dump listings to file"
	PromptExit            = "Exit"
	PromptBack            = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptDetails, PromptReportByCompany, PromptListingsToFile, PromptExit},
}

// browse runs the interactive loop until the user exits.
func browse(w io.Writer, logger *zap.Logger, report *pipeline.Report) error {
	matched := &jobs.Listings{}
	for _, m := range report.Matches {
		matched.Items = append(matched.Items, m.Listing)
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(w, action, logger, report, matched); err != nil {
			return err
		}
	}
}

func handleAction(w io.Writer, action string, logger *zap.Logger, report *pipeline.Report, matched *jobs.Listings) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptDetails:
		return showDetails(w, report)
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(matched.ReportByCompany(), "", "  ")
		fmt.Fprintln(w, string(pretty))
		return nil
	case PromptListingsToFile:
		filename, err := matched.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump listings to file: %w", err)
		}
		logger.Info("dumping listings to file", zap.String("filename", filename), zap.Int("count", matched.Len()))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showDetails(w io.Writer, report *pipeline.Report) error {
	for {
		items := make([]string, 0, len(report.Matches)+1)
		for i, m := range report.Matches {
			items = append(items, fmt.Sprintf("%d. [%.0f] %s / %s", i+1, m.RelevanceScore, m.Listing.Title, m.Listing.Company))
		}

		matchPrompt := promptui.Select{
			Label: "Choose a match and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := matchPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack || strings.TrimSpace(selected) == "" || idx >= len(report.Matches) {
			return nil
		}

		fmt.Fprintln(w)
		renderMatch(w, report.Matches[idx])
		fmt.Fprintln(w)
	}
}
