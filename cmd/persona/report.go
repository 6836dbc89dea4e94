package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reading-persona/internal/config"
	"reading-persona/internal/domain"
	"reading-persona/internal/llm"
	"reading-persona/internal/repository"
	"reading-persona/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a full reading report",
	Long:  "Builds the complete onboarding report for a preferences JSON. Uses the configured LLM for the narrative when LLM_API_KEY is set and the Spanish fallback text otherwise.",
	RunE:  runReport,
}

var (
	reportFile    string
	reportUserID  string
	reportOffline bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "-", "Path to preferences JSON (- for stdin)")
	reportCmd.Flags().StringVarP(&reportUserID, "user", "u", "cli-user", "User id stamped on the report")
	reportCmd.Flags().BoolVar(&reportOffline, "offline", false, "Skip the LLM and use the fallback narrative")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p, err := readPreferences(reportFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := zap.NewNop()

	prefs := repository.NewMemoryPreferenceRepository()
	reports := repository.NewMemoryReportRepository()
	if err := prefs.Upsert(ctx, domain.UserPreferences{
		UserID:              reportUserID,
		Preferences:         p,
		OnboardingCompleted: true,
		UpdatedAt:           time.Now().UTC(),
	}); err != nil {
		return err
	}

	augmenter := service.NewLLMNarrativeAugmenter(narrativeClient(cfg, reportOffline, logger), cfg.NarrativeTimeout, logger)
	svc := service.NewReportService(prefs, reports, augmenter, logger)

	outcome, err := svc.GenerateReport(ctx, reportUserID, nil)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), outcome.Report)
}

func narrativeClient(cfg *config.Config, offline bool, logger *zap.Logger) llm.LLMClient {
	if offline || cfg.LLMAPIKey == "" {
		return llm.NewDisabledClient("llm disabled")
	}
	return llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger, llm.Options{
		Temperature: cfg.LLMTemperature,
		JSONMode:    true,
		Timeout:     cfg.NarrativeTimeout,
	})
}
