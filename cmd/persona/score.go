package main

import (
	"github.com/spf13/cobra"

	"reading-persona/internal/domain"
	"reading-persona/internal/service"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score preferences into traits and persona",
	Long:  "Deterministically maps an onboarding preferences JSON to the five trait scores, their levels and the resolved persona.",
	RunE:  runScore,
}

var scoreFile string

func init() {
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "-", "Path to preferences JSON (- for stdin)")
	rootCmd.AddCommand(scoreCmd)
}

type scoreOutput struct {
	Scores  domain.ScoreVector    `json:"scores"`
	Profile []domain.TraitProfile `json:"profile"`
	Persona domain.Persona        `json:"persona"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	p, err := readPreferences(scoreFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	scores := service.ScorePreferences(p)
	return writeJSON(cmd.OutOrStdout(), scoreOutput{
		Scores:  scores,
		Profile: service.LevelProfile(scores),
		Persona: service.ResolvePersona(scores),
	})
}
