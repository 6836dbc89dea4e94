package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reading-persona/internal/domain"
	"reading-persona/internal/service"
)

const challengingFantasy = `{"preferred_genres":["novel"],"preferred_difficulty":"Challenging","preferred_themes":["fantasy"]}`

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestScoreCommandReadsStdin(t *testing.T) {
	out := execute(t, challengingFantasy, "score", "--file", "-")

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 56, got.Scores.Openness)
	require.Equal(t, 49, got.Scores.Agreeableness)
	require.Len(t, got.Profile, len(domain.TraitOrder))
	require.Equal(t, service.DefaultPersona().Title, got.Persona.Title)
}

func TestReportCommandOfflineUsesFallback(t *testing.T) {
	out := execute(t, challengingFantasy, "report", "--file", "-", "--offline", "--user", "u-cli")

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, "u-cli", report.UserID)
	require.Equal(t, domain.NarrativeSourceFallback, report.NarrativeSource)
	require.Equal(t, service.FallbackSummary, report.Summary)
	require.NotEmpty(t, report.ReadingDNA)
}

func TestTokenCommandSignsWithConfiguredSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	out := strings.TrimSpace(execute(t, "", "token", "--user", "u-token"))

	claims, err := service.NewJWTService("cli-secret", time.Minute).ParseAccessToken(out)
	require.NoError(t, err)
	require.Equal(t, "u-token", claims.UserID)
}
