package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reading-persona/internal/config"
	"reading-persona/internal/domain"
	"reading-persona/internal/service"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for local testing",
	Long:  "Signs an access token with JWT_SECRET so the onboarding endpoints can be exercised with curl.",
	RunE:  runToken,
}

var (
	tokenUserID string
	tokenEmail  string
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user", "u", "", "User id for the token (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
	if err := tokenCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	svc := service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessTTL())
	token, err := svc.GenerateAccessToken(domain.User{ID: tokenUserID, Email: tokenEmail})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
