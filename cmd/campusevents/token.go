package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"campusevents/internal/config"
	"campusevents/internal/domain/entities"
	"campusevents/internal/infrastructure/auth"
)

// tokenCmd mints a bearer token signed with JWT_SECRET, for local testing.
func tokenCmd() *cobra.Command {
	var (
		uid   string
		email string
		role  string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			r := entities.Role(role)
			if r != entities.RoleManager && r != entities.RoleStudent {
				return fmt.Errorf("role must be %q or %q", entities.RoleStudent, entities.RoleManager)
			}
			gate := auth.NewGate(cfg.JWTSecret, cfg.JWTIssuer)
			tok, err := gate.Issue(entities.Identity{UID: uid, Email: email, EmailVerified: true, Role: r}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "user id (token subject)")
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().StringVar(&role, "role", string(entities.RoleStudent), "student or manager")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}
