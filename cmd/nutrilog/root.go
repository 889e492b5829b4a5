package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/nutrilog/internal/cli"
	"github.com/terraincognita07/nutrilog/internal/config"
	"github.com/terraincognita07/nutrilog/internal/models"
)

func newRootCommand() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "nutrilog",
		Short:         "nutrilog keeps a food journal with personal limits, mood tracking and insights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory containing config.yml (default: working directory)")

	loadConfig := func() (config.Config, error) {
		if configDir == "" {
			return config.Load()
		}
		return config.Load(configDir)
	}

	root.AddCommand(
		newServeCommand(loadConfig),
		newTokenCommand(loadConfig),
		newLimitsCommand(),
		newSecretCommand(),
	)
	return root
}

func newServeCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func newTokenCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			secret := cfg.Auth.SecretKey
			if secret == "" {
				secret, err = cli.PromptSecret("Secret key: ", os.Stdin, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}
			return cli.RunTokenCommand(cmd.OutOrStdout(), secret, subject, ttl, time.Now())
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Identity subject, e.g. an email address")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: auth.token_ttl)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newLimitsCommand() *cobra.Command {
	var profile models.UserProfile

	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Print daily limits for a body profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunLimitsCommand(cmd.OutOrStdout(), profile)
		},
	}
	cmd.Flags().Float64Var(&profile.Weight, "weight", 0, "Weight in kg")
	cmd.Flags().Float64Var(&profile.Height, "height", 0, "Height in cm")
	cmd.Flags().Float64Var(&profile.Age, "age", 0, "Age in years")
	cmd.Flags().StringVar(&profile.Gender, "gender", "", "M or F")
	cmd.Flags().StringVar(&profile.ActivityLevel, "activity", models.ActivitySedentary, "sedentary, light, moderate, active or very_active")
	for _, name := range []string{"weight", "height", "age", "gender"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newSecretCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Print a random value for auth.secret_key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunSecretCommand(cmd.OutOrStdout(), length)
		},
	}
	cmd.Flags().IntVar(&length, "length", 0, "Secret length (default 48)")
	return cmd
}
