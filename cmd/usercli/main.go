// Command usercli registers and checks accounts directly against the configured store.
package main

import (
	"context"
	"encoding/json"
	"os"

	"bathroom/config"
	"bathroom/internal/domain/entity"
	"bathroom/internal/domain/lifecycle"
	"bathroom/internal/infra/auth"
	logs "bathroom/internal/infra/log"
	"bathroom/internal/infra/persistence"
	"bathroom/internal/infra/validation"
	"bathroom/internal/usecase"
	"bathroom/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var configDir string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "usercli",
		Short:         "Manage bathroom directory accounts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory containing config.yaml (defaults to the usual search path)")

	rootCmd.AddCommand(newRegisterCmd(), newAuthenticateCmd())

	return rootCmd
}

func newRegisterCmd() *cobra.Command {
	var (
		input   usecase.RegisterInput
		role    string
		lat     float64
		lng     float64
		address string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input.Role = entity.Role(role)
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") || address != "" {
				input.HomeLocation = &entity.LocationInput{Address: address}
				if cmd.Flags().Changed("lat") {
					input.HomeLocation.Lat = &lat
				}
				if cmd.Flags().Changed("lng") {
					input.HomeLocation.Lng = &lng
				}
			}

			return withAuthService(cmd.Context(), func(ctx context.Context, svc usecase.AuthUsecase) error {
				output, err := svc.Register(ctx, &input)
				if err != nil {
					return err
				}

				return printJSON(cmd, output.User)
			})
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "account email")
	cmd.Flags().StringVar(&input.Password, "password", "", "account password")
	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", entity.RoleUser.String(), "user or admin")
	cmd.Flags().Float64Var(&lat, "lat", 0, "home latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "home longitude")
	cmd.Flags().StringVar(&address, "address", "", "home address")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAuthenticateCmd() *cobra.Command {
	var input usecase.LoginInput

	cmd := &cobra.Command{
		Use:   "authenticate",
		Short: "Check an email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuthService(cmd.Context(), func(ctx context.Context, svc usecase.AuthUsecase) error {
				output, err := svc.Authenticate(ctx, &input)
				if err != nil {
					return err
				}

				return printJSON(cmd, output.User)
			})
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "account email")
	cmd.Flags().StringVar(&input.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// withAuthService opens the store for one command and closes it afterwards.
func withAuthService(ctx context.Context, run func(context.Context, usecase.AuthUsecase) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}

	hasher, err := auth.NewPasswordHasher(cfg)
	if err != nil {
		return err
	}

	store, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		_ = store.Close(closeCtx)
	}()

	svc := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo:  store.Users,
		Hasher:    hasher,
		Validator: validation.NewUserValidator(),
		Logger:    logger,
	})

	return run(ctx, svc)
}

func loadConfig() (*config.Config, error) {
	if configDir != "" {
		return config.Load(configDir)
	}

	return config.New()
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, "failed to print result")
	}

	return nil
}
