package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ist-rebalancer/pkg/jwt"
)

func newTokenCmd(app *cliApp) *cobra.Command {
	var (
		subject string
		role    string
		expires int
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token Bearer para la API (requiere JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.JWT.Secret == "" {
				return withCode(exitUsage, fmt.Errorf("JWT_SECRET no configurado"))
			}
			tok, err := jwt.Generate(app.cfg.JWT.Secret, subject, role, app.cfg.JWT.Issuer, expires)
			if err != nil {
				return withCode(exitUsage, err)
			}
			fmt.Fprintln(app.out, tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Usuario o servicio (required)")
	cmd.Flags().StringVar(&role, "role", "planner", "admin | planner | viewer")
	cmd.Flags().IntVar(&expires, "expires", 60, "Vigencia en minutos")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
