package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	apprebalance "github.com/jhoicas/ist-rebalancer/internal/application/rebalance"
	engine "github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
	"github.com/jhoicas/ist-rebalancer/internal/infrastructure/pdf"
	"github.com/jhoicas/ist-rebalancer/internal/infrastructure/tabular"
	"github.com/jhoicas/ist-rebalancer/pkg/config"
	"github.com/jhoicas/ist-rebalancer/pkg/logger"
)

// cliApp dependencias compartidas por los subcomandos; se arma en PersistentPreRunE.
type cliApp struct {
	cfg *config.Config
	log *logger.Logger
	uc  *apprebalance.UseCase
	out io.Writer
}

func newRootCmd() *cobra.Command {
	app := &cliApp{}

	cmd := &cobra.Command{
		Use:           "ist",
		Short:         "Motor de traslados entre tiendas (IST) sobre planillas CSV/XLSX",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	cmd.AddCommand(newRebalanceCmd(app))
	cmd.AddCommand(newAllocateCmd(app))
	cmd.AddCommand(newTokenCmd(app))
	return cmd
}

func (a *cliApp) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return withCode(exitUsage, err)
	}
	a.cfg = cfg
	a.out = cmd.OutOrStdout()
	// Logs a stderr: stdout queda para el resumen de la corrida.
	a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Out: cmd.ErrOrStderr()})
	a.uc = apprebalance.NewUseCase(
		tabular.NewReader(),
		tabular.NewWriter(),
		pdf.NewMarotoPDFGenerator(),
		apprebalance.Defaults{
			Variant:              cfg.IST.DefaultVariant,
			SellThroughThreshold: cfg.IST.SellThroughThreshold,
			DaysThreshold:        cfg.IST.DaysThreshold,
			NegativeNet:          engine.NegativeNetPolicy(cfg.IST.NegativeNet),
		},
		a.log,
	)
	return nil
}

// withAsOf fija el reloj de la corrida a una fecha dada (YYYY-MM-DD).
func (a *cliApp) withAsOf(asOf string) error {
	if asOf == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", asOf)
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("--as-of inválido: %w", err))
	}
	a.uc.WithClock(func() time.Time { return t })
	return nil
}

// Execute corre la CLI y termina el proceso con el código de salida correspondiente.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
