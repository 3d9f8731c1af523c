package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ist-rebalancer/internal/application/dto"
	apprebalance "github.com/jhoicas/ist-rebalancer/internal/application/rebalance"
)

func newAllocateCmd(app *cliApp) *cobra.Command {
	var (
		input       string
		allocation  string
		launchDate  string
		sellThrough int
		out         string
	)

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Reparte el stock de bodega entre las tiendas High de la planilla de surtido",
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			if format != apprebalance.FormatCSV && format != apprebalance.FormatXLSX {
				return withCode(exitUsage, fmt.Errorf("--out debe terminar en .csv o .xlsx: %q", out))
			}

			req := dto.AllocationRequest{
				FileName:           filepath.Base(input),
				AllocationFileName: filepath.Base(allocation),
				SeasonLaunchDate:   launchDate,
			}
			if cmd.Flags().Changed("sell-through") {
				req.SellThroughThreshold = &sellThrough
			}

			f, err := os.Open(input)
			if err != nil {
				return withCode(exitIO, err)
			}
			defer f.Close()
			af, err := os.Open(allocation)
			if err != nil {
				return withCode(exitIO, err)
			}
			defer af.Close()

			ctx := cmd.Context()
			report, err := app.uc.Allocate(ctx, req, f, af)
			if err != nil {
				return domainCode(err)
			}
			file, err := app.uc.ExportAllocation(ctx, report, format)
			if err != nil {
				return domainCode(err)
			}
			if err := os.WriteFile(out, file.Content, 0o644); err != nil {
				return withCode(exitIO, err)
			}

			fmt.Fprintf(app.out, "reparto %s: %d líneas asignadas, %d UPC con saldo sin asignar\n  → %s\n",
				report.RunID, len(report.Allocation.Lines), len(report.Allocation.Undistributed), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Planilla de surtido .csv/.xlsx (required)")
	cmd.Flags().StringVar(&allocation, "allocation", "", "Planilla de bodega con columnas UPC y QTY (required)")
	cmd.Flags().StringVar(&launchDate, "launch-date", "", "Fecha de lanzamiento YYYY-MM-DD (opcional)")
	cmd.Flags().IntVar(&sellThrough, "sell-through", 0, "Umbral de sell-through 0-100 (por defecto IST_SELL_THROUGH_THRESHOLD)")
	cmd.Flags().StringVar(&out, "out", "", "Salida .csv o .xlsx (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("allocation")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
