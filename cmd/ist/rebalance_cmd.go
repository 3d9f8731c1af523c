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

func newRebalanceCmd(app *cliApp) *cobra.Command {
	var (
		variant     string
		input       string
		launchDate  string
		sellThrough int
		minAge      int
		out         string
		pdfOut      string
		asOf        string
	)

	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Calcula necesidades y el libro de traslados a partir de una planilla de movimientos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.withAsOf(asOf); err != nil {
				return err
			}
			req := dto.RebalanceRequest{
				Variant:          variant,
				FileName:         filepath.Base(input),
				SeasonLaunchDate: launchDate,
			}
			if cmd.Flags().Changed("sell-through") {
				req.SellThroughThreshold = &sellThrough
			}
			if cmd.Flags().Changed("min-age") {
				req.DaysThreshold = &minAge
			}

			f, err := os.Open(input)
			if err != nil {
				return withCode(exitIO, err)
			}
			defer f.Close()

			ctx := cmd.Context()
			report, err := app.uc.Rebalance(ctx, req, f)
			if err != nil {
				return domainCode(err)
			}

			written, err := writeRebalanceOutputs(cmd, app, report, out)
			if err != nil {
				return err
			}
			if pdfOut != "" {
				file, err := app.uc.Export(ctx, report, apprebalance.FormatPDF, "")
				if err != nil {
					return domainCode(err)
				}
				if err := os.WriteFile(pdfOut, file.Content, 0o644); err != nil {
					return withCode(exitIO, err)
				}
				written = append(written, pdfOut)
			}

			resp := apprebalance.ToResponse(report)
			fmt.Fprintf(app.out, "corrida %s (%s): %d filas, %d traslados, %s unidades\n",
				resp.RunID, resp.Variant, len(resp.Rows), len(resp.Transfers), resp.TotalTransferred)
			for _, p := range written {
				fmt.Fprintf(app.out, "  → %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "network | regional | assortment (por defecto IST_DEFAULT_VARIANT)")
	cmd.Flags().StringVar(&input, "input", "", "Planilla de movimientos .csv/.xlsx (required)")
	cmd.Flags().StringVar(&launchDate, "launch-date", "", "Fecha de lanzamiento de temporada YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&sellThrough, "sell-through", 0, "Umbral de sell-through 0-100 (por defecto IST_SELL_THROUGH_THRESHOLD)")
	cmd.Flags().IntVar(&minAge, "min-age", 0, "Edad mínima en días (por defecto IST_DAYS_THRESHOLD)")
	cmd.Flags().StringVar(&out, "out", "", "Salida .xlsx, o .csv (genera <base>_rows.csv, <base>_transfers.csv y <base>_all_rows.csv) (required)")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "Ruta opcional para la hoja de traslados en PDF")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Fecha de referencia para las edades YYYY-MM-DD (por defecto hoy)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("launch-date")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func writeRebalanceOutputs(cmd *cobra.Command, app *cliApp, report *apprebalance.Report, out string) ([]string, error) {
	ctx := cmd.Context()
	ext := strings.ToLower(filepath.Ext(out))
	switch ext {
	case ".xlsx":
		file, err := app.uc.Export(ctx, report, apprebalance.FormatXLSX, "")
		if err != nil {
			return nil, domainCode(err)
		}
		if err := os.WriteFile(out, file.Content, 0o644); err != nil {
			return nil, withCode(exitIO, err)
		}
		return []string{out}, nil

	case ".csv":
		base := strings.TrimSuffix(out, filepath.Ext(out))
		var written []string
		for _, table := range []string{apprebalance.TableRows, apprebalance.TableTransfers, apprebalance.TableAllRows} {
			file, err := app.uc.Export(ctx, report, apprebalance.FormatCSV, table)
			if err != nil {
				return nil, domainCode(err)
			}
			path := base + "_" + table + ".csv"
			if err := os.WriteFile(path, file.Content, 0o644); err != nil {
				return nil, withCode(exitIO, err)
			}
			written = append(written, path)
		}
		return written, nil
	}
	return nil, withCode(exitUsage, fmt.Errorf("--out debe terminar en .xlsx o .csv: %q", out))
}
