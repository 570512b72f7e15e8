package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"agrimitra/database"
	"agrimitra/pkg/apperr"
	"agrimitra/pkg/market/importer"
	"agrimitra/pkg/market/repository"
	"agrimitra/pkg/market/service"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Import or export market price observations",
}

var (
	importXLSX  string
	importSheet string
	importURL   string

	exportOut    string
	exportCrop   string
	exportRegion string
	exportLimit  int
)

var pricesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Append observations from a workbook or an HTML price table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (importXLSX == "") == (importURL == "") {
			return errors.New("exactly one of --xlsx or --url is required")
		}

		var (
			rows []service.ObservationInput
			err  error
		)
		if importXLSX != "" {
			rows, err = importer.FromXLSX(importXLSX, importSheet)
		} else {
			client := &http.Client{Timeout: cfg.PriceFeedTimeout}
			rows, err = importer.FromHTML(cmd.Context(), client, importURL, cfg.PriceFeedMaxBytes)
		}
		if err != nil {
			return fmt.Errorf("read prices: %w", err)
		}
		if len(rows) == 0 {
			return apperr.Validation("no price rows found")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		saved, err := newApp(cfg, db, log).ledger.Import(cmd.Context(), rows)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d market prices\n", len(saved))
		return nil
	},
}

var pricesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the newest observations to an xlsx workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		q := repository.Query{CropName: exportCrop, Region: exportRegion, Limit: exportLimit}
		rows, err := apperr.Collect(newApp(cfg, db, log).ledger.QueryObservations(cmd.Context(), q))
		if err != nil {
			return err
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		if err := importer.ToXLSX(f, rows); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d market prices to %s\n", len(rows), exportOut)
		return nil
	},
}

func init() {
	fl := pricesImportCmd.Flags()
	fl.StringVar(&importXLSX, "xlsx", "", "workbook to read")
	fl.StringVar(&importSheet, "sheet", "", "sheet name (default: first sheet)")
	fl.StringVar(&importURL, "url", "", "page whose first price table is read")

	fl = pricesExportCmd.Flags()
	fl.StringVar(&exportOut, "out", "market-prices.xlsx", "output workbook")
	fl.StringVar(&exportCrop, "crop", "", "crop name filter")
	fl.StringVar(&exportRegion, "region", "", "region filter")
	fl.IntVar(&exportLimit, "limit", service.MaxLimit, "maximum rows")

	pricesCmd.AddCommand(pricesImportCmd, pricesExportCmd)
}
