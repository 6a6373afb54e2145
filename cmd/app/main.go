package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Cleo-Systems/elevate-smart-export/internal/service"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/common"
	smartHTTP "github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/http"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/adapters/rdf"
	"github.com/Cleo-Systems/elevate-smart-export/internal/service/smart/app/commands"
)

func main() {
	root := &cobra.Command{
		Use:   "smart-export",
		Short: "SMART patient record RDF export service",
	}
	root.AddCommand(serveCmd(), exportCmd(), formatsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP export service",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.NewSmartExportService()
			if err != nil {
				return err
			}
			return svc.Start(context.Background())
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		in       string
		demo     bool
		pid      string
		recordID string
		format   string
		baseURI  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one record bundle as an RDF document on stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			var bundle *common.Bundle
			switch {
			case demo:
				bundle = common.DemoBundle(pid)
			case in != "":
				data, err := os.ReadFile(in)
				if err != nil {
					return err
				}
				var req smartHTTP.ExportRequest
				if err := json.Unmarshal(data, &req); err != nil {
					return fmt.Errorf("parse %s: %w", in, err)
				}
				bundle = req.Bundle()
			default:
				return fmt.Errorf("either --in or --demo is required")
			}

			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			handler := commands.NewExportRecordHandler(baseURI, rdf.Format(format), logger)

			result, err := handler.Handle(cmd.Context(), commands.ExportRecordCommand{
				RecordID: recordID,
				Bundle:   bundle,
				Format:   rdf.Format(format),
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), result.Document)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "path to a record bundle JSON file")
	cmd.Flags().BoolVar(&demo, "demo", false, "export a seeded demo bundle instead of reading --in")
	cmd.Flags().StringVar(&pid, "pid", "42", "demo patient id")
	cmd.Flags().StringVar(&recordID, "record-id", "demo", "owning record id")
	cmd.Flags().StringVar(&format, "format", string(rdf.DefaultFormat), "output format (xml, turtle, n3, nt)")
	cmd.Flags().StringVar(&baseURI, "base-uri", common.DefaultBaseURI, "record URI base")

	return cmd
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported serialization formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range rdf.Formats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f, f.ContentType())
			}
			return nil
		},
	}
}
