package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/InsulaLabs/counsel/upload"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func uploadCmd(a *app) *cobra.Command {
	var (
		fieldName string
		fields    []string
		query     []string
		status    string
	)
	cmd := &cobra.Command{
		Use:   "upload <path> <file>",
		Short: "Upload a file with form fields to any backend path",
		Long: `Upload a file as multipart form data to a backend path and print what the
server answered. Extra form fields are given as --field key=value.

Example:
  counselctl upload /counselors/import-excel ./counselors.xlsx --field dry_run=true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, filePath := args[0], args[1]

			f, err := os.Open(filePath)
			if err != nil {
				return err
			}
			defer f.Close()
			stat, err := f.Stat()
			if err != nil {
				return err
			}

			form := upload.Fields{fieldName: upload.File{Name: filepath.Base(filePath), Content: f}}
			for _, kv := range fields {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || k == "" {
					return fmt.Errorf("--field %q is not key=value", kv)
				}
				if _, dup := form[k]; dup {
					return fmt.Errorf("--field %q given twice", k)
				}
				form[k] = v
			}

			if status == "" {
				status = fmt.Sprintf("uploading %s (%s)…", filepath.Base(filePath), humanize.Bytes(uint64(stat.Size())))
			}
			opts := []upload.CallOption{upload.WithStatusText(status)}
			for _, kv := range query {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || k == "" {
					return fmt.Errorf("--query %q is not key=value", kv)
				}
				opts = append(opts, upload.WithQuery(k, v))
			}

			outcome, err := upload.Upload[json.RawMessage](cmd.Context(), a.uploader, path, form, opts...)
			if err != nil {
				return err
			}
			if a.flags.json {
				return printJSON(outcome)
			}
			if !outcome.Succeeded() {
				return rejection(outcome.Failure)
			}
			success("%s (status %d)", outcome.Message, outcome.StatusCode)
			if outcome.RequestID != "" {
				info("rid: %s", outcome.RequestID)
			}
			if len(outcome.Data) > 0 {
				info("%s", string(outcome.Data))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fieldName, "name", "file", "Form field that carries the file")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "Extra form field as key=value, repeatable")
	cmd.Flags().StringArrayVar(&query, "query", nil, "Query parameter as key=value, repeatable")
	cmd.Flags().StringVar(&status, "status", "", "Text shown while uploading")
	return cmd
}
