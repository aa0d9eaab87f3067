package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	crpt "github.com/demonid/crpt-go"
	"github.com/demonid/crpt-go/batch"
	"github.com/demonid/crpt-go/internal/config"
	"github.com/demonid/crpt-go/logger"
	"github.com/demonid/crpt-go/types"
)

var (
	createFiles     []string
	createGroup     string
	createFormat    string
	createSignature string
	createToken     string
)

var createCmd = &cobra.Command{
	Use:   "create --file doc.json [--file doc2.json ...]",
	Short: "Create documents from JSON files",
	Long: `Create registers each document file with the document create API
and prints the assigned document id.

All files share one rate limiter; with several files the output is
"<file>\t<document id>" per line.`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringArrayVarP(&createFiles, "file", "f", nil, "document JSON file (repeatable)")
	createCmd.Flags().StringVarP(&createGroup, "group", "g", "", "product group, e.g. shoes, milk")
	createCmd.Flags().StringVar(&createFormat, "format", string(types.DocumentFormatManual), "document format: MANUAL, XML or CSV")
	createCmd.Flags().StringVar(&createSignature, "signature", "", "detached document signature (Base64)")
	createCmd.Flags().StringVar(&createToken, "token", "", "bearer token (default is the token config key / CRPT_TOKEN)")
	_ = createCmd.MarkFlagRequired("file")
	_ = createCmd.MarkFlagRequired("group")
	_ = createCmd.MarkFlagRequired("signature")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	token := strings.TrimSpace(createToken)
	if token == "" {
		token = cfg.Token
	}

	zl, err := newLogger(cfg.Logging.Level, verbose)
	if err != nil {
		return err
	}
	defer zl.Sync() // nolint:errcheck // best-effort flush
	log := logger.NewZap(zl)

	messages := make([]batch.Message, 0, len(createFiles))
	for _, path := range createFiles {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}
		messages = append(messages, batch.Message{
			Document:     doc,
			ProductGroup: types.ProductGroup(createGroup),
			Format:       types.DocumentFormat(strings.ToUpper(createFormat)),
			Signature:    createSignature,
			Token:        token,
			MetaData:     path,
		})
	}

	client, closeClient, err := newClient(cfg, log)
	if err != nil {
		return err
	}
	defer closeClient() // nolint:errcheck // best-effort cleanup

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	responses := make(chan batch.Response, len(messages))
	submitter := crpt.NewSubmitter(client,
		crpt.WithSubmitterConcurrency(cfg.Batch.Concurrency),
		crpt.WithSubmitterBufferSize(cfg.Batch.BufferSize),
		crpt.WithSubmitterContext(ctx),
		crpt.WithSubmitterLogger(log),
		crpt.WithSubmitterResponseListener(responses),
	)

	submitter.Start()
	for _, m := range messages {
		submitter.Documents().Add(m)
	}
	submitter.Stop()
	close(responses)

	return printResponses(cmd.OutOrStdout(), zl, responses, len(messages))
}

func printResponses(out io.Writer, zl *zap.Logger, responses <-chan batch.Response, total int) error {
	var failed int
	for res := range responses {
		path, _ := res.OriginalReq.MetaData.(string)
		if res.Error != nil {
			failed++
			zl.Error("Failed to create document", zap.String("file", path), zap.Error(res.Error))
			continue
		}
		if total > 1 {
			fmt.Fprintf(out, "%s\t%s\n", path, res.DocumentId)
		} else {
			fmt.Fprintln(out, res.DocumentId)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents were not created", failed, total)
	}
	return nil
}

func readDocument(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New(path + ": document file is empty")
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}
