package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phrazzld/wordcard-api/internal/domain"
)

func newCardCmd() *cobra.Command {
	var req domain.AnalysisRequest

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Generate one card and print its Anki template",
		Long: "Generate one card for --word as used in --sentence and print the rendered\n" +
			"Anki template. Nothing is archived.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadAppConfig(configFile)
			if err != nil {
				return err
			}

			app, err := newApplication(cfg, log, appOptions{disableArchive: true})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.cleanup(context.Background())

			return app.printCard(cmd.Context(), cmd.OutOrStdout(), req)
		},
	}

	cmd.Flags().StringVar(&req.Sentence, "sentence", "", "sentence the word was heard in")
	cmd.Flags().StringVar(&req.Word, "word", "", "word to study")
	cmd.Flags().StringVar(&req.Tag, "tag", domain.NoTag, "topical tag, usually the show name")
	_ = cmd.MarkFlagRequired("sentence")
	_ = cmd.MarkFlagRequired("word")

	return cmd
}

// printCard generates the card and writes a short summary followed by the template.
func (app *application) printCard(ctx context.Context, w io.Writer, req domain.AnalysisRequest) error {
	result, err := app.cardService.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate card: %w", err)
	}

	heading := color.New(color.FgGreen, color.Bold)
	label := color.New(color.FgCyan)

	_, _ = heading.Fprintf(w, "%s %s\n", result.Request.Word, result.Card.IPA)
	_, _ = label.Fprint(w, "deck: ")
	_, _ = fmt.Fprintln(w, result.Card.TargetDeck)
	_, _ = label.Fprint(w, "rating: ")
	_, _ = fmt.Fprintln(w, result.Card.RatingStar)
	_, _ = label.Fprint(w, "file: ")
	_, _ = fmt.Fprintln(w, result.UniqueFileName)
	_, _ = fmt.Fprint(w, result.AnkiTemplate)

	return nil
}
