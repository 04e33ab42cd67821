// cmd/mafatih/commands/resolve.go
package commands

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mafatih/internal/analysis"
	"mafatih/internal/models"
)

const resolveTimeout = 90 * time.Second

type queryFlags struct {
	language  string
	sessionID string
	context   string
}

func (f *queryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.language, "language", "l", "ar", "answer language")
	cmd.Flags().StringVar(&f.sessionID, "session", "", "session id; a newer request replaces an in-flight one")
}

func (f *queryFlags) query(args []string) models.Query {
	return models.Query{
		Text:      strings.Join(args, " "),
		Language:  f.language,
		Context:   f.context,
		SessionID: f.sessionID,
	}
}

func newAskCmd(e *env) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a religious question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.services(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), resolveTimeout)
			defer cancel()
			return printJSON(cmd, a.Resolver.ResolveQuestion(ctx, flags.query(args)))
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&flags.context, "context", "", "extra context for the question")
	return cmd
}

func newDreamCmd(e *env) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "dream <description>",
		Short: "Interpret a dream",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.services(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), resolveTimeout)
			defer cancel()
			return printJSON(cmd, a.Resolver.InterpretDream(ctx, flags.query(args)))
		},
	}
	flags.bind(cmd)
	return cmd
}

func newVerseCmd(e *env) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "verse <mood>",
		Short: "Recommend a Quranic verse for a mood",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.services(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), resolveTimeout)
			defer cancel()
			return printJSON(cmd, a.Resolver.RecommendVerse(ctx, flags.query(args)))
		},
	}
	flags.bind(cmd)
	return cmd
}

type analyzeOutput struct {
	Sentiment         models.SentimentResult      `json:"sentiment"`
	Classification    models.ClassificationResult `json:"classification"`
	Question          models.QuestionAnalysis     `json:"question"`
	EmotionalCategory string                      `json:"emotionalCategory"`
}

// newAnalyzeCmd runs the local text analysis only; it needs no
// configuration or network.
func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text>",
		Short: "Show sentiment, topic and keyword analysis of text",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			sentiment := analysis.Analyze(text)
			return printJSON(cmd, analyzeOutput{
				Sentiment:         sentiment,
				Classification:    analysis.Classify(text),
				Question:          analysis.AnalyzeQuestion(text),
				EmotionalCategory: analysis.EmotionalCategory(sentiment, text),
			})
		},
	}
}
