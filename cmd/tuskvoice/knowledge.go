package main

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/internal/service/knowledge"
	"github.com/sandevgo/tuskvoice/internal/service/ui"
	"github.com/sandevgo/tuskvoice/internal/storage/sqlite"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage reference notes added to directives",
	Long: `Reference notes are short snippets stored under a tag. When ENABLE_KNOWLEDGE
is set, notes whose tag matches a topic word of the user's message are added
to the directive.`,
}

var knowledgeAddCmd = &cobra.Command{
	Use:          "add <tag> <content...>",
	Short:        "Store a reference note under a tag",
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKnowledge(cmd.Context(), func(ctx context.Context, repo *sqlite.KnowledgeRepo) error {
			snippet, err := repo.AddSnippet(ctx, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			log.FromCtx(ctx).Info().Int64("id", snippet.ID).Str("tag", snippet.Tag).Msg("note stored")
			return nil
		})
	},
}

var importMaxTokens int

var knowledgeImportCmd = &cobra.Command{
	Use:          "import <tag> <file|url>",
	Short:        "Split a document or web page into notes under a tag",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKnowledge(cmd.Context(), func(ctx context.Context, repo *sqlite.KnowledgeRepo) error {
			imp := knowledge.NewImporter(repo, knowledge.NewFetcher(), knowledge.NewChunker(importMaxTokens))
			n, err := imp.Import(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			log.FromCtx(ctx).Info().Int("notes", n).Str("tag", args[0]).Msg("import finished")
			return nil
		})
	},
}

var knowledgeListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List tags and how many notes each holds",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKnowledge(cmd.Context(), func(ctx context.Context, repo *sqlite.KnowledgeRepo) error {
			tags, err := repo.ListTags(ctx)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				fmt.Println(ui.DescStyle.Render("no notes yet"))
				return nil
			}

			names := make([]string, 0, len(tags))
			for tag := range tags {
				names = append(names, tag)
			}
			sort.Strings(names)

			fmt.Println(ui.TitleStyle.Render("TAGS"))
			for _, tag := range names {
				fmt.Printf("  %s %s\n", ui.UsageStyle.Render(tag), ui.DescStyle.Render(fmt.Sprintf("(%d)", tags[tag])))
			}
			return nil
		})
	},
}

func withKnowledge(ctx context.Context, fn func(context.Context, *sqlite.KnowledgeRepo) error) error {
	ctx, flushLog := setupLogger(ctx)
	defer flushLog()

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return err
	}
	appCfg := config.NewAppConfig(ctx)

	db, err := initStorage(ctx, appCfg)
	if err != nil {
		return fmt.Errorf("failed to open knowledge store: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to close database")
		}
	}(db)

	return fn(ctx, sqlite.NewKnowledgeRepo(db))
}

func init() {
	knowledgeImportCmd.Flags().IntVar(&importMaxTokens, "max-tokens", knowledge.DefaultMaxTokens, "token limit per note")
	knowledgeCmd.AddCommand(knowledgeAddCmd, knowledgeImportCmd, knowledgeListCmd)
	rootCmd.AddCommand(knowledgeCmd)
}
