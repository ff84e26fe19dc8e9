package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/repository/file"
	"github.com/satvocab/vocab-api/internal/service"
)

type topMissedOptions struct {
	statsPath   string
	catalogPath string
	limit       int
	minAttempts int
}

func newTopMissedCmd() *cobra.Command {
	opts := &topMissedOptions{}
	cmd := &cobra.Command{
		Use:   "top-missed",
		Short: "Печатает самые трудные слова по глобальной статистике",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTopMissed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.statsPath, "stats", "data/global-stats.json", "файл глобальной статистики")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "data/words.json", "каталог слов")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "сколько слов показать (до 100)")
	cmd.Flags().IntVar(&opts.minAttempts, "min-attempts", 5, "минимум попыток для попадания в список")
	return cmd
}

func runTopMissed(cmd *cobra.Command, opts *topMissedOptions) error {
	c, err := catalog.LoadFile(opts.catalogPath, catalog.LoadOptions{})
	if err != nil {
		return err
	}
	statsRepo, err := file.NewGlobalStatsRepo(opts.statsPath)
	if err != nil {
		return err
	}

	result, err := service.NewGlobalStatsService(statsRepo, c, nil).TopMissed(cmd.Context(), opts.limit, opts.minAttempts)
	if err != nil {
		return err
	}
	return printTopMissed(cmd.OutOrStdout(), result)
}

func printTopMissed(out io.Writer, result *service.TopMissedResult) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tWORD\tATTEMPTS\tINCORRECT\tERROR %\tWEIGHT")
	for i, w := range result.Words {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%d\t%.2f\n",
			i+1, w.ID, w.Word, w.TotalAttempts, w.Incorrect, w.ErrorPercentage, w.Weight)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Tracked words: %d\n", result.TotalTrackedWords)
	return err
}
