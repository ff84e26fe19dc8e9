package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satvocab/vocab-api/internal/catalog"
)

type convertOptions struct {
	in    string
	out   string
	sheet string
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Преобразует список слов (txt, csv, xlsx, json) в data/words.json",
		Long: `Читает исходный список слов и записывает каталог в JSON.
Формат txt: "word...syn: synonym; definition" по одному слову в строке.
Формат csv/xlsx: колонки word, definition, synonym и необязательная id; первая строка - заголовок.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "", "исходный файл (.txt, .csv, .xlsx, .json)")
	cmd.Flags().StringVar(&opts.out, "out", "data/words.json", "куда записать каталог; \"-\" означает stdout")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "лист xlsx (по умолчанию первый)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runConvert(stdout io.Writer, opts *convertOptions) error {
	words, err := catalog.ReadFile(opts.in, catalog.LoadOptions{SheetName: opts.sheet})
	if err != nil {
		return err
	}
	// New проверяет уникальность ID и непустые поля
	c, err := catalog.New(words)
	if err != nil {
		return err
	}

	if opts.out == "-" {
		return catalog.WriteJSON(stdout, c.Words())
	}

	if dir := filepath.Dir(opts.out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.out, err)
	}
	defer f.Close()

	if err := catalog.WriteJSON(f, c.Words()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Converted %d words to %s\n", c.Len(), opts.out)
	return nil
}
