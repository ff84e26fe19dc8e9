package catalog

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// linePattern разбирает строку исходного списка: "word...syn: synonym; definition"
var linePattern = regexp.MustCompile(`(?i)^([a-z]+)\.\.\.syn:\s*([^;]+);\s*(.+)$`)

// LoadOptions задает параметры чтения табличных форматов
type LoadOptions struct {
	// SheetName - лист xlsx; пустое значение означает первый лист
	SheetName string
}

// LoadFile загружает каталог, выбирая формат по расширению файла
func LoadFile(path string, opts LoadOptions) (*Catalog, error) {
	words, err := ReadFile(path, opts)
	if err != nil {
		return nil, err
	}
	c, err := New(words)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	log.Printf("[Catalog] Загружено %d слов из %s", c.Len(), path)
	return c, nil
}

// ReadFile читает слова из файла без построения каталога
func ReadFile(path string, opts LoadOptions) ([]entity.Word, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".xlsx" {
		return readXLSX(path, opts.SheetName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	switch ext {
	case ".json":
		return ReadJSON(f)
	case ".txt":
		return ParseWordList(f)
	case ".csv":
		return readCSV(f)
	default:
		return nil, fmt.Errorf("%w: unsupported catalog format %q", apperrors.ErrValidation, ext)
	}
}

// ReadJSON читает каталог в формате data/words.json
func ReadJSON(r io.Reader) ([]entity.Word, error) {
	var words []entity.Word
	if err := json.NewDecoder(r).Decode(&words); err != nil {
		return nil, fmt.Errorf("failed to decode catalog json: %w", err)
	}
	return words, nil
}

// WriteJSON записывает слова в формате data/words.json
func WriteJSON(w io.Writer, words []entity.Word) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(words)
}

// ParseLine разбирает одну строку исходного списка.
// Возвращает false, если строка не соответствует формату.
func ParseLine(line string) (entity.Word, bool) {
	m := linePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return entity.Word{}, false
	}
	return entity.Word{
		Word:       capitalize(strings.TrimSpace(m[1])),
		Synonym:    strings.TrimSpace(m[2]),
		Definition: capitalize(strings.TrimSpace(m[3])),
	}, true
}

// ParseWordList разбирает исходный текстовый список, присваивая ID по порядку с 1
func ParseWordList(r io.Reader) ([]entity.Word, error) {
	var words []entity.Word
	scanner := bufio.NewScanner(r)
	nextID := 1
	for scanner.Scan() {
		w, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		w.ID = nextID
		nextID++
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

func readCSV(r io.Reader) ([]entity.Word, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rowsToWords(rows)
}

func readXLSX(path, sheet string) ([]entity.Word, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: xlsx has no sheets", apperrors.ErrValidation)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rowsToWords(rows)
}

// rowsToWords преобразует строки таблицы "word, definition, synonym[, id]".
// Первая строка - заголовок. Без колонки id ID присваиваются по порядку.
func rowsToWords(rows [][]string) ([]entity.Word, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	words := make([]entity.Word, 0, len(rows)-1)
	nextID := 1
	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(cell(row, 0)) == "" {
			continue
		}

		w := entity.Word{
			Word:       strings.TrimSpace(cell(row, 0)),
			Definition: strings.TrimSpace(cell(row, 1)),
			Synonym:    strings.TrimSpace(cell(row, 2)),
		}

		if raw := strings.TrimSpace(cell(row, 3)); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d has invalid id %q", apperrors.ErrValidation, i+2, raw)
			}
			w.ID = id
		} else {
			w.ID = nextID
		}
		nextID = w.ID + 1

		words = append(words, w)
	}
	return words, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
