package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// execute запускает vocabctl с аргументами и возвращает stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvert_WordList(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "words.txt")
	out := filepath.Join(dir, "data", "words.json")
	require.NoError(t, os.WriteFile(in, []byte(strings.Join([]string{
		"abate...syn: subside; to become less intense",
		"not a word line",
		"candor...syn: frankness; the quality of being open and honest",
	}, "\n")), 0o644))

	stdout, err := execute(t, "convert", "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Converted 2 words")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var words []entity.Word
	require.NoError(t, json.Unmarshal(data, &words))
	require.Len(t, words, 2)
	assert.Equal(t, entity.Word{ID: 1, Word: "Abate", Definition: "To become less intense", Synonym: "subside"}, words[0])
	assert.Equal(t, 2, words[1].ID)
}

func TestConvert_ToStdout(t *testing.T) {
	in := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(in, []byte("word,definition,synonym,id\nCogent,Clear and convincing,convincing,7\n"), 0o644))

	stdout, err := execute(t, "convert", "--in", in, "--out", "-")
	require.NoError(t, err)

	var words []entity.Word
	require.NoError(t, json.Unmarshal([]byte(stdout), &words))
	require.Len(t, words, 1)
	assert.Equal(t, 7, words[0].ID)
}

func TestConvert_Errors(t *testing.T) {
	_, err := execute(t, "convert")
	assert.Error(t, err, "--in обязателен")

	in := filepath.Join(t.TempDir(), "words.pdf")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0o644))
	_, err = execute(t, "convert", "--in", in, "--out", "-")
	assert.Error(t, err)
}

func TestTopMissed(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "words.json")
	statsPath := filepath.Join(dir, "global-stats.json")

	words := []entity.Word{
		{ID: 1, Word: "Abate", Definition: "To lessen", Synonym: "subside"},
		{ID: 2, Word: "Cogent", Definition: "Convincing", Synonym: "compelling"},
		{ID: 3, Word: "Candor", Definition: "Frankness", Synonym: "honesty"},
	}
	data, err := json.Marshal(words)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(catalogPath, data, 0o644))
	require.NoError(t, os.WriteFile(statsPath, []byte(`{
		"1": {"correct": 4, "incorrect": 1, "totalAttempts": 5, "difficultyScore": 0.2},
		"2": {"correct": 1, "incorrect": 5, "totalAttempts": 6, "difficultyScore": 0.8333333333},
		"3": {"correct": 1, "incorrect": 1, "totalAttempts": 2, "difficultyScore": 0.5}
	}`), 0o644))

	stdout, err := execute(t, "top-missed", "--catalog", catalogPath, "--stats", statsPath, "--limit", "10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4, stdout)
	assert.Contains(t, lines[0], "WORD")
	assert.Contains(t, lines[1], "Cogent")
	assert.Contains(t, lines[1], "83")
	assert.Contains(t, lines[2], "Abate")
	assert.Equal(t, "Tracked words: 3", lines[3])

	stdout, err = execute(t, "top-missed", "--catalog", catalogPath, "--stats", statsPath, "--min-attempts", "1", "--limit", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 3)
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("2")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = parseVersion("two")
	assert.Error(t, err)
	_, err = parseVersion("-5")
	assert.Error(t, err)
}
