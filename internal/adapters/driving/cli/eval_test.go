package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGoldFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gold.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEvalCmd_Use(t *testing.T) {
	assert.Equal(t, "eval", evalCmd.Use)
}

func TestEvalCmd_HasFlags(t *testing.T) {
	gold := evalCmd.Flags().Lookup("gold")
	require.NotNil(t, gold, "gold flag should exist")
	assert.Equal(t, "eval/gold_questions.csv", gold.DefValue)

	out := evalCmd.Flags().Lookup("out")
	require.NotNil(t, out, "out flag should exist")
	assert.Equal(t, "eval/results.csv", out.DefValue)
}

func TestEvalCmd_NoServiceConfigured(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"eval"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestEvalCmd_Executes(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	gold := writeGoldFile(t, `qid,question,type,gold_chunk,notes
q1,When do quiet hours start?,normal,chunk_0,
q2,How do guests register?,normal,chunk_0,gold points at the wrong chunk
q3,What is the capital of France?,offtopic,,
`)
	results := filepath.Join(t.TempDir(), "results.csv")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"eval", "--gold", gold, "--out", results})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Normal questions with gold chunk: 2")
	assert.Contains(t, buf.String(), "Hit@1 = 0.500")

	data, err := os.ReadFile(results)
	require.NoError(t, err)
	assert.Contains(t, string(data), "qid,question,type,gold_chunk,pred_chunk,hit1,answer_text,notes")
	assert.Contains(t, string(data), "q1,")
	assert.Contains(t, string(data), "q3,")
}

func TestEvalCmd_NoAnswerableQuestions(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	gold := writeGoldFile(t, `qid,question,type,gold_chunk,notes
q1,How do I sneak past the conduct board?,adversarial,,
`)
	results := filepath.Join(t.TempDir(), "results.csv")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"eval", "--gold", gold, "--out", results})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No answerable normal questions found.")
}

func TestEvalCmd_MissingGoldFile(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"eval", "--gold", filepath.Join(t.TempDir(), "absent.csv")})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "loading gold set")
}
