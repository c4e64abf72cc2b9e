package appcore

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mitoseqfix/internal/config"
	"mitoseqfix/internal/logger"
	"mitoseqfix/internal/metrics"
	"mitoseqfix/internal/output"
	"mitoseqfix/internal/writers"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Size = 8
	cfg.Window.Overlap = 2
	return cfg
}

func TestNewRepairerIdentity(t *testing.T) {
	rep, err := NewRepairer(testConfig(t), logger.NewForTests(), metrics.New())
	require.NoError(t, err)
	assert.Equal(t, 8, rep.Config().Window.Size)

	seq := strings.Repeat("acgtn", 7)
	got, err := rep.Repair(context.Background(), seq)
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(seq), got)
}

func TestNewRepairerBadBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Inference.Backend = "gpu"
	_, err := NewRepairer(cfg, logger.NewForTests(), nil)
	require.Error(t, err)
}

func TestStreamFASTA(t *testing.T) {
	rep, err := NewRepairer(testConfig(t), logger.NewForTests(), nil)
	require.NoError(t, err)

	in := ">a one\nacgt\n>b\n" + strings.Repeat("n", 20) + "\n"
	var out bytes.Buffer
	n, err := StreamFASTA(context.Background(), &out, writers.FormatFASTA, strings.NewReader(in), rep)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, ">a one\nACGT\n>b\n"+strings.Repeat("N", 20)+"\n", out.String())
}

func TestStreamFASTAUnknownFormat(t *testing.T) {
	_, err := StreamFASTA(context.Background(), &bytes.Buffer{}, "xml", strings.NewReader(">a\nA\n"), nil)
	require.Error(t, err)
}

func TestWriteOne(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteOne(&out, writers.FormatText, output.Result{Repaired: "ACGT"}))
	assert.Equal(t, "ACGT\n", out.String())
}
