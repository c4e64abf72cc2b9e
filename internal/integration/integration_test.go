// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mitoseqfix/internal/app"
	"mitoseqfix/internal/evalapp"
	"mitoseqfix/pkg/api"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func randomSeq(n int, seed int64) string {
	const syms = "ACGTNacgtn"
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = syms[r.Intn(len(syms))]
	}
	return string(b)
}

func requireCat(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
}

func TestEndToEndIdentity(t *testing.T) {
	seq := randomSeq(5000, 1)
	in := write(t, "seq.txt", seq+"\n")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-i", in, "--log-level", "disabled"}, &out, &errBuf)
	require.Equal(t, 0, code, errBuf.String())
	assert.Equal(t, strings.ToUpper(seq)+"\n", out.String())
}

// The command backend round-trips each window through an external process;
// cat echoes the window back.
func TestCommandBackendParallelMatchesSerial(t *testing.T) {
	requireCat(t)
	seq := randomSeq(700, 2)
	in := write(t, "seq.txt", seq)

	run := func(workers int) string {
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"-i", in,
			"--backend", "command", "--model-cmd", "cat",
			"--window", "64", "--overlap", "16",
			"--workers", fmt.Sprint(workers),
			"--format", "jsonl",
			"--log-level", "disabled",
		}, &out, &errB)
		require.Equal(t, 0, code, errB.String())
		return out.String()
	}

	serial := run(1)
	parallel := run(4)
	assert.Equal(t, serial, parallel)

	var v api.RepairV1
	require.NoError(t, json.Unmarshal([]byte(serial), &v))
	assert.Equal(t, strings.ToUpper(seq), v.Repaired)
	assert.Equal(t, 700, v.OutputLen)
}

func TestHTTPBackendFASTAGzip(t *testing.T) {
	var calls atomic.Int64
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Fail the first call to exercise retries.
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var body struct {
			Codes []int `json:"codes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for i, c := range body.Codes {
			if c == 4 {
				body.Codes[i] = 0 // model fills every gap with A
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer model.Close()

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write([]byte(">m1 sample\nACGTNNACGT\nNNNN\n>m2\nnnnn\n"))
	require.NoError(t, zw.Close())
	fa := write(t, "in.fa.gz", gz.String())

	var out, errB bytes.Buffer
	code := app.Run([]string{
		"--fasta", "-i", fa,
		"--backend", "http", "--model-url", model.URL,
		"--window", "8", "--overlap", "3",
		"--format", "fasta",
		"--log-level", "disabled",
	}, &out, &errB)
	require.Equal(t, 0, code, errB.String())
	assert.Equal(t, ">m1 sample\nACGTAAACGTAAAA\n>m2\nAAAA\n", out.String())
	assert.Greater(t, calls.Load(), int64(1))
}

func TestEvalEndToEnd(t *testing.T) {
	csv := "damage_type,damaged,clean\n" +
		"deamination,acgtacgt,ACGTACGT\n" +
		"gap,NNNNACGT,ACGTACGT\n"
	ds := write(t, "test.csv", csv)

	var out, errB bytes.Buffer
	code := evalapp.Run([]string{"-d", ds, "--format", "json", "--window", "4", "--overlap", "1", "--log-level", "disabled"}, &out, &errB)
	require.Equal(t, 0, code, errB.String())

	var rep api.EvalReportV1
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, 2, rep.Samples)
	assert.InDelta(t, 0.75, rep.Overall, 1e-9)
}

func TestCtrlC_MidRepair_Exit130(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	in := write(t, "seq.txt", randomSeq(64, 3))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	var errB bytes.Buffer
	code := app.RunContext(ctx, []string{
		"-i", in,
		"--backend", "command", "--model-cmd", "sleep 10",
		"--window", "16", "--overlap", "4",
		"--log-level", "disabled",
	}, &bytes.Buffer{}, &errB)
	assert.Equal(t, 130, code, errB.String())
}
