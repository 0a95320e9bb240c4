package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sot-tech/shootout/registry"
)

// closingWriter accepts limit bytes and fails afterwards like a closed pipe.
type closingWriter struct {
	bytes.Buffer
	limit int
}

func (w *closingWriter) Write(p []byte) (int, error) {
	if w.Len()+len(p) > w.limit {
		return 0, syscall.EPIPE
	}
	return w.Buffer.Write(p)
}

var quickBench = []string{"-window", "1ms", "-samples", "1", "-buffer", "64"}

func TestStreamBaseline(t *testing.T) {
	w := &closingWriter{limit: 80}
	var stderr bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-g", "0"}, w, &stderr))
	require.Equal(t, make([]byte, 80), w.Bytes())
}

func TestStreamByName(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-n", "baseline", "-words", "3"}, &out, &bytes.Buffer{}))
	require.Equal(t, make([]byte, 24), out.Bytes())

	require.Equal(t, exitFailure, run([]string{"-n", "nosuchgen"}, &out, &bytes.Buffer{}))
}

func TestStreamBounds(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, exitFailure, run([]string{"-g", "20"}, &out, &bytes.Buffer{}))
	require.Equal(t, exitFailure, run([]string{"-g", "-1"}, &out, &bytes.Buffer{}))
	require.Zero(t, out.Len())

	last := []string{"-g", "19", "-words", "2"}
	require.Equal(t, registry.Count()-1, 19)
	require.Equal(t, exitOK, run(last, &out, &bytes.Buffer{}))
	require.Equal(t, 16, out.Len())
}

func TestBenchAll(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, exitOK, run(quickBench, &out, &bytes.Buffer{}))
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, registry.Count())
	for i, d := range registry.Descriptors() {
		require.True(t, strings.HasPrefix(lines[i], d.Name), lines[i])
		require.True(t, strings.HasSuffix(lines[i], " MB/s"), lines[i])
		require.NotContains(t, lines[i], "-")
	}
}

func TestBenchRange(t *testing.T) {
	var out bytes.Buffer
	args := append([]string{"-from", "6", "-to", "8"}, quickBench...)
	require.Equal(t, exitOK, run(args, &out, &bytes.Buffer{}))
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "splitmix64 "))
	require.True(t, strings.HasPrefix(lines[2], "xoshiro256plusplus "))

	out.Reset()
	args = append([]string{"-from", "8", "-to", "6"}, quickBench...)
	require.Equal(t, exitFailure, run(args, &out, &bytes.Buffer{}))
	args = append([]string{"-to", "20"}, quickBench...)
	require.Equal(t, exitFailure, run(args, &out, &bytes.Buffer{}))
	require.Zero(t, out.Len())
}

func TestBenchBencodeFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shootout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
format: bencode
bench:
  window: 1ms
  samples: 1
  buffer_words: 64
`), 0o600))

	var out bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-config", path, "-from", "0", "-to", "1"}, &out, &bytes.Buffer{}))
	doc := out.String()
	require.True(t, strings.HasPrefix(doc, "d7:resultsl"), doc)
	require.Contains(t, doc, "4:name8:baseline")
	require.Contains(t, doc, "4:name14:xorshift64star")
	require.Contains(t, doc, "6:window3:1ms")
}

func TestBadConfigFile(t *testing.T) {
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	require.Equal(t, exitFailure, run([]string{"-config", missing}, &out, &bytes.Buffer{}))
	require.Zero(t, out.Len())
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, exitOK, run([]string{"-h"}, &out, &bytes.Buffer{}))
	help := out.String()
	require.True(t, strings.HasPrefix(help, "usage: shootout "), help)
	for _, f := range []string{"-g", "-n", "-words", "-from", "-to", "-format", "-serve", "-metrics", "-config"} {
		require.Contains(t, help, "\n  "+f+" ", f)
	}
	_, list, ok := strings.Cut(help, "generators:\n")
	require.True(t, ok)
	lines := strings.Split(strings.TrimSuffix(list, "\n"), "\n")
	require.Len(t, lines, registry.Count())
	require.Equal(t, "0 baseline", lines[0])
	require.Equal(t, "19 chacha20", lines[19])
}

func TestBadFlags(t *testing.T) {
	var out, stderr bytes.Buffer
	require.Equal(t, exitUsage, run([]string{"-bogus"}, &out, &stderr))
	require.Contains(t, stderr.String(), "bogus")
	require.Equal(t, exitUsage, run([]string{"extra"}, &out, &bytes.Buffer{}))
	require.Equal(t, exitFailure, run(append([]string{"-format", "xml"}, quickBench...), &out, &bytes.Buffer{}))
	require.Zero(t, out.Len())
}
