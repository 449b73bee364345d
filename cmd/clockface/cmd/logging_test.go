package cmd

import (
	"bytes"
	stderrors "errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/clockface/pkg/errors"
)

func TestRedirectLogsToFile(t *testing.T) {
	var before bytes.Buffer
	prevOut := log.Writer()
	log.SetOutput(&before)
	defer log.SetOutput(prevOut)

	path := filepath.Join(t.TempDir(), "clock.log")
	restore, err := redirectLogs(path, os.Stderr)
	if err != nil {
		t.Fatal(err)
	}
	log.Print("window opened")
	errors.Report(&errors.DriftError{Op: "widgets.Clock.Paint", Kind: errors.KindRender, Err: stderrors.New("no face")})
	restore()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"window opened", "[drift error] widgets.Clock.Paint: no face"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file %q missing %q", data, want)
		}
	}
	if before.Len() != 0 {
		t.Errorf("previous output received %q", before.String())
	}

	log.Print("after restore")
	if !strings.Contains(before.String(), "after restore") {
		t.Error("restore should put the previous log output back")
	}
}

func TestRedirectLogsFallback(t *testing.T) {
	prevOut := log.Writer()
	defer log.SetOutput(prevOut)

	var fallback bytes.Buffer
	restore, err := redirectLogs("", &fallback)
	if err != nil {
		t.Fatal(err)
	}
	defer restore()
	log.Print("ticking")
	if !strings.Contains(fallback.String(), "ticking") {
		t.Errorf("fallback = %q, want the log line", fallback.String())
	}
}

func TestRedirectLogsBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "clock.log")
	if _, err := redirectLogs(path, os.Stderr); err == nil {
		t.Error("expected an error for an unwritable log path")
	}
}
