package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-drift/clockface/pkg/errors"
)

// redirectLogs sends the standard logger and reported errors to the file at
// path, or to fallback when path is empty. The returned function restores
// the previous outputs and closes the file.
func redirectLogs(path string, fallback io.Writer) (restore func(), err error) {
	out := fallback
	var f *os.File
	if path != "" {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
	}

	prevOut := log.Writer()
	log.SetOutput(out)
	prevHandler := errors.SetHandler(&errors.LogHandler{Out: out})
	return func() {
		errors.SetHandler(prevHandler)
		log.SetOutput(prevOut)
		if f != nil {
			f.Close()
		}
	}, nil
}
