package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/atomic"
)

// openInput returns stdin for "" and "-", the named file otherwise.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// writeOutput runs write against stdout, or, when path is set, against a
// pipe feeding an atomic replacement of path. The file only changes if
// write succeeds.
func writeOutput(path string, write func(w io.Writer) error) error {
	if path == "" || path == "-" {
		return write(bufio.NewWriter(os.Stdout))
	}
	pr, pw := io.Pipe()
	errc := make(chan error, 1)
	go func() {
		bw := bufio.NewWriter(pw)
		err := write(bw)
		if err == nil {
			err = bw.Flush()
		}
		pw.CloseWithError(err)
		errc <- err
	}()
	err := atomic.WriteFile(path, pr)
	// Unblock the writer if the file could not take any more.
	pr.CloseWithError(err)
	if werr := <-errc; werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	slog.Debug("wrote output", "path", path)
	return nil
}
