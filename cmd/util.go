// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/holtgrewe/cbqc/internal"
	"github.com/holtgrewe/cbqc/utils"
)

// ProgramMessage is the first line printed when the cbqc binary is
// called.
var ProgramMessage string

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

func checkFileError(parameter, format string, v ...interface{}) error {
	return &internal.ConfigurationError{Field: parameter, Reason: fmt.Sprintf(format, v...)}
}

func checkExist(parameter, filename string) error {
	if len(filename) == 0 {
		return checkFileError(parameter, "missing filename")
	}
	if filename[0] == '-' {
		return checkFileError(parameter, "missing filename before %v", filename)
	}
	if _, err := os.Stat(filename); err == nil {
		return nil
	} else if os.IsNotExist(err) {
		return checkFileError(parameter, "file %v does not exist", filename)
	} else if os.IsPermission(err) {
		return checkFileError(parameter, "no permission to read file %v", filename)
	} else {
		return checkFileError(parameter, "%v when trying to access file %v", err, filename)
	}
}

func checkCreate(parameter, filename string) error {
	if len(filename) == 0 {
		return checkFileError(parameter, "missing filename")
	}
	if filename[0] == '-' {
		return checkFileError(parameter, "missing filename before %v", filename)
	}
	if _, err := os.Stat(filename); err == nil {
		// Assume that the file has been written by previous cbqc runs, and can be overwritten.
		return nil
	}
	err := os.MkdirAll(filepath.Dir(filename), 0700)
	if err == nil {
		err = os.WriteFile(filename, nil, 0666)
	}
	if err != nil {
		if os.IsPermission(err) {
			return checkFileError(parameter, "no permission to create file %v", filename)
		}
		return checkFileError(parameter, "%v when trying to create file %v", err, filename)
	}
	_ = os.Remove(filename)
	return nil
}

func createLogFilename() string {
	t := time.Now()
	zone, _ := t.Zone()
	return fmt.Sprintf("logs/cbqc/cbqc-%d-%02d-%02d-%02d-%02d-%02d-%09d-%v.log", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

// setLogOutput duplicates everything written to stderr, including the
// log output, into a fresh log file below path.
func setLogOutput(path string) error {
	fullPath := filepath.Join(path, createLogFilename())
	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		return err
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		return err
	}

	multi := io.MultiWriter(f, ferr)

	log.SetOutput(multi)
	log.Println("Created log file at", fullPath)
	log.Println("Command line:", os.Args)
	return nil
}

func timedRun(timed bool, msg string, f func() error) error {
	if timed {
		log.Println(msg)
		start := time.Now()
		defer func() {
			end := time.Now()
			log.Println("Elapsed time: ", end.Sub(start))
		}()
	}
	return f()
}
