package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/pkg/errcode"
)

func callerName() string {
	pc, _, _, _ := runtime.Caller(2)
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

// CreateDirError is returned when a gnioc config or log directory cannot
// be created under the home directory.
func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory %s: %w",
			callerName(), dir, err),
	}
}

// CopyFileError is returned when the default config.yaml cannot be
// written to the config directory.
func CopyFileError(file string, err error) error {
	msg := "Cannot write default config to <em>%s</em>"
	vars := []any{file}
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write config %s: %w",
			callerName(), file, err),
	}
}

// ReadFileError is returned when an existing config file cannot be read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read config file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read config %s: %w",
			callerName(), path, err),
	}
}
