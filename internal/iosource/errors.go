package iosource

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/pkg/errcode"
)

// FileNotFoundError is returned when an input path does not point to a
// regular file.
func FileNotFoundError(path string, err error) error {
	msg := `Cannot find input file <em>%s</em>

<em>How to fix:</em>
  Check the path: <em>ls -l %s</em>`
	vars := []any{path, path}
	if err == nil {
		err = errors.New("not a regular file")
	}

	return &gn.Error{
		Code: errcode.SourceFileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("file '%s' not found: %w", path, err),
	}
}

// NotTabularError is returned when a file cannot be read as a spreadsheet
// or a delimited text table.
func NotTabularError(path string, err error) error {
	msg := `File <em>%s</em> is not a supported table

<em>Supported formats:</em> .xlsx, .csv, .tsv`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SourceNotTabularError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("file '%s' is not tabular: %w", path, err),
	}
}

// UnrecognizedFormatError is returned when no header row of a file matches
// any known IOC file layout.
func UnrecognizedFormatError(path string) error {
	msg := `Unrecognized format of <em>%s</em>

<em>Expected one of:</em>
  - IOC Master list
  - IOC vs other lists
  - IOC multilingual list
  - IOC complementary list (extinct flags and codes)`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SourceUnrecognizedFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("file '%s' has unrecognized format", path),
	}
}

// ReadSourceError is returned when reading a recognized file fails part
// way through.
func ReadSourceError(path string, err error) error {
	msg := `Cannot read <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SourceReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read '%s': %w", path, err),
	}
}
