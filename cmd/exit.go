/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/pkg/errcode"
)

// Exit codes of the gnioc command.
const (
	ExitOK = iota
	ExitFileNotFound
	ExitUnsupportedFile
	ExitStoreExists
	ExitNoMasterData
	ExitStructureError
	ExitOther
)

var exitCodes = map[gn.ErrorCode]int{
	errcode.SourceFileNotFoundError:       ExitFileNotFound,
	errcode.SourceNotTabularError:         ExitUnsupportedFile,
	errcode.SourceUnrecognizedFormatError: ExitUnsupportedFile,
	errcode.StoreExistsError:              ExitStoreExists,
	errcode.StoreNoMasterDataError:        ExitNoMasterData,
	errcode.TaxonomyHierarchyError:        ExitStructureError,
	errcode.TaxonomyDuplicateKeyError:     ExitStructureError,
	errcode.TaxonomyBrokenReferenceError:  ExitStructureError,
	errcode.TaxonomyCycleError:            ExitStructureError,
	errcode.TaxonomyMalformedRecordError:  ExitStructureError,
}

// exitCode converts an error to the exit code of the process.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return ExitOther
	}
	if res, ok := exitCodes[gnErr.Code]; ok {
		return res
	}
	return ExitOther
}
