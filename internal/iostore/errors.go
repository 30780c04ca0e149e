package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnioc/pkg/errcode"
)

func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

// StoreExistsError is returned when Write finds an existing taxonomy
// directory.
func StoreExistsError(dir string) error {
	msg := `Taxonomy directory <em>%s</em> already exists

<em>How to fix:</em>
  Remove it or use another data directory: <em>gnioc -w -D other/dir</em>`
	vars := []any{dir}

	return &gn.Error{
		Code: errcode.StoreExistsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: directory '%s' exists",
			caller(), dir),
	}
}

// NoMasterDataError is returned when there is neither a Master file nor a
// stored taxonomy to start from.
func NoMasterDataError(dir string) error {
	msg := `No Master data found in <em>%s</em>

<em>How to fix:</em>
  Provide an IOC Master list file, or build the taxonomy first:
  <em>gnioc -w master_ioc_list.xlsx</em>`
	vars := []any{dir}

	return &gn.Error{
		Code: errcode.StoreNoMasterDataError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no master data in '%s'",
			caller(), dir),
	}
}

func CreateDirError(dir string, err error) error {
	msg := "Cannot create %s"
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory: %w",
			caller(), err),
	}
}

func WriteFileError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			caller(), path, err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s: %w",
			caller(), path, err),
	}
}

func EncodeError(key string, err error) error {
	msg := "Cannot encode taxon <em>%s</em>"
	vars := []any{key}
	return &gn.Error{
		Code: errcode.StoreEncodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot encode %s: %w",
			caller(), key, err),
	}
}

// MalformedRecordError is returned for a store file that cannot be
// decoded or has no valid rank.
func MalformedRecordError(path string, err error) error {
	msg := `Stored taxon <em>%s</em> is malformed`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.TaxonomyMalformedRecordError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed record %s: %w",
			caller(), path, err),
	}
}

// BrokenReferenceError is returned when a stored taxon lists a subtaxon
// that has no file in the store.
func BrokenReferenceError(stem, parent string) error {
	msg := `Taxon <em>%s</em> refers to missing subtaxon <em>%s</em>`
	vars := []any{parent, stem}
	return &gn.Error{
		Code: errcode.TaxonomyBrokenReferenceError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: broken reference '%s' in '%s'",
			caller(), stem, parent),
	}
}

// CycleError is returned when a stored taxon is reached more than once
// while resolving the tree.
func CycleError(stem, parent string) error {
	msg := `Taxon <em>%s</em> is reached more than once (again from %s)`
	vars := []any{stem, parent}
	return &gn.Error{
		Code: errcode.TaxonomyCycleError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: taxon '%s' visited twice",
			caller(), stem),
	}
}
