// Package iostore keeps a taxonomy on disk as a directory of JSON files,
// one file per taxon plus a version file.
package iostore

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnioc/pkg/config"
	"github.com/gnames/gnioc/pkg/ioc"
	"github.com/gnames/gnsys"
)

type iostore struct {
	cfg *config.Config
	dir string
	enc gnfmt.GNjson
}

// New creates a store rooted at the taxonomy directory of the
// configuration.
func New(cfg *config.Config) ioc.Store {
	return &iostore{
		cfg: cfg,
		dir: cfg.TaxonomyDir(),
		enc: gnfmt.GNjson{Pretty: true},
	}
}

// Dir returns the taxonomy directory.
func (s *iostore) Dir() string {
	return s.dir
}

// Exists reports whether the taxonomy directory is present.
func (s *iostore) Exists() bool {
	_, err := os.Stat(s.dir)
	return !errors.Is(err, fs.ErrNotExist)
}

// Write saves the taxonomy. It refuses to touch an existing directory.
// Files are written to a temporary sibling directory that is renamed to the
// taxonomy directory only when every file is in place.
func (s *iostore) Write(tx *ioc.Taxonomy) error {
	if s.Exists() {
		return StoreExistsError(s.dir)
	}

	parent := filepath.Dir(s.dir)
	err := gnsys.MakeDir(parent)
	if err != nil {
		return CreateDirError(parent, err)
	}

	tmp, err := os.MkdirTemp(parent, ".ioc-*")
	if err != nil {
		return CreateDirError(parent, err)
	}
	defer os.RemoveAll(tmp)

	roots := make([]string, len(tx.Taxa))
	for i, t := range tx.Taxa {
		roots[i] = t.Stem()
	}
	vr := versionRecord{Version: tx.Version, Roots: roots}
	if err = s.writeJSON(tmp, VersionFile, VersionFile, vr); err != nil {
		return err
	}

	var bar *pb.ProgressBar
	total := tx.Len()
	if s.cfg.WithProgress {
		bar = newProgressBar(total, "Writing taxa: ")
		defer bar.Finish()
	}

	for _, t := range tx.Taxa {
		if err = s.writeTaxon(tmp, t, bar); err != nil {
			return err
		}
	}

	if err = os.Chmod(tmp, 0755); err != nil {
		return CreateDirError(s.dir, err)
	}
	if err = os.Rename(tmp, s.dir); err != nil {
		return CreateDirError(s.dir, err)
	}

	slog.Info("Taxonomy written",
		"dir", s.dir,
		"version", tx.Version,
		"taxa", humanize.Comma(int64(total)),
	)
	return nil
}

// writeTaxon writes subtaxa before their parent.
func (s *iostore) writeTaxon(dir string, t *ioc.Taxon, bar *pb.ProgressBar) error {
	for _, st := range t.Subtaxa {
		if err := s.writeTaxon(dir, st, bar); err != nil {
			return err
		}
	}

	err := s.writeJSON(dir, t.Key(), t.Stem()+".json", newStoredTaxon(t))
	if err != nil {
		return err
	}
	if bar != nil {
		bar.Increment()
	}
	return nil
}

func (s *iostore) writeJSON(dir, key, name string, obj any) error {
	data, err := s.enc.Encode(obj)
	if err != nil {
		return EncodeError(key, err)
	}

	path := filepath.Join(dir, name)
	if err = os.WriteFile(path, data, 0644); err != nil {
		return WriteFileError(filepath.Join(s.dir, name), err)
	}
	return nil
}
