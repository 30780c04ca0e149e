package iostore

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnioc/pkg/ioc"
	"golang.org/x/sync/errgroup"
)

// record is a decoded store file together with its file stem.
type record struct {
	stem  string
	taxon *storedTaxon
}

// Read loads the stored taxonomy. Root taxa follow the order kept in the
// version file. Stores without that list get their roots ordered by file
// stems.
func (s *iostore) Read() (*ioc.Taxonomy, error) {
	if !s.Exists() {
		return nil, NoMasterDataError(s.dir)
	}

	vr, err := s.readVersion()
	if err != nil {
		return nil, err
	}

	records, err := s.loadRecords()
	if err != nil {
		return nil, err
	}

	roots, err := rootStems(vr.Roots, records)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, NoMasterDataError(s.dir)
	}

	tx := ioc.New(vr.Version)
	r := resolver{
		records: records,
		visited: make(map[string]struct{}, len(records)),
		stats:   &tx.Stats,
	}
	for _, stem := range roots {
		t, err := r.resolve(stem, nil)
		if err != nil {
			return nil, err
		}
		tx.Taxa = append(tx.Taxa, t)
	}

	if orphans := len(records) - len(r.visited); orphans > 0 {
		slog.Warn("Stored taxa not reachable from any infraclass",
			"dir", s.dir, "count", orphans)
		gn.Warn("<em>%d</em> stored taxa are not reachable from any infraclass",
			orphans)
	}

	if err = tx.Reindex(); err != nil {
		return nil, err
	}

	slog.Info("Taxonomy loaded",
		"dir", s.dir, "version", vr.Version, "taxa", len(tx.Index))
	return tx, nil
}

// rootStems checks the listed roots against the records. Without a list
// every Infraclass record is a root.
func rootStems(
	listed []string,
	records map[string]*storedTaxon,
) ([]string, error) {
	if len(listed) == 0 {
		var res []string
		for stem, rec := range records {
			if rec.Rank == ioc.Infraclass {
				res = append(res, stem)
			}
		}
		slices.Sort(res)
		return res, nil
	}

	for _, stem := range listed {
		rec, ok := records[stem]
		if !ok {
			return nil, BrokenReferenceError(stem, VersionFile)
		}
		if rec.Rank != ioc.Infraclass {
			return nil, ioc.HierarchyError(stem, rec.Rank, ioc.UnknownRank)
		}
	}
	return listed, nil
}

func (s *iostore) readVersion() (versionRecord, error) {
	var res versionRecord
	path := filepath.Join(s.dir, VersionFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return res, NoMasterDataError(s.dir)
	}
	if err != nil {
		return res, ReadFileError(path, err)
	}
	if err = s.enc.Decode(data, &res); err != nil {
		return res, MalformedRecordError(path, err)
	}
	return res, nil
}

// taxonFiles returns paths of all taxon files of the store.
func (s *iostore) taxonFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, ReadFileError(s.dir, err)
	}

	var res []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() ||
			name == VersionFile ||
			strings.HasPrefix(name, ".") ||
			filepath.Ext(name) != ".json" {
			continue
		}
		res = append(res, filepath.Join(s.dir, name))
	}
	return res, nil
}

// loadRecords decodes every taxon file once, using JobsNumber workers and
// one collector.
func (s *iostore) loadRecords() (map[string]*storedTaxon, error) {
	paths, err := s.taxonFiles()
	if err != nil {
		return nil, err
	}

	chIn := make(chan string)
	chOut := make(chan record)

	g, ctx := errgroup.WithContext(context.Background())
	var wg sync.WaitGroup

	for range max(s.cfg.JobsNumber, 1) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return decodeWorker(ctx, chIn, chOut)
		})
	}

	res := make(map[string]*storedTaxon, len(paths))
	g.Go(func() error {
		return collectRecords(ctx, chOut, res)
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		defer close(chIn)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- path:
			}
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeWorker(
	ctx context.Context,
	chIn <-chan string,
	chOut chan<- record,
) error {
	enc := gnfmt.GNjson{}
	for path := range chIn {
		data, err := os.ReadFile(path)
		if err != nil {
			return ReadFileError(path, err)
		}

		if err = validateRecord(data); err != nil {
			return MalformedRecordError(path, err)
		}

		var st storedTaxon
		if err = enc.Decode(data, &st); err != nil {
			return MalformedRecordError(path, err)
		}

		stem := strings.TrimSuffix(filepath.Base(path), ".json")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- record{stem: stem, taxon: &st}:
		}
	}
	return nil
}

func collectRecords(
	ctx context.Context,
	chOut <-chan record,
	res map[string]*storedTaxon,
) error {
	for rec := range chOut {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			res[rec.stem] = rec.taxon
		}
	}
	return nil
}

// resolver rebuilds the forest from decoded records.
type resolver struct {
	records map[string]*storedTaxon
	visited map[string]struct{}
	stats   *ioc.Stats
}

func (r *resolver) resolve(stem string, parent *ioc.Taxon) (*ioc.Taxon, error) {
	parentStem := ""
	if parent != nil {
		parentStem = parent.Stem()
	}

	rec, ok := r.records[stem]
	if !ok {
		return nil, BrokenReferenceError(stem, parentStem)
	}
	if _, ok = r.visited[stem]; ok {
		return nil, CycleError(stem, parentStem)
	}
	r.visited[stem] = struct{}{}

	res := rec.taxon()
	if parent != nil && !parent.Rank.IsParentOf(res.Rank) {
		return nil, ioc.HierarchyError(res.Key(), res.Rank, parent.Rank)
	}
	r.stats.Inc(res.Rank)

	for _, sub := range rec.Subtaxa {
		t, err := r.resolve(sub, res)
		if err != nil {
			return nil, err
		}
		res.Subtaxa = append(res.Subtaxa, t)
	}
	return res, nil
}
