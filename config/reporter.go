package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"
	"text/tabwriter"
	"time"

	"cssthis/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report archive at configured destination falling
// back to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{
		file:    f,
		created: time.Now(),
		files:   make(map[string]string),
		data:    make(map[string][]byte),
		sheets:  make(map[string]*sheetRecord),
	}, nil
}

// sheetRecord is everything report knows about a single stylesheet.
type sheetRecord struct {
	source    []byte
	result    []byte
	resultExt string
	tree      string
	rules     int
	keyframes int
	output    string
	elapsed   time.Duration
	err       error
	done      bool
}

func (s *sheetRecord) status() string {
	switch {
	case s.err != nil:
		return "failed: " + s.err.Error()
	case s.done:
		return "ok"
	default:
		return "incomplete"
	}
}

// Report collects troubleshooting data of a single run: processed
// configuration, logs and, for every compiled stylesheet, decoded source,
// result and dump of the result tree. Methods are safe to call on nil
// report, which means no report was requested.
type Report struct {
	mu      sync.Mutex
	file    *os.File
	created time.Time
	files   map[string]string // archive name to path on disk
	data    map[string][]byte
	sheets  map[string]*sheetRecord // keyed by source path relative to its root
}

// Name returns absolute name of the report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file on disk to be put in the archive under name when
// report is closed. Files absent at that time are skipped.
func (r *Report) Store(name, file string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, err := filepath.Abs(file); err == nil {
		file = p
	}
	if old, exists := r.files[name]; exists && old != file {
		panic(fmt.Sprintf("report entry [%s] already refers to %s, not %s", name, old, file))
	}
	r.files[name] = file
}

// StoreData puts data in the archive under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[name]; exists {
		panic(fmt.Sprintf("report entry [%s] already has data", name))
	}
	r.data[name] = data
}

// sheet returns record for src creating it when necessary. Caller holds lock.
func (r *Report) sheet(src string) *sheetRecord {
	src = filepath.ToSlash(src)
	rec, ok := r.sheets[src]
	if !ok {
		rec = &sheetRecord{}
		r.sheets[src] = rec
	}
	return rec
}

// SheetSource records decoded text of stylesheet src.
func (r *Report) SheetSource(src string, data []byte) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sheet(src).source = data
}

// SheetResult records compiled output of stylesheet src, ext is extension
// of the output format.
func (r *Report) SheetResult(src, ext string, data []byte) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.sheet(src)
	rec.result, rec.resultExt = data, ext
}

// SheetTree records dump of the compiled tree together with number of top
// level rules and keyframes it has.
func (r *Report) SheetTree(src, dump string, rules, keyframes int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.sheet(src)
	rec.tree, rec.rules, rec.keyframes = dump, rules, keyframes
}

// SheetDone records outcome of stylesheet compilation.
func (r *Report) SheetDone(src, output string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.sheet(src)
	rec.output, rec.elapsed, rec.err, rec.done = output, elapsed, err, true
}

// Close writes the archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.file.Close()

	arc := zip.NewWriter(r.file)
	if err := r.write(arc); err != nil {
		arc.Close()
		return err
	}
	return arc.Close()
}

func (r *Report) write(arc *zip.Writer) error {
	if err := addEntry(arc, "MANIFEST", r.created, bytes.NewReader(r.manifest())); err != nil {
		return err
	}

	for _, name := range slices.Sorted(maps.Keys(r.data)) {
		if err := addEntry(arc, name, r.created, bytes.NewReader(r.data[name])); err != nil {
			return err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(r.files)) {
		if err := addFile(arc, name, r.files[name]); err != nil {
			return err
		}
	}

	for _, src := range slices.Sorted(maps.Keys(r.sheets)) {
		rec, dir := r.sheets[src], path.Join("stylesheets", src)
		parts := []struct {
			name string
			data []byte
		}{
			{"source" + path.Ext(src), rec.source},
			{"result" + rec.resultExt, rec.result},
			{"tree.txt", []byte(rec.tree)},
		}
		for _, p := range parts {
			if len(p.data) == 0 {
				continue
			}
			if err := addEntry(arc, path.Join(dir, p.name), r.created, bytes.NewReader(p.data)); err != nil {
				return err
			}
		}
	}
	return nil
}

// manifest describes archive content, stylesheets first.
func (r *Report) manifest() []byte {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s %s report, %s\n", misc.GetAppName(), misc.GetVersion(), r.created.UTC().Format(time.UnixDate))

	tw := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
	if len(r.sheets) > 0 {
		fmt.Fprintf(tw, "\nSTYLESHEET\tRULES\tKEYFRAMES\tELAPSED\tOUTPUT\tSTATUS\n")
		for _, src := range slices.Sorted(maps.Keys(r.sheets)) {
			rec := r.sheets[src]
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n", src, rec.rules, rec.keyframes, rec.elapsed.Round(time.Microsecond), rec.output, rec.status())
		}
	}
	if len(r.files) > 0 {
		fmt.Fprintf(tw, "\nFILE\tLOCATION\n")
		for _, name := range slices.Sorted(maps.Keys(r.files)) {
			fmt.Fprintf(tw, "%s\t%s\n", name, r.files[name])
		}
	}
	if len(r.data) > 0 {
		fmt.Fprintf(tw, "\nDATA\tSIZE\n")
		for _, name := range slices.Sorted(maps.Keys(r.data)) {
			fmt.Fprintf(tw, "%s\t%d\n", name, len(r.data[name]))
		}
	}
	tw.Flush()
	return buf.Bytes()
}

func addFile(arc *zip.Writer, name, file string) error {
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		// logs which were never created
		return nil
	}
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return addEntry(arc, name, info.ModTime(), f)
}

func addEntry(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
