package corpus

import (
	"fmt"
	"os"
	"time"
)

// Header is the fixed line written once when a corpus file is created.
const Header = "=== Begin scraping ===\n"

// filenameLayout is the timestamp layout embedded in generated corpus
// file names.
const filenameLayout = "20060102-150405"

// Filename returns the corpus file name for a run starting at t, in the
// form scraped_data_<YYYYMMDD-HHMMSS>.txt.
func Filename(t time.Time) string {
	return fmt.Sprintf("scraped_data_%s.txt", t.Format(filenameLayout))
}

// Writer owns the single corpus file of a run. It appends page records in
// scrape order. Each append is one complete unflushed-buffer-free write
// straight to the file, so a crash or forced stop loses at most the
// in-flight record, never prior ones.
type Writer struct {
	// f is the open file handle, held for the run's duration.
	f *os.File

	// path is the file's location, kept for reporting.
	path string
}

// Open binds a Writer to the corpus file at path.
//
// With appendMode false the file is created (or truncated) and the header
// line is written. With appendMode true the file is opened for appending;
// the header is written only when the file is new or empty, so it appears
// exactly once per file across any number of appended runs.
func Open(path string, appendMode bool) (*Writer, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644) //nolint:gosec // corpus output is not sensitive
	if err != nil {
		return nil, fmt.Errorf("open corpus file %s: %w", path, err)
	}

	needHeader := !appendMode
	if appendMode {
		info, err := f.Stat()
		if err != nil {
			_ = f.Close() //nolint:errcheck // open already failed
			return nil, fmt.Errorf("stat corpus file %s: %w", path, err)
		}
		needHeader = info.Size() == 0
	}

	if needHeader {
		if _, err := f.WriteString(Header); err != nil {
			_ = f.Close() //nolint:errcheck // report the write error
			return nil, fmt.Errorf("write corpus header: %w", err)
		}
	}

	return &Writer{f: f, path: path}, nil
}

// Path returns the corpus file's location.
func (w *Writer) Path() string {
	return w.path
}

// AppendRecord writes one page record: a delimiter line with the page
// number and URL, the extracted text, and a blank-line separator.
func (w *Writer) AppendRecord(number int, url, text string) error {
	if _, err := fmt.Fprintf(w.f, "\n=== Page #%d: %s ===\n\n%s\n\n", number, url, text); err != nil {
		return fmt.Errorf("append page record #%d: %w", number, err)
	}
	return nil
}

// Close releases the file handle. It must be called on every exit path
// of a run, including cancellation.
func (w *Writer) Close() error {
	return w.f.Close()
}
