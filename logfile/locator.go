package logfile

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// nameRegexp matches nginx-access-ui.log-YYYYMMDD with an optional .gz suffix.
var nameRegexp = regexp.MustCompile(`^nginx-access-ui\.log-(\d{8})(\.gz)?$`)

const nameDateLayout = "20060102"

// Descriptor identifies the log file chosen for a run.
type Descriptor struct {
	Path string
	Date time.Time // Date embedded in the file name, at midnight UTC.
}

// IsZero reports whether no log file was found.
func (d Descriptor) IsZero() bool {
	return d.Path == ""
}

func (d Descriptor) IsCompressed() bool {
	return strings.HasSuffix(d.Path, gzipSuffix)
}

// ParseName extracts the date embedded in a log file name. ok is false when
// the name does not follow the log file naming pattern. A name which follows
// the pattern but whose digits are not a calendar date returns ok = true and
// a non-nil error.
func ParseName(name string) (date time.Time, ok bool, err error) {
	matches := nameRegexp.FindStringSubmatch(name)
	if matches == nil {
		return time.Time{}, false, nil
	}

	date, err = time.Parse(nameDateLayout, matches[1])
	if err != nil {
		return time.Time{}, true, fmt.Errorf("unable to parse date %q in %s: %w", matches[1], name, err)
	}
	return date, true, nil
}

// Latest selects the log file with the most recent date out of names, which
// are file names inside dir in iteration order. A later name only replaces
// the current choice if its date is strictly greater, so the first name wins
// a tie. The zero Descriptor is returned when nothing matches.
func Latest(dir string, names []string) Descriptor {
	var latest Descriptor
	for _, name := range names {
		date, ok, err := ParseName(name)
		if !ok {
			continue
		}
		if err != nil {
			log.Debug().Err(err).Str("file", name).Msg("skipping log file with invalid date")
			continue
		}

		if latest.IsZero() || date.After(latest.Date) {
			latest = Descriptor{
				Path: filepath.Join(dir, name),
				Date: date,
			}
		}
	}
	return latest
}

// Find scans dir for the most recent log file. A missing directory is
// treated the same as an empty one. Subdirectories are ignored.
func Find(dir string) (Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Descriptor{}, nil
		}
		return Descriptor{}, fmt.Errorf("unable to list log directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return Latest(dir, names), nil
}
