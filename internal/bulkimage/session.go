package bulkimage

import (
	"errors"
	"strings"
	"sync"

	"atlas/internal/catalog"
	"atlas/internal/match"
)

// ErrBusy indicates a bulk update is running and the working set cannot be
// modified until it finishes.
var ErrBusy = errors.New("bulk update in progress")

// ErrNoMatches indicates no file in the working set is paired with a record.
var ErrNoMatches = errors.New("no matched files to apply")

// File is an image candidate in the working set.
type File struct {
	Name string
	Path string
}

// Match pairs a file with the catalogue record it will update. Record is nil
// while the file is unmatched.
type Match struct {
	File   File
	Record *catalog.Record
}

// Matched reports whether the file has a target record.
func (m Match) Matched() bool {
	return m.Record != nil
}

// Session holds the working set for a bulk image update: the candidate
// records, the selected files, and the current file-to-record pairing.
// Automatic matching can be overridden per file and recomputed from scratch.
// All methods are safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	records []*catalog.Record
	files   []File
	matches []Match
	busy    bool
}

// NewSession creates a session over a snapshot of candidate records. Later
// catalogue changes do not affect the session until a new one is created.
func NewSession(records []*catalog.Record) *Session {
	return &Session{records: records}
}

// SelectFiles replaces the working set and recomputes matches. Selecting an
// empty list keeps the current working set.
func (s *Session) SelectFiles(files []File) error {
	if len(files) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}

	s.files = files
	s.rematchLocked()
	return nil
}

// Reanalyze recomputes every match from the records snapshot, discarding any
// manual assignments.
func (s *Session) Reanalyze() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.rematchLocked()
	return nil
}

// Assign manually pairs a file with a record by id. Unknown filenames and
// unknown record ids leave the working set unchanged.
func (s *Session) Assign(filename, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}

	var record *catalog.Record
	for _, candidate := range s.records {
		if candidate.ID == recordID {
			record = candidate
			break
		}
	}
	if record == nil {
		return nil
	}

	for i := range s.matches {
		if s.matches[i].File.Name == filename {
			s.matches[i].Record = record
			break
		}
	}
	return nil
}

// Matches returns a copy of the current working set pairing.
func (s *Session) Matches() []Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Match(nil), s.matches...)
}

// Filter returns the matches whose filename or paired record title contains
// the query, case-insensitively. An empty query returns everything.
func (s *Session) Filter(query string) []Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		return append([]Match(nil), s.matches...)
	}

	needle := strings.ToLower(query)
	var filtered []Match
	for _, m := range s.matches {
		if strings.Contains(strings.ToLower(m.File.Name), needle) {
			filtered = append(filtered, m)
			continue
		}
		if m.Record != nil && strings.Contains(strings.ToLower(m.Record.Title), needle) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// MatchedCount returns how many files currently have a target record.
func (s *Session) MatchedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, m := range s.matches {
		if m.Record != nil {
			count++
		}
	}
	return count
}

// TotalCount returns the number of files in the working set.
func (s *Session) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

// Begin marks the session busy and returns a snapshot of the matched subset
// for the orchestrator to work through. ErrBusy is returned while another run
// is active and ErrNoMatches when nothing is matched.
func (s *Session) Begin() ([]Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return nil, ErrBusy
	}

	var matched []Match
	for _, m := range s.matches {
		if m.Record != nil {
			matched = append(matched, m)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoMatches
	}

	s.busy = true
	return matched, nil
}

// Finish clears the busy flag after a run completes.
func (s *Session) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

func (s *Session) rematchLocked() {
	s.matches = make([]Match, len(s.files))
	for i, file := range s.files {
		s.matches[i] = Match{
			File:   file,
			Record: match.Best(file.Name, s.records),
		}
	}
}
