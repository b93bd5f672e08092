package vlog

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/soyart/eth-code-verifier/entity"
)

// Journal is the append-only verification log.
// It is never locked: concurrent runs rely on O_APPEND for small writes.
type Journal interface {
	Append(entity.LogEntry) error
	Entries() ([]entity.LogEntry, error)
}

type fileJournal struct {
	path string
}

func New(path string) (Journal, error) {
	if path == "" {
		return nil, errors.New("empty log file path")
	}

	return &fileJournal{path: path}, nil
}

func (j *fileJournal) Append(entry entity.LogEntry) error {
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open log file %s", j.path)
	}

	// Single write per line
	if _, err := f.WriteString(entry.String() + "\n"); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to append to log file %s", j.path)
	}

	return errors.Wrapf(f.Close(), "failed to close log file %s", j.path)
}

// Entries reads back every line of the log. A missing file has no entries.
func (j *fileJournal) Entries() ([]entity.LogEntry, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to open log file %s", j.path)
	}
	defer f.Close()

	var entries []entity.LogEntry
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, err := ParseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "bad log line %d", lineNo)
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan log file %s", j.path)
	}

	return entries, nil
}

// ParseLine is the inverse of entity.LogEntry.String
func ParseLine(line string) (entity.LogEntry, error) {
	fields := strings.Split(line, " | ")
	if len(fields) != 5 {
		return entity.LogEntry{}, errors.Errorf("expected 5 fields, got %d", len(fields))
	}

	ts, err := time.Parse(entity.LogTimeLayout, fields[0])
	if err != nil {
		return entity.LogEntry{}, errors.Wrap(err, "bad timestamp")
	}

	chainString, ok := strings.CutPrefix(fields[3], "chain:")
	if !ok {
		return entity.LogEntry{}, errors.Errorf("bad chain field %q", fields[3])
	}

	chainID, err := strconv.ParseUint(chainString, 10, 64)
	if err != nil {
		return entity.LogEntry{}, errors.Wrap(err, "bad chain id")
	}

	lenString, ok := strings.CutPrefix(fields[4], "len:")
	if !ok {
		return entity.LogEntry{}, errors.Errorf("bad len field %q", fields[4])
	}

	codeLength, err := strconv.Atoi(lenString)
	if err != nil {
		return entity.LogEntry{}, errors.Wrap(err, "bad code length")
	}

	return entity.LogEntry{
		Time:       ts,
		Address:    fields[1],
		Digest:     fields[2],
		ChainID:    chainID,
		CodeLength: codeLength,
	}, nil
}
