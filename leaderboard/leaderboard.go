// Package leaderboard keeps the ten best scores of each ranked difficulty, one
// plain text file per difficulty.
package leaderboard

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/minefield/game"
)

// MaxEntries is the number of scores kept per difficulty
const MaxEntries = 10

var ErrUnknownTier = errors.New("difficulty has no leaderboard")

// Entry is a single ranked score. Lower scores (seconds taken) rank higher.
type Entry struct {
	Rank  int
	Name  string
	Score int
}

func (entry Entry) String() string {
	return fmt.Sprintf("%d\t%s\t%d", entry.Rank, entry.Name, entry.Score)
}

type Store struct {
	dir string
	log logrus.FieldLogger
}

// New returns a Store keeping its files in dir
func New(dir string, log logrus.FieldLogger) *Store {
	return &Store{dir: dir, log: log}
}

func (store *Store) path(tier game.Difficulty) (string, error) {
	if !tier.Ranked() {
		return "", errors.Wrapf(ErrUnknownTier, "%v", tier)
	}
	return filepath.Join(store.dir, tier.String()+".txt"), nil
}

// TopScores returns the ranked scores of tier, best first. A tier with no
// scores yet returns an empty list.
func (store *Store) TopScores(tier game.Difficulty) ([]Entry, error) {
	path, err := store.path(tier)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return []Entry{}, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()

	entries := []Entry{}
	scanner := bufio.NewScanner(file)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := parseEntry(line)
		if err != nil {
			store.log.WithFields(logrus.Fields{
				"path": path,
				"line": lineNum,
			}).WithError(err).Warn("skipping malformed score")
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	sortEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	rerank(entries)
	return entries, nil
}

// RecordScore adds a score to tier's leaderboard, if it is good enough to
// make the top MaxEntries. Ties rank below the scores already recorded.
func (store *Store) RecordScore(tier game.Difficulty, name string, score int) error {
	path, err := store.path(tier)
	if err != nil {
		return err
	}

	entries, err := store.TopScores(tier)
	if err != nil {
		return err
	}

	entries = append(entries, Entry{Name: sanitizeName(name), Score: score})
	sortEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	rerank(entries)

	if err := writeEntries(path, entries); err != nil {
		return err
	}

	store.log.WithFields(logrus.Fields{
		"difficulty": tier,
		"name":       name,
		"score":      score,
	}).Info("recorded score")
	return nil
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score < entries[j].Score
	})
}

func rerank(entries []Entry) {
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

func parseEntry(line string) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return Entry{}, errors.Errorf("expected 3 tab-separated fields, found %d", len(fields))
	}

	rank, err := strconv.Atoi(fields[0])
	if err != nil {
		return Entry{}, errors.Wrap(err, "rank")
	}
	score, err := strconv.Atoi(fields[2])
	if err != nil {
		return Entry{}, errors.Wrap(err, "score")
	}

	return Entry{Rank: rank, Name: fields[1], Score: score}, nil
}

var nameReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

func sanitizeName(name string) string {
	return nameReplacer.Replace(name)
}

// writeEntries atomically replaces the file at path
func writeEntries(path string, entries []Entry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0777); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	for _, entry := range entries {
		fmt.Fprintln(writer, entry.String())
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}

	return errors.Wrapf(os.Rename(tmp.Name(), path), "replacing %s", path)
}
