// Package backup copies workspace snapshots to a directory in the background.
// Offering a snapshot never blocks; when the writer is busy only the newest
// pending snapshot is kept.
package backup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pp-governance/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const filePrefix = "snapshot-"

type Dir struct {
	dir  string
	keep int
	now  func() time.Time

	mu      sync.Mutex
	closed  bool
	pending chan *models.Snapshot
	done    chan struct{}
}

// NewDir starts a backup writer for dir, keeping at most keep files
// (keep <= 0 keeps everything).
func NewDir(dir string, keep int) (*Dir, error) {
	if dir == "" {
		return nil, errors.New("backup: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "backup: create directory")
	}
	d := &Dir{
		dir:     dir,
		keep:    keep,
		now:     time.Now,
		pending: make(chan *models.Snapshot, 1),
		done:    make(chan struct{}),
	}
	go d.run()
	return d, nil
}

// Offer queues snap for writing, replacing any snapshot still waiting.
func (d *Dir) Offer(snap *models.Snapshot) {
	if snap == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.pending <- snap:
		return
	default:
	}
	select {
	case <-d.pending:
	default:
	}
	d.pending <- snap
}

// Close writes whatever is pending and stops the writer.
func (d *Dir) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.pending)
	d.mu.Unlock()

	<-d.done
	return nil
}

func (d *Dir) run() {
	defer close(d.done)
	for snap := range d.pending {
		if err := d.write(snap); err != nil {
			log.Printf("backup: %v", err)
			continue
		}
		if err := d.prune(); err != nil {
			log.Printf("backup: prune: %v", err)
		}
	}
}

func (d *Dir) write(snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	name := filePrefix + d.now().UTC().Format("20060102T150405.000Z") + "-" + uuid.NewString()[:8] + ".json"
	return errors.Wrap(os.WriteFile(filepath.Join(d.dir, name), data, 0o644), "write snapshot")
}

// Files lists backup files, oldest first.
func (d *Dir) Files() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) {
			continue
		}
		out = append(out, filepath.Join(d.dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func (d *Dir) prune() error {
	if d.keep <= 0 {
		return nil
	}
	files, err := d.Files()
	if err != nil {
		return err
	}
	for len(files) > d.keep {
		if err := os.Remove(files[0]); err != nil {
			return err
		}
		files = files[1:]
	}
	return nil
}
