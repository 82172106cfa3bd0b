package invoice

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/econest-bedding/storefront-api/models"
)

// Store keeps rendered invoices on disk, one file per (order, version).
// The version digest covers everything that can change what the PDF shows,
// so a status update produces a new artifact instead of overwriting the old
// one, and concurrent readers of the same version share an immutable file.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// ArtifactKey digests the order fields that appear on the invoice.
func ArtifactKey(order *models.Order) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%.2f|%d|%d",
		order.Status, order.TotalPrice, order.UpdatedAt.UnixNano(), len(order.Items))
	return hex.EncodeToString(h.Sum(nil))[:10]
}

// Path returns where the current version of an order's invoice lives.
func (s *Store) Path(order *models.Order) string {
	return filepath.Join(s.dir, fmt.Sprintf("invoice_%d_%s.pdf", order.ID, ArtifactKey(order)))
}

// Ensure renders the invoice for the order's current version unless that
// exact version already exists. The file is written to a temp name and
// renamed into place, so a reader never sees a half-written PDF. Stale
// versions for the same order are removed afterwards, best effort.
func (s *Store) Ensure(order *models.Order) (string, error) {
	path := s.Path(order)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create invoice dir: %w", err)
	}

	tmp := filepath.Join(s.dir, "."+uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create invoice temp file: %w", err)
	}
	if err := Render(order, LinesFromOrder(order), f); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("render invoice: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", err
	}

	s.removeStaleVersions(order.ID, path)
	return path, nil
}

func (s *Store) removeStaleVersions(orderID uint, keep string) {
	matches, err := filepath.Glob(filepath.Join(s.dir, fmt.Sprintf("invoice_%d_*.pdf", orderID)))
	if err != nil {
		return
	}
	for _, m := range matches {
		if m != keep {
			os.Remove(m)
		}
	}
}
