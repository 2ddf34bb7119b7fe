// Package file provides file-based persistence for local development and
// tests. Each table is a directory of JSON documents under the root.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hireline/hireline/pkg/persistence"
)

// Persistence implements persistence.Persistence on the local file system.
// A single process-wide mutex serializes writes, mirroring the per-document
// write serialization the hosted store provides.
type Persistence struct {
	root string
	mu   sync.RWMutex
}

// NewPersistence creates a file persistence rooted at the given directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{root: cleanRoot}
}

func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return &workflowRepository{fp: fp}
}

func (fp *Persistence) CandidateRepository() persistence.CandidateRepository {
	return &candidateRepository{fp: fp}
}

func (fp *Persistence) JobRepository() persistence.JobRepository {
	return &jobRepository{fp: fp}
}

func (fp *Persistence) ApplicationRepository() persistence.ApplicationRepository {
	return &applicationRepository{fp: fp}
}

func (fp *Persistence) EEORepository() persistence.EEORepository {
	return &eeoRepository{fp: fp}
}

func (fp *Persistence) EmailRepository() persistence.EmailRepository {
	return &emailRepository{fp: fp}
}

func (fp *Persistence) TaskRepository() persistence.TaskRepository {
	return &taskRepository{fp: fp}
}

func (fp *Persistence) NotificationRepository() persistence.NotificationRepository {
	return &notificationRepository{fp: fp}
}

func (fp *Persistence) ActivityRepository() persistence.ActivityRepository {
	return &activityRepository{fp: fp}
}

func (fp *Persistence) DecisionRepository() persistence.DecisionRepository {
	return &decisionRepository{fp: fp}
}

func (fp *Persistence) AuditRepository() persistence.AuditRepository {
	return &auditRepository{fp: fp}
}

// Document helpers. Every repository stores one JSON file per document under
// root/<table>/<id>.json.

func (fp *Persistence) tableDir(table string) string {
	return filepath.Join(fp.root, table)
}

func writeDoc(fp *Persistence, table, id string, doc any) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return writeDocLocked(fp, table, id, doc)
}

func writeDocLocked(fp *Persistence, table, id string, doc any) error {
	dir := fp.tableDir(table)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return persistence.NewStoreError("Save", table, id, err)
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return persistence.NewStoreError("Save", table, id, err)
	}

	if err := os.WriteFile(filepath.Join(dir, id+".json"), body, 0o644); err != nil {
		return persistence.NewStoreError("Save", table, id, err)
	}

	return nil
}

func readDoc[T any](fp *Persistence, table, id string, notFound error) (*T, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	return readDocLocked[T](fp, table, id, notFound)
}

func readDocLocked[T any](fp *Persistence, table, id string, notFound error) (*T, error) {
	body, err := os.ReadFile(filepath.Join(fp.tableDir(table), id+".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, persistence.NewStoreError("GetByID", table, id, notFound)
		}

		return nil, persistence.NewStoreError("GetByID", table, id, err)
	}

	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, persistence.NewStoreError("GetByID", table, id, err)
	}

	return &doc, nil
}

func listDocs[T any](fp *Persistence, table string) ([]*T, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()

	dir := fp.tableDir(table)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return make([]*T, 0), nil
	}

	names, err := fs.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, persistence.NewStoreError("GetAll", table, "", err)
	}

	docs := make([]*T, 0, len(names))

	for _, name := range names {
		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, persistence.NewStoreError("GetAll", table, name, err)
		}

		var doc T
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, persistence.NewStoreError("GetAll", table, name, err)
		}

		docs = append(docs, &doc)
	}

	return docs, nil
}
