package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"splitup/internal/grid"
	"splitup/internal/models"
	"splitup/internal/util"
)

// ProjectRepository reads and writes the saved-project gallery
type ProjectRepository struct {
	kv  KV
	log *zap.Logger
	now func() time.Time
}

// NewProjectRepository creates a repository over kv
func NewProjectRepository(kv KV, log *zap.Logger) *ProjectRepository {
	return &ProjectRepository{kv: kv, log: log, now: time.Now}
}

// List returns every saved project in insertion order.
// Stored data that cannot be decoded is discarded and an empty list returned.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	data, err := r.kv.Get(ctx, KeyProjects)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.Project{}, nil
	}
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		r.log.Warn("discarding unreadable saved projects", zap.Error(err), zap.Int("bytes", len(data)))
		return []models.Project{}, nil
	}

	for i := range projects {
		for j := range projects[i].Goals {
			projects[i].Goals[j] = grid.NormalizeGoal(projects[i].Goals[j])
		}
	}
	return projects, nil
}

// Get returns the project with the given id
func (r *ProjectRepository) Get(ctx context.Context, id string) (models.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if strings.EqualFold(p.ID, id) {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("%w: %s", models.ErrProjectNotFound, id)
}

// FindByName returns the first project whose name matches case-insensitively
func (r *ProjectRepository) FindByName(ctx context.Context, name string) (models.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if strings.EqualFold(p.ProjectName, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("%w: %s", models.ErrProjectNotFound, name)
}

// Resolve looks a project up by id when ref is a UUID, by name otherwise
func (r *ProjectRepository) Resolve(ctx context.Context, ref string) (models.Project, error) {
	if util.IsUUID(ref) {
		return r.Get(ctx, ref)
	}
	return r.FindByName(ctx, ref)
}

// Save inserts p, or replaces the stored project with the same id
func (r *ProjectRepository) Save(ctx context.Context, p models.Project) (models.Project, error) {
	if len(p.ImageData) == 0 {
		return models.Project{}, models.ErrNoImage
	}

	projects, err := r.List(ctx)
	if err != nil {
		return models.Project{}, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.UpdatedAt = r.now().UTC()

	replaced := false
	for i := range projects {
		if strings.EqualFold(projects[i].ID, p.ID) {
			projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, p)
	}

	if err := r.persist(ctx, projects); err != nil {
		return models.Project{}, err
	}

	r.log.Info("project saved",
		zap.String("id", p.ID),
		zap.String("name", p.ProjectName),
		zap.Bool("replaced", replaced),
		zap.Int("cells", len(p.Cells)),
	)
	return p, nil
}

// Delete removes the project with the given id
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	projects, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := projects[:0]
	for _, p := range projects {
		if !strings.EqualFold(p.ID, id) {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		return fmt.Errorf("%w: %s", models.ErrProjectNotFound, id)
	}

	if err := r.persist(ctx, kept); err != nil {
		return err
	}
	r.log.Info("project deleted", zap.String("id", id))
	return nil
}

func (r *ProjectRepository) persist(ctx context.Context, projects []models.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	return r.kv.Put(ctx, KeyProjects, data)
}
