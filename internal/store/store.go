package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrToKa/WFC-sub003/internal/layout"
	"github.com/MrToKa/WFC-sub003/internal/models"
)

// Store holds the mutable application state: projects with their trays,
// cables, layout settings and the material catalogues. The calculators
// never touch it directly; they receive immutable Snapshot values.
type Store interface {
	CreateProject(p models.Project) (*models.Project, error)
	GetProject(id string) (*models.Project, error)
	ListProjects() []models.Project
	UpdateProject(p models.Project) (*models.Project, error)

	PutTray(t models.Tray) (*models.Tray, error)
	DeleteTray(projectID, trayID string) error
	PutCable(c models.Cable) (*models.Cable, error)
	DeleteCable(projectID, cableID string) error

	SetLayout(projectID string, l *layout.CableLayout) error
	SetMaterialTrays(trays []models.MaterialTray)
	SetMaterialSupports(supports []models.MaterialSupport)

	Snapshot(projectID string) (*Snapshot, error)
}

// Snapshot is a consistent copy of everything a computation needs,
// fetched under one lock. Mutating it never affects the store.
type Snapshot struct {
	Project          models.Project
	Trays            []models.Tray
	Cables           []models.Cable
	Layout           *layout.CableLayout
	MaterialTrays    []models.MaterialTray
	MaterialSupports []models.MaterialSupport
}

// TrayByID finds a tray in the snapshot, or nil.
func (s *Snapshot) TrayByID(id string) *models.Tray {
	for i := range s.Trays {
		if s.Trays[i].ID == id {
			return &s.Trays[i]
		}
	}
	return nil
}

type projectState struct {
	project models.Project
	trays   map[string]models.Tray
	cables  map[string]models.Cable
	layout  *layout.CableLayout
}

// MemStore implements Store with in-process maps. All state is lost on
// restart; durable persistence is out of scope for this service.
type MemStore struct {
	mu               sync.RWMutex
	projects         map[string]*projectState
	materialTrays    []models.MaterialTray
	materialSupports []models.MaterialSupport
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{projects: make(map[string]*projectState)}
}

// CreateProject stores a new project, assigning an ID when absent.
func (s *MemStore) CreateProject(p models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, exists := s.projects[p.ID]; exists {
		return nil, fmt.Errorf("project %s already exists", p.ID)
	}
	s.projects[p.ID] = &projectState{
		project: p,
		trays:   make(map[string]models.Tray),
		cables:  make(map[string]models.Cable),
	}
	out := p
	return &out, nil
}

// GetProject returns a copy of the project, or an error if unknown.
func (s *MemStore) GetProject(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s not found", id)
	}
	out := state.project
	return &out, nil
}

// ListProjects returns all projects sorted by name.
func (s *MemStore) ListProjects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, state := range s.projects {
		out = append(out, state.project)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// UpdateProject replaces a project's own fields, keeping its trays and
// cables.
func (s *MemStore) UpdateProject(p models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.projects[p.ID]
	if !ok {
		return nil, fmt.Errorf("project %s not found", p.ID)
	}
	state.project = p
	out := p
	return &out, nil
}

// PutTray inserts or replaces a tray, assigning an ID when absent.
func (s *MemStore) PutTray(t models.Tray) (*models.Tray, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.projects[t.ProjectID]
	if !ok {
		return nil, fmt.Errorf("project %s not found", t.ProjectID)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	state.trays[t.ID] = t
	out := t
	return &out, nil
}

// DeleteTray removes a tray. Cables referencing it by name are left
// alone: trays are deleted independently of cables.
func (s *MemStore) DeleteTray(projectID, trayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s not found", projectID)
	}
	if _, ok := state.trays[trayID]; !ok {
		return fmt.Errorf("tray %s not found", trayID)
	}
	delete(state.trays, trayID)
	return nil
}

// PutCable inserts or replaces a cable, assigning an ID when absent.
func (s *MemStore) PutCable(c models.Cable) (*models.Cable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.projects[c.ProjectID]
	if !ok {
		return nil, fmt.Errorf("project %s not found", c.ProjectID)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	state.cables[c.ID] = c
	out := c
	return &out, nil
}

// DeleteCable removes a cable.
func (s *MemStore) DeleteCable(projectID, cableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s not found", projectID)
	}
	if _, ok := state.cables[cableID]; !ok {
		return fmt.Errorf("cable %s not found", cableID)
	}
	delete(state.cables, cableID)
	return nil
}

// SetLayout stores a project's trusted layout settings. Callers validate
// via the layout package first; the store never sees raw payloads.
func (s *MemStore) SetLayout(projectID string, l *layout.CableLayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s not found", projectID)
	}
	state.layout = l
	return nil
}

// SetMaterialTrays replaces the tray catalogue.
func (s *MemStore) SetMaterialTrays(trays []models.MaterialTray) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materialTrays = append([]models.MaterialTray(nil), trays...)
}

// SetMaterialSupports replaces the support catalogue.
func (s *MemStore) SetMaterialSupports(supports []models.MaterialSupport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materialSupports = append([]models.MaterialSupport(nil), supports...)
}

// Snapshot copies a project's full state under one read lock. Trays and
// cables come out sorted by name and tag so snapshots of equal state are
// identical, which the result cache relies on.
func (s *MemStore) Snapshot(projectID string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s not found", projectID)
	}

	snap := &Snapshot{
		Project:          state.project,
		Layout:           state.layout,
		Trays:            make([]models.Tray, 0, len(state.trays)),
		Cables:           make([]models.Cable, 0, len(state.cables)),
		MaterialTrays:    append([]models.MaterialTray(nil), s.materialTrays...),
		MaterialSupports: append([]models.MaterialSupport(nil), s.materialSupports...),
	}
	for _, t := range state.trays {
		snap.Trays = append(snap.Trays, t)
	}
	for _, c := range state.cables {
		snap.Cables = append(snap.Cables, c)
	}
	sort.Slice(snap.Trays, func(i, j int) bool {
		if snap.Trays[i].Name != snap.Trays[j].Name {
			return snap.Trays[i].Name < snap.Trays[j].Name
		}
		return snap.Trays[i].ID < snap.Trays[j].ID
	})
	sort.Slice(snap.Cables, func(i, j int) bool {
		if snap.Cables[i].Tag != snap.Cables[j].Tag {
			return snap.Cables[i].Tag < snap.Cables[j].Tag
		}
		return snap.Cables[i].ID < snap.Cables[j].ID
	})
	if snap.Layout == nil {
		snap.Layout = layout.DefaultCableLayout()
	}
	return snap, nil
}
