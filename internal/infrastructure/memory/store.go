// Package memory implementa los puertos de repositorio en memoria, con la misma semántica
// transaccional que PostgreSQL. Se usa con STORAGE_DRIVER=memory y en los tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// state contenido completo de la base. Las transacciones trabajan sobre una copia.
type state struct {
	feeds       map[string]entity.Feed
	rations     map[string]entity.Ration
	animals     map[string]entity.Animal
	employees   map[string]entity.Employee
	orders      []entity.PurchaseOrder // orden de creación, sin Items
	items       map[string][]entity.PurchaseLineItem
	feedings    []entity.FeedingEvent
	consumption []entity.ConsumptionRecord
	movements   []entity.StockMovement
	faults      []entity.Malfunction // orden de registro
}

func newState() *state {
	return &state{
		feeds:     map[string]entity.Feed{},
		rations:   map[string]entity.Ration{},
		animals:   map[string]entity.Animal{},
		employees: map[string]entity.Employee{},
		items:     map[string][]entity.PurchaseLineItem{},
	}
}

func (s *state) clone() *state {
	c := &state{
		feeds:       make(map[string]entity.Feed, len(s.feeds)),
		rations:     make(map[string]entity.Ration, len(s.rations)),
		animals:     make(map[string]entity.Animal, len(s.animals)),
		employees:   make(map[string]entity.Employee, len(s.employees)),
		orders:      append([]entity.PurchaseOrder(nil), s.orders...),
		items:       make(map[string][]entity.PurchaseLineItem, len(s.items)),
		feedings:    append([]entity.FeedingEvent(nil), s.feedings...),
		consumption: append([]entity.ConsumptionRecord(nil), s.consumption...),
		movements:   append([]entity.StockMovement(nil), s.movements...),
		faults:      append([]entity.Malfunction(nil), s.faults...),
	}
	for k, v := range s.feeds {
		c.feeds[k] = v
	}
	for k, v := range s.rations {
		c.rations[k] = v
	}
	for k, v := range s.animals {
		c.animals[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.PurchaseLineItem(nil), v...)
	}
	return c
}

// Store base en memoria. Un único mutex serializa transacciones y accesos directos.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea una base vacía.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado; si fn no devuelve error la copia reemplaza al estado.
// El mutex se mantiene toda la transacción.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(reposFor(view{tx: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}

// view acceso al estado: dentro de una tx usa la copia de trabajo; fuera, el estado vigente bajo mutex.
// Los repositorios sin tx no deben usarse dentro de Run.
type view struct {
	store *Store
	tx    *state
}

func (v view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func reposFor(v view) inventory.Repos {
	return inventory.Repos{
		Feeds:       &FeedRepo{v: v},
		Rations:     &RationRepo{v: v},
		Animals:     &AnimalRepo{v: v},
		Orders:      &PurchaseOrderRepo{v: v},
		Feedings:    &FeedingRepo{v: v},
		Consumption: &ConsumptionRepo{v: v},
		Movements:   &StockMovementRepo{v: v},
	}
}

// Repos repositorios fuera de transacción (lecturas y altas simples).
func (s *Store) Repos() inventory.Repos {
	return reposFor(view{store: s})
}

// Employees repositorio de empleados.
func (s *Store) Employees() *EmployeeRepo {
	return &EmployeeRepo{v: view{store: s}}
}

// Malfunctions repositorio de averías.
func (s *Store) Malfunctions() *MalfunctionRepo {
	return &MalfunctionRepo{v: view{store: s}}
}

// Analytics repositorio de reportes.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{v: view{store: s}}
}

// PutAnimal carga un animal. El alta de animales vive fuera del núcleo; se usa para datos de prueba.
func (s *Store) PutAnimal(a entity.Animal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.animals[a.ID] = a
}

// PutFeed carga un alimento con su existencia inicial.
func (s *Store) PutFeed(f entity.Feed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.feeds[f.ID] = f
}

// PutRation carga una ración.
func (s *Store) PutRation(r entity.Ration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.rations[r.ID] = r
}
