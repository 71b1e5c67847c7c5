package catalog_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/inventory-management/internal/catalog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCatalogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Service Suite")
}

// MockCategoryRepository implements catalog.CategoryRepository
type MockCategoryRepository struct {
	categories map[int64]*catalog.Category
	nextID     int64
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[int64]*catalog.Category),
		nextID:     1,
	}
}

func (m *MockCategoryRepository) Create(c *catalog.Category) error {
	c.ID = m.nextID
	m.nextID++
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) GetByID(id int64) (*catalog.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockCategoryRepository) GetAll() ([]*catalog.Category, error) {
	var out []*catalog.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCategoryRepository) Update(c *catalog.Category) error {
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) Delete(id int64) error {
	delete(m.categories, id)
	return nil
}

// MockAreaRepository implements catalog.AreaRepository
type MockAreaRepository struct {
	areas  map[int64]*catalog.Area
	nextID int64
}

func NewMockAreaRepository() *MockAreaRepository {
	return &MockAreaRepository{
		areas:  make(map[int64]*catalog.Area),
		nextID: 1,
	}
}

func (m *MockAreaRepository) Create(a *catalog.Area) error {
	a.ID = m.nextID
	m.nextID++
	cp := *a
	m.areas[a.ID] = &cp
	return nil
}

func (m *MockAreaRepository) GetByID(id int64) (*catalog.Area, error) {
	a, ok := m.areas[id]
	if !ok {
		return nil, catalog.ErrAreaNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAreaRepository) GetAll() ([]*catalog.Area, error) {
	var out []*catalog.Area
	for _, a := range m.areas {
		out = append(out, a)
	}
	return out, nil
}

func (m *MockAreaRepository) Update(a *catalog.Area) error {
	cp := *a
	m.areas[a.ID] = &cp
	return nil
}

func (m *MockAreaRepository) Delete(id int64) error {
	delete(m.areas, id)
	return nil
}

var _ = Describe("Catalog Service", func() {
	var (
		categories *MockCategoryRepository
		areas      *MockAreaRepository
		service    *catalog.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		categories = NewMockCategoryRepository()
		areas = NewMockAreaRepository()
		service = catalog.NewService(categories, areas, testLogger)
	})

	Describe("Category codes", func() {
		It("accepts a code of up to three characters", func() {
			c, err := service.CreateCategory(catalog.BoundaryDTO{Name: "elektronik", Code: "ELK"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Code).To(Equal("ELK"))
		})

		It("rejects a code longer than three characters", func() {
			_, err := service.CreateCategory(catalog.BoundaryDTO{Name: "elektronik", Code: "ELEK"})
			Expect(err).To(HaveOccurred())
		})

		It("rejects an empty code", func() {
			_, err := service.CreateCategory(catalog.BoundaryDTO{Name: "elektronik"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Area codes", func() {
		It("applies the same code rule", func() {
			_, err := service.CreateArea(catalog.BoundaryDTO{Name: "gudang", Code: "GDNG"})
			Expect(err).To(HaveOccurred())

			a, err := service.CreateArea(catalog.BoundaryDTO{Name: "gudang", Code: "GDG"})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Code).To(Equal("GDG"))
		})
	})

	Describe("Updates", func() {
		It("updates a category name and keeps the code", func() {
			c, err := service.CreateCategory(catalog.BoundaryDTO{Name: "elektronik", Code: "ELK"})
			Expect(err).NotTo(HaveOccurred())

			name := "elektronik kantor"
			updated, err := service.UpdateCategory(c.ID, catalog.UpdateBoundaryDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("elektronik kantor"))
			Expect(updated.Code).To(Equal("ELK"))
		})

		It("validates the code on update", func() {
			c, err := service.CreateCategory(catalog.BoundaryDTO{Name: "elektronik", Code: "ELK"})
			Expect(err).NotTo(HaveOccurred())

			code := "ELEK"
			_, err = service.UpdateCategory(c.ID, catalog.UpdateBoundaryDTO{Code: &code})
			Expect(err).To(HaveOccurred())
		})

		It("fails for a missing area", func() {
			name := "gudang"
			_, err := service.UpdateArea(42, catalog.UpdateBoundaryDTO{Name: &name})
			Expect(errors.Is(err, catalog.ErrAreaNotFound)).To(BeTrue())
		})
	})
})
