package item_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/inventory-management/internal/item"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestItemService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Item Service Suite")
}

// MockRepository implements item.Repository for testing
type MockRepository struct {
	items      map[int64]*item.Item
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		items:  make(map[int64]*item.Item),
		nextID: 1,
	}
}

func (m *MockRepository) Create(it *item.Item) error {
	if m.shouldFail {
		return m.failError
	}
	it.ID = m.nextID
	m.nextID++
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(id int64) (*item.Item, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	it, ok := m.items[id]
	if !ok {
		return nil, item.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *MockRepository) CodeExists(code string) (bool, error) {
	for _, it := range m.items {
		if it.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) List(filter item.ListFilter) ([]*item.Item, error) {
	var out []*item.Item
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *MockRepository) Update(it *item.Item) error {
	if m.shouldFail {
		return m.failError
	}
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *MockRepository) UpdateStatus(id int64, status string) error {
	if m.shouldFail {
		return m.failError
	}
	it, ok := m.items[id]
	if !ok {
		return item.ErrItemNotFound
	}
	it.Status = status
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	delete(m.items, id)
	return nil
}

func (m *MockRepository) DueBetween(from, to time.Time) ([]*item.Item, error) {
	var out []*item.Item
	for _, it := range m.items {
		if it.ExaminationDueAt == nil {
			continue
		}
		due := *it.ExaminationDueAt
		if due.After(from) && due.Before(to) {
			out = append(out, it)
		}
	}
	return out, nil
}

// MockAssignmentRepository implements item.AssignmentRepository
type MockAssignmentRepository struct {
	assignments map[int64]*item.Assignment
	items       *MockRepository
	nextID      int64
}

func NewMockAssignmentRepository(items *MockRepository) *MockAssignmentRepository {
	return &MockAssignmentRepository{
		assignments: make(map[int64]*item.Assignment),
		items:       items,
		nextID:      1,
	}
}

func (m *MockAssignmentRepository) Assign(userID, itemID int64) (*item.Assignment, error) {
	for _, a := range m.assignments {
		if a.ItemID == itemID {
			return nil, item.ErrItemAlreadyAssigned
		}
	}
	a := &item.Assignment{
		ID:        m.nextID,
		UserID:    userID,
		ItemID:    itemID,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.assignments[a.ID] = a
	m.items.items[itemID].Status = item.StatusUsed
	return a, nil
}

func (m *MockAssignmentRepository) Unassign(assignmentID int64) error {
	a, ok := m.assignments[assignmentID]
	if !ok {
		return item.ErrAssignmentNotFound
	}
	delete(m.assignments, assignmentID)
	m.items.items[a.ItemID].Status = item.StatusUnused
	return nil
}

func (m *MockAssignmentRepository) Reassign(assignmentID, newItemID int64) (*item.Assignment, error) {
	a, ok := m.assignments[assignmentID]
	if !ok {
		return nil, item.ErrAssignmentNotFound
	}
	if a.ItemID == newItemID {
		return a, nil
	}
	for _, other := range m.assignments {
		if other.ItemID == newItemID {
			return nil, item.ErrItemAlreadyAssigned
		}
	}
	m.items.items[a.ItemID].Status = item.StatusUnused
	a.ItemID = newItemID
	m.items.items[newItemID].Status = item.StatusUsed
	return a, nil
}

func (m *MockAssignmentRepository) GetByID(assignmentID int64) (*item.Assignment, error) {
	a, ok := m.assignments[assignmentID]
	if !ok {
		return nil, item.ErrAssignmentNotFound
	}
	return a, nil
}

func (m *MockAssignmentRepository) ListByUser(userID int64) ([]*item.Assignment, error) {
	var out []*item.Assignment
	for _, a := range m.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAssignmentRepository) ListAll(limit, offset int) ([]*item.Assignment, error) {
	var out []*item.Assignment
	for _, a := range m.assignments {
		out = append(out, a)
	}
	return out, nil
}

// MockUserChecker implements item.UserChecker
type MockUserChecker struct {
	users map[int64]bool
	err   error
}

func (m *MockUserChecker) Exists(userID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.users[userID], nil
}

var _ = Describe("Item Service", func() {
	var (
		repo        *MockRepository
		assignments *MockAssignmentRepository
		users       *MockUserChecker
		service     *item.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		repo = NewMockRepository()
		assignments = NewMockAssignmentRepository(repo)
		users = &MockUserChecker{users: map[int64]bool{1: true, 2: true}}
		service = item.NewService(repo, assignments, users, testLogger)
	})

	seedItem := func(name string) *item.Item {
		it, err := service.CreateItem(item.CreateItemDTO{
			CategoryID: 1,
			AreaID:     1,
			Name:       name,
			Price:      150000,
		})
		Expect(err).NotTo(HaveOccurred())
		return it
	}

	Describe("CreateItem", func() {
		It("creates an item with a generated code and UNUSED status", func() {
			it := seedItem("Laptop Thinkpad")

			Expect(it.ID).To(BeNumerically(">", 0))
			Expect(it.Status).To(Equal(item.StatusUnused))
			Expect(strings.HasPrefix(it.Code, "INV-")).To(BeTrue())
			Expect(it.Code).To(HaveLen(10))
		})

		It("rejects a missing name", func() {
			_, err := service.CreateItem(item.CreateItemDTO{
				CategoryID: 1,
				AreaID:     1,
				Price:      100,
			})
			Expect(err).To(HaveOccurred())
		})

		It("derives the examination due date from the period in 30-day months", func() {
			months := 3
			before := time.Now()
			it, err := service.CreateItem(item.CreateItemDTO{
				CategoryID:              1,
				AreaID:                  1,
				Name:                    "AC Unit",
				Price:                   2000000,
				ExaminationPeriodMonths: &months,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(it.ExaminationDueAt).NotTo(BeNil())

			expected := before.Add(90 * 24 * time.Hour)
			Expect(it.ExaminationDueAt.Sub(expected)).To(BeNumerically("<", time.Minute))
		})
	})

	Describe("MarkBroken and MarkRepaired", func() {
		It("marks an item broken from any status", func() {
			it := seedItem("Monitor")

			updated, err := service.MarkBroken(it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(item.StatusBroken))
		})

		It("repairs a broken item", func() {
			it := seedItem("Monitor")
			_, err := service.MarkBroken(it.ID)
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.MarkRepaired(it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(item.StatusRepaired))
		})

		It("refuses to repair an item that is not broken", func() {
			it := seedItem("Monitor")

			_, err := service.MarkRepaired(it.ID)
			Expect(errors.Is(err, item.ErrItemNotBroken)).To(BeTrue())
		})
	})

	Describe("AssignItem", func() {
		It("assigns an item and flips it to USED", func() {
			it := seedItem("Keyboard")

			a, err := service.AssignItem(item.AssignItemDTO{UserID: 1, ItemID: it.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.UserID).To(Equal(int64(1)))

			got, err := service.GetItem(it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(item.StatusUsed))
		})

		It("rejects an unknown assignee", func() {
			it := seedItem("Keyboard")

			_, err := service.AssignItem(item.AssignItemDTO{UserID: 99, ItemID: it.ID})
			Expect(errors.Is(err, item.ErrAssigneeNotFound)).To(BeTrue())
		})

		It("conflicts when the item already has a live assignment", func() {
			it := seedItem("Keyboard")

			_, err := service.AssignItem(item.AssignItemDTO{UserID: 1, ItemID: it.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AssignItem(item.AssignItemDTO{UserID: 2, ItemID: it.ID})
			Expect(errors.Is(err, item.ErrItemAlreadyAssigned)).To(BeTrue())
		})
	})

	Describe("UnassignItem", func() {
		It("returns the item to UNUSED", func() {
			it := seedItem("Mouse")
			a, err := service.AssignItem(item.AssignItemDTO{UserID: 1, ItemID: it.ID})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.UnassignItem(a.ID)).To(Succeed())

			got, err := service.GetItem(it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(item.StatusUnused))
		})

		It("fails for an unknown assignment", func() {
			err := service.UnassignItem(42)
			Expect(errors.Is(err, item.ErrAssignmentNotFound)).To(BeTrue())
		})
	})

	Describe("ReassignItem", func() {
		It("corrects both item statuses", func() {
			first := seedItem("Laptop A")
			second := seedItem("Laptop B")
			a, err := service.AssignItem(item.AssignItemDTO{UserID: 1, ItemID: first.ID})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.ReassignItem(a.ID, item.ReassignItemDTO{NewItemID: second.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ItemID).To(Equal(second.ID))

			old, _ := service.GetItem(first.ID)
			Expect(old.Status).To(Equal(item.StatusUnused))
			current, _ := service.GetItem(second.ID)
			Expect(current.Status).To(Equal(item.StatusUsed))
		})

		It("conflicts when the target item is taken", func() {
			first := seedItem("Laptop A")
			second := seedItem("Laptop B")
			a, err := service.AssignItem(item.AssignItemDTO{UserID: 1, ItemID: first.ID})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.AssignItem(item.AssignItemDTO{UserID: 2, ItemID: second.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ReassignItem(a.ID, item.ReassignItemDTO{NewItemID: second.ID})
			Expect(errors.Is(err, item.ErrItemAlreadyAssigned)).To(BeTrue())
		})
	})

	Describe("UpcomingExaminations", func() {
		seedWithDue := func(name string, due time.Time) *item.Item {
			it := seedItem(name)
			it.ExaminationDueAt = &due
			Expect(repo.Update(it)).To(Succeed())
			return it
		}

		It("includes an item due in six days and excludes the rest", func() {
			now := time.Now()
			inWindow := seedWithDue("Printer", now.Add(6*24*time.Hour))
			seedWithDue("Scanner", now.Add(8*24*time.Hour))
			seedWithDue("Router", now.Add(-24*time.Hour))

			items, err := service.UpcomingExaminations(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].ID).To(Equal(inWindow.ID))
		})
	})
})
