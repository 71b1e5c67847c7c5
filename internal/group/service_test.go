package group_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/inventory-management/internal/group"
	"github.com/frahmantamala/inventory-management/internal/item"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGroupService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Group Service Suite")
}

// MockRepository implements group.Repository for testing
type MockRepository struct {
	groups      map[int64]*group.Group
	memberships map[int64][]int64
	nextID      int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		groups:      make(map[int64]*group.Group),
		memberships: make(map[int64][]int64),
		nextID:      1,
	}
}

func (m *MockRepository) Create(g *group.Group) error {
	g.ID = m.nextID
	m.nextID++
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(id int64) (*group.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, group.ErrGroupNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *MockRepository) List(limit, offset int) ([]*group.Group, error) {
	var out []*group.Group
	for _, g := range m.groups {
		out = append(out, g)
	}
	return out, nil
}

func (m *MockRepository) DeleteCascade(id int64) error {
	delete(m.groups, id)
	delete(m.memberships, id)
	return nil
}

func (m *MockRepository) AddItem(groupID, itemID int64) (*group.Membership, error) {
	for _, existing := range m.memberships[groupID] {
		if existing == itemID {
			return nil, group.ErrDuplicateMember
		}
	}
	m.memberships[groupID] = append(m.memberships[groupID], itemID)
	return &group.Membership{ItemID: itemID, GroupID: groupID, CreatedAt: time.Now()}, nil
}

func (m *MockRepository) RemoveItem(groupID, itemID int64) error {
	members := m.memberships[groupID]
	for i, existing := range members {
		if existing == itemID {
			m.memberships[groupID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return group.ErrMembershipNotFound
}

func (m *MockRepository) ListItems(groupID int64) ([]*item.Item, error) {
	var out []*item.Item
	for _, id := range m.memberships[groupID] {
		out = append(out, &item.Item{ID: id})
	}
	return out, nil
}

// MockItemChecker implements group.ItemChecker
type MockItemChecker struct {
	items map[int64]bool
}

func (m *MockItemChecker) Exists(itemID int64) (bool, error) {
	return m.items[itemID], nil
}

var _ = Describe("Group Service", func() {
	var (
		repo    *MockRepository
		items   *MockItemChecker
		service *group.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		repo = NewMockRepository()
		items = &MockItemChecker{items: map[int64]bool{1: true, 2: true}}
		service = group.NewService(repo, items, testLogger)
	})

	Describe("AddItem", func() {
		It("adds an existing item to an existing group", func() {
			g, err := service.CreateGroup(group.CreateGroupDTO{Name: "pengadaan 2025"})
			Expect(err).NotTo(HaveOccurred())

			m, err := service.AddItem(g.ID, group.AddItemDTO{ItemID: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.ItemID).To(Equal(int64(1)))
		})

		It("fails for a missing group", func() {
			_, err := service.AddItem(42, group.AddItemDTO{ItemID: 1})
			Expect(errors.Is(err, group.ErrGroupNotFound)).To(BeTrue())
		})

		It("fails for a missing item", func() {
			g, err := service.CreateGroup(group.CreateGroupDTO{Name: "pengadaan 2025"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AddItem(g.ID, group.AddItemDTO{ItemID: 99})
			Expect(errors.Is(err, item.ErrItemNotFound)).To(BeTrue())
		})

		It("conflicts on a duplicate member", func() {
			g, err := service.CreateGroup(group.CreateGroupDTO{Name: "pengadaan 2025"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AddItem(g.ID, group.AddItemDTO{ItemID: 1})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AddItem(g.ID, group.AddItemDTO{ItemID: 1})
			Expect(errors.Is(err, group.ErrDuplicateMember)).To(BeTrue())
		})
	})

	Describe("DeleteGroup", func() {
		It("deletes an existing group", func() {
			g, err := service.CreateGroup(group.CreateGroupDTO{Name: "pengadaan 2025"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteGroup(g.ID)).To(Succeed())

			_, err = service.GetGroup(g.ID)
			Expect(errors.Is(err, group.ErrGroupNotFound)).To(BeTrue())
		})

		It("fails for a missing group", func() {
			err := service.DeleteGroup(42)
			Expect(errors.Is(err, group.ErrGroupNotFound)).To(BeTrue())
		})
	})
})
