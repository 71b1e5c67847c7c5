package postgres_test

import (
	"errors"
	"testing"
	"time"

	itemDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/item"
	"github.com/frahmantamala/inventory-management/internal/item"
	itemPostgres "github.com/frahmantamala/inventory-management/internal/item/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestItemPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Item Postgres Suite")
}

var _ = Describe("Item Repositories", func() {
	var (
		db          *gorm.DB
		repo        item.Repository
		assignments item.AssignmentRepository
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&itemDatamodel.Item{}, &itemDatamodel.UserItem{})
		Expect(err).NotTo(HaveOccurred())

		repo = itemPostgres.NewItemRepository(db)
		assignments = itemPostgres.NewAssignmentRepository(db)
	})

	seedItem := func(name, code string) *item.Item {
		now := time.Now()
		it := &item.Item{
			CategoryID: 1,
			AreaID:     1,
			Name:       name,
			Price:      100000,
			Code:       code,
			Status:     item.StatusUnused,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		Expect(repo.Create(it)).To(Succeed())
		return it
	}

	Describe("ItemRepository", func() {
		It("creates and fetches an item", func() {
			it := seedItem("Laptop", "INV-AAAAAA")

			got, err := repo.GetByID(it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Laptop"))
			Expect(got.Status).To(Equal(item.StatusUnused))
		})

		It("returns not found for a missing id", func() {
			_, err := repo.GetByID(999)
			Expect(errors.Is(err, item.ErrItemNotFound)).To(BeTrue())
		})

		It("reports existing codes", func() {
			seedItem("Laptop", "INV-AAAAAA")

			exists, err := repo.CodeExists("INV-AAAAAA")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.CodeExists("INV-BBBBBB")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("filters the listing by status", func() {
			seedItem("Laptop", "INV-AAAAAA")
			broken := seedItem("Monitor", "INV-BBBBBB")
			Expect(repo.UpdateStatus(broken.ID, item.StatusBroken)).To(Succeed())

			status := item.StatusBroken
			items, err := repo.List(item.ListFilter{Status: &status, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].ID).To(Equal(broken.ID))
		})

		It("selects due dates strictly inside the window", func() {
			now := time.Now()

			setDue := func(it *item.Item, due time.Time) {
				it.ExaminationDueAt = &due
				Expect(repo.Update(it)).To(Succeed())
			}

			sixDays := seedItem("Printer", "INV-CCCCCC")
			setDue(sixDays, now.Add(6*24*time.Hour))
			eightDays := seedItem("Scanner", "INV-DDDDDD")
			setDue(eightDays, now.Add(8*24*time.Hour))
			past := seedItem("Router", "INV-EEEEEE")
			setDue(past, now.Add(-24*time.Hour))

			items, err := repo.DueBetween(now, now.Add(7*24*time.Hour))
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].ID).To(Equal(sixDays.ID))
		})
	})

	Describe("AssignmentRepository", func() {
		It("assigns an item and marks it USED in the same transaction", func() {
			it := seedItem("Laptop", "INV-AAAAAA")

			a, err := assignments.Assign(1, it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).To(BeNumerically(">", 0))

			got, err := repo.GetByID(it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(item.StatusUsed))
		})

		It("rejects a second assignment for the same item", func() {
			it := seedItem("Laptop", "INV-AAAAAA")

			_, err := assignments.Assign(1, it.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = assignments.Assign(2, it.ID)
			Expect(errors.Is(err, item.ErrItemAlreadyAssigned)).To(BeTrue())
		})

		It("unassigns and returns the item to UNUSED", func() {
			it := seedItem("Laptop", "INV-AAAAAA")
			a, err := assignments.Assign(1, it.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(assignments.Unassign(a.ID)).To(Succeed())

			got, err := repo.GetByID(it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(item.StatusUnused))

			_, err = assignments.GetByID(a.ID)
			Expect(errors.Is(err, item.ErrAssignmentNotFound)).To(BeTrue())
		})

		It("reassigns and corrects both item statuses", func() {
			first := seedItem("Laptop A", "INV-AAAAAA")
			second := seedItem("Laptop B", "INV-BBBBBB")
			a, err := assignments.Assign(1, first.ID)
			Expect(err).NotTo(HaveOccurred())

			updated, err := assignments.Reassign(a.ID, second.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ItemID).To(Equal(second.ID))

			old, err := repo.GetByID(first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(old.Status).To(Equal(item.StatusUnused))

			current, err := repo.GetByID(second.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(current.Status).To(Equal(item.StatusUsed))
		})

		It("refuses to reassign onto a taken item", func() {
			first := seedItem("Laptop A", "INV-AAAAAA")
			second := seedItem("Laptop B", "INV-BBBBBB")
			a, err := assignments.Assign(1, first.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = assignments.Assign(2, second.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = assignments.Reassign(a.ID, second.ID)
			Expect(errors.Is(err, item.ErrItemAlreadyAssigned)).To(BeTrue())

			// the original assignment is untouched
			got, err := assignments.GetByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ItemID).To(Equal(first.ID))
		})

		It("lists assignments per user", func() {
			first := seedItem("Laptop A", "INV-AAAAAA")
			second := seedItem("Laptop B", "INV-BBBBBB")
			_, err := assignments.Assign(1, first.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = assignments.Assign(2, second.ID)
			Expect(err).NotTo(HaveOccurred())

			mine, err := assignments.ListByUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(1))
			Expect(mine[0].ItemID).To(Equal(first.ID))
		})
	})
})
