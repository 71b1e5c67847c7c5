package postgres_test

import (
	"errors"
	"testing"
	"time"

	groupDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/group"
	itemDatamodel "github.com/frahmantamala/inventory-management/internal/core/datamodel/item"
	"github.com/frahmantamala/inventory-management/internal/group"
	groupPostgres "github.com/frahmantamala/inventory-management/internal/group/postgres"
	"github.com/frahmantamala/inventory-management/internal/item"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGroupPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Group Postgres Suite")
}

var _ = Describe("Group Repository", func() {
	var (
		db   *gorm.DB
		repo group.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&groupDatamodel.GroupCode{}, &groupDatamodel.ItemGroup{}, &itemDatamodel.Item{})
		Expect(err).NotTo(HaveOccurred())

		repo = groupPostgres.NewGroupRepository(db)
	})

	seedGroup := func(name string) *group.Group {
		g := &group.Group{Name: name, CreatedAt: time.Now()}
		Expect(repo.Create(g)).To(Succeed())
		return g
	}

	seedItem := func(name, code string) *itemDatamodel.Item {
		now := time.Now()
		row := &itemDatamodel.Item{
			CategoryID: 1,
			AreaID:     1,
			Name:       name,
			Price:      100000,
			Code:       code,
			Status:     item.StatusUnused,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		Expect(db.Create(row).Error).To(Succeed())
		return row
	}

	It("creates and fetches a group", func() {
		g := seedGroup("pengadaan 2025")

		got, err := repo.GetByID(g.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Name).To(Equal("pengadaan 2025"))
	})

	Describe("AddItem", func() {
		It("adds an item once and conflicts on the second attempt", func() {
			g := seedGroup("pengadaan 2025")
			it := seedItem("Laptop", "INV-AAAAAA")

			m, err := repo.AddItem(g.ID, it.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.GroupID).To(Equal(g.ID))

			_, err = repo.AddItem(g.ID, it.ID)
			Expect(errors.Is(err, group.ErrDuplicateMember)).To(BeTrue())
		})

		It("allows the same item in two different groups", func() {
			first := seedGroup("pengadaan 2025")
			second := seedGroup("kantor baru")
			it := seedItem("Laptop", "INV-AAAAAA")

			_, err := repo.AddItem(first.ID, it.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.AddItem(second.ID, it.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("RemoveItem", func() {
		It("removes a member", func() {
			g := seedGroup("pengadaan 2025")
			it := seedItem("Laptop", "INV-AAAAAA")
			_, err := repo.AddItem(g.ID, it.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.RemoveItem(g.ID, it.ID)).To(Succeed())

			items, err := repo.ListItems(g.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(BeEmpty())
		})

		It("fails for an item that was never a member", func() {
			g := seedGroup("pengadaan 2025")
			it := seedItem("Laptop", "INV-AAAAAA")

			err := repo.RemoveItem(g.ID, it.ID)
			Expect(errors.Is(err, group.ErrMembershipNotFound)).To(BeTrue())
		})
	})

	Describe("DeleteCascade", func() {
		It("removes the group and memberships but keeps the items", func() {
			g := seedGroup("pengadaan 2025")
			first := seedItem("Laptop", "INV-AAAAAA")
			second := seedItem("Monitor", "INV-BBBBBB")
			_, err := repo.AddItem(g.ID, first.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.AddItem(g.ID, second.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.DeleteCascade(g.ID)).To(Succeed())

			_, err = repo.GetByID(g.ID)
			Expect(errors.Is(err, group.ErrGroupNotFound)).To(BeTrue())

			var memberships int64
			Expect(db.Model(&groupDatamodel.ItemGroup{}).Count(&memberships).Error).To(Succeed())
			Expect(memberships).To(BeZero())

			var items int64
			Expect(db.Model(&itemDatamodel.Item{}).Count(&items).Error).To(Succeed())
			Expect(items).To(Equal(int64(2)))
		})
	})

	Describe("ListItems", func() {
		It("returns only the group's items", func() {
			g := seedGroup("pengadaan 2025")
			other := seedGroup("kantor baru")
			mine := seedItem("Laptop", "INV-AAAAAA")
			theirs := seedItem("Monitor", "INV-BBBBBB")
			_, err := repo.AddItem(g.ID, mine.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.AddItem(other.ID, theirs.ID)
			Expect(err).NotTo(HaveOccurred())

			items, err := repo.ListItems(g.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].ID).To(Equal(mine.ID))
		})
	})
})
