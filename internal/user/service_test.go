package user_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/inventory-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// MockRepository implements user.Repository for testing
type MockRepository struct {
	users  map[int64]*user.User
	roles  map[string]*user.Role
	grants map[int64][]int64
	nextID int64
}

func NewMockRepository() *MockRepository {
	roles := map[string]*user.Role{
		"employee": {ID: 1, Name: "employee", Priority: 1},
		"admin":    {ID: 2, Name: "admin", Priority: 2},
		"owner":    {ID: 3, Name: "owner", Priority: 3},
	}
	return &MockRepository{
		users:  make(map[int64]*user.User),
		roles:  roles,
		grants: make(map[int64][]int64),
		nextID: 1,
	}
}

func (m *MockRepository) Create(u *user.User) error {
	u.ID = m.nextID
	m.nextID++
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockRepository) GetByEmail(email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *MockRepository) GetRoles(userID int64) ([]string, error) {
	var names []string
	for _, roleID := range m.grants[userID] {
		for _, r := range m.roles {
			if r.ID == roleID {
				names = append(names, r.Name)
			}
		}
	}
	return names, nil
}

func (m *MockRepository) List(limit, offset int) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *MockRepository) Update(u *user.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	delete(m.users, id)
	delete(m.grants, id)
	return nil
}

func (m *MockRepository) GrantRole(userID, roleID int64, grantedBy *int64) error {
	m.grants[userID] = append(m.grants[userID], roleID)
	return nil
}

func (m *MockRepository) RevokeRole(userID, roleID int64) error {
	grants := m.grants[userID]
	for i, id := range grants {
		if id == roleID {
			m.grants[userID] = append(grants[:i], grants[i+1:]...)
			return nil
		}
	}
	return user.ErrRoleNotGranted
}

func (m *MockRepository) GetRoleByName(name string) (*user.Role, error) {
	r, ok := m.roles[name]
	if !ok {
		return nil, user.ErrRoleNotFound
	}
	return r, nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *MockRepository
		service *user.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		repo = NewMockRepository()
		service = user.NewService(repo, 10, testLogger)
	})

	register := func(email string) *user.User {
		u, err := service.CreateUser(user.CreateUserDTO{
			Email:    email,
			Name:     "Budi",
			Password: "rahasia-banget",
		})
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Describe("CreateUser", func() {
		It("creates an active user with a hashed password", func() {
			u := register("budi@mail.com")

			Expect(u.IsActive).To(BeTrue())
			Expect(u.PasswordHash).NotTo(BeEmpty())
			Expect(u.PasswordHash).NotTo(Equal("rahasia-banget"))
		})

		It("conflicts on a taken email", func() {
			register("budi@mail.com")

			_, err := service.CreateUser(user.CreateUserDTO{
				Email:    "budi@mail.com",
				Name:     "Budi Kedua",
				Password: "rahasia-banget",
			})
			Expect(errors.Is(err, user.ErrEmailTaken)).To(BeTrue())
		})

		It("rejects a short password", func() {
			_, err := service.CreateUser(user.CreateUserDTO{
				Email:    "budi@mail.com",
				Name:     "Budi",
				Password: "short",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GrantRole", func() {
		It("grants a role once and conflicts the second time", func() {
			u := register("sari@mail.com")

			Expect(service.GrantRole(u.ID, user.GrantRoleDTO{Role: "admin"}, nil)).To(Succeed())

			loaded, err := service.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Roles).To(ContainElement("admin"))

			err = service.GrantRole(u.ID, user.GrantRoleDTO{Role: "admin"}, nil)
			Expect(errors.Is(err, user.ErrRoleAlreadyGranted)).To(BeTrue())
		})

		It("fails for an unknown role", func() {
			u := register("sari@mail.com")

			err := service.GrantRole(u.ID, user.GrantRoleDTO{Role: "supervisor"}, nil)
			Expect(errors.Is(err, user.ErrRoleNotFound)).To(BeTrue())
		})

		It("fails for an unknown user", func() {
			err := service.GrantRole(99, user.GrantRoleDTO{Role: "admin"}, nil)
			Expect(errors.Is(err, user.ErrUserNotFound)).To(BeTrue())
		})
	})

	Describe("RevokeRole", func() {
		It("revokes a granted role", func() {
			u := register("sari@mail.com")
			Expect(service.GrantRole(u.ID, user.GrantRoleDTO{Role: "admin"}, nil)).To(Succeed())

			Expect(service.RevokeRole(u.ID, user.GrantRoleDTO{Role: "admin"})).To(Succeed())

			loaded, err := service.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Roles).NotTo(ContainElement("admin"))
		})

		It("fails when the role was never granted", func() {
			u := register("sari@mail.com")

			err := service.RevokeRole(u.ID, user.GrantRoleDTO{Role: "admin"})
			Expect(errors.Is(err, user.ErrRoleNotGranted)).To(BeTrue())
		})
	})

	Describe("Exists", func() {
		It("reports existing and missing users without an error", func() {
			u := register("budi@mail.com")

			ok, err := service.Exists(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = service.Exists(99)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})
})
