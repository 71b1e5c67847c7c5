package request_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/frahmantamala/inventory-management/internal/request"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRequestService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Request Service Suite")
}

// MockRepository implements request.Repository for testing
type MockRepository struct {
	requests map[int64]*request.ItemRequest
	nextID   int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		requests: make(map[int64]*request.ItemRequest),
		nextID:   1,
	}
}

func (m *MockRepository) Create(req *request.ItemRequest) error {
	req.ID = m.nextID
	m.nextID++
	cp := *req
	m.requests[req.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(id int64) (*request.ItemRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, request.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (m *MockRepository) CodeExists(code string) (bool, error) {
	for _, req := range m.requests {
		if req.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) List(filter request.ListFilter) ([]*request.ItemRequest, error) {
	var out []*request.ItemRequest
	for _, req := range m.requests {
		if filter.UserID != nil && req.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (m *MockRepository) Update(req *request.ItemRequest) error {
	cp := *req
	m.requests[req.ID] = &cp
	return nil
}

func (m *MockRepository) UpdateStatus(id int64, status string) error {
	req, ok := m.requests[id]
	if !ok {
		return request.ErrRequestNotFound
	}
	req.Status = status
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	delete(m.requests, id)
	return nil
}

var _ = Describe("Request Service", func() {
	var (
		repo    *MockRepository
		service *request.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		repo = NewMockRepository()
		service = request.NewService(repo, testLogger)
	})

	fileRequest := func(userID int64) *request.ItemRequest {
		req, err := service.CreateRequest(userID, request.CreateRequestDTO{
			Name:        "Mouse Logitech",
			Description: "Mouse kantor pengganti yang rusak",
			PriceRange:  "100000-200000",
		})
		Expect(err).NotTo(HaveOccurred())
		return req
	}

	Describe("CreateRequest", func() {
		It("starts the request PENDING with a generated code", func() {
			req := fileRequest(1)

			Expect(req.Status).To(Equal(request.StatusPending))
			Expect(strings.HasPrefix(req.Code, "REQ-")).To(BeTrue())
			Expect(req.UserID).To(Equal(int64(1)))
		})

		It("rejects an empty description", func() {
			_, err := service.CreateRequest(1, request.CreateRequestDTO{
				Name:       "Mouse",
				PriceRange: "100000",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Transition", func() {
		It("walks the happy path PENDING, APPROVED, COMPLETED", func() {
			req := fileRequest(1)

			approved, err := service.Transition(req.ID, request.TransitionDTO{Status: request.StatusApproved})
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(request.StatusApproved))

			completed, err := service.Transition(req.ID, request.TransitionDTO{Status: request.StatusCompleted})
			Expect(err).NotTo(HaveOccurred())
			Expect(completed.Status).To(Equal(request.StatusCompleted))
		})

		It("cannot move an approved request back to pending", func() {
			req := fileRequest(1)
			_, err := service.Transition(req.ID, request.TransitionDTO{Status: request.StatusApproved})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Transition(req.ID, request.TransitionDTO{Status: request.StatusPending})
			Expect(errors.Is(err, request.ErrIllegalTransition)).To(BeTrue())
		})

		It("treats REJECTED as terminal", func() {
			req := fileRequest(1)
			_, err := service.Transition(req.ID, request.TransitionDTO{Status: request.StatusRejected})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Transition(req.ID, request.TransitionDTO{Status: request.StatusApproved})
			Expect(errors.Is(err, request.ErrIllegalTransition)).To(BeTrue())

			_, err = service.Transition(req.ID, request.TransitionDTO{Status: request.StatusCompleted})
			Expect(errors.Is(err, request.ErrIllegalTransition)).To(BeTrue())
		})

		It("cannot complete a request that was never approved", func() {
			req := fileRequest(1)

			_, err := service.Transition(req.ID, request.TransitionDTO{Status: request.StatusCompleted})
			Expect(errors.Is(err, request.ErrIllegalTransition)).To(BeTrue())
		})

		It("rejects an unknown status outright", func() {
			req := fileRequest(1)

			_, err := service.Transition(req.ID, request.TransitionDTO{Status: "SHIPPED"})
			Expect(errors.Is(err, request.ErrUnknownStatus)).To(BeTrue())
		})
	})

	Describe("UpdateRequest", func() {
		It("lets the author edit a pending request", func() {
			req := fileRequest(1)

			name := "Mouse Logitech MX"
			updated, err := service.UpdateRequest(req.ID, 1, request.UpdateRequestDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Mouse Logitech MX"))
		})

		It("hides the request from other users", func() {
			req := fileRequest(1)

			name := "Mouse"
			_, err := service.UpdateRequest(req.ID, 2, request.UpdateRequestDTO{Name: &name})
			Expect(errors.Is(err, request.ErrRequestNotFound)).To(BeTrue())
		})

		It("locks the request once a decision has been made", func() {
			req := fileRequest(1)
			_, err := service.Transition(req.ID, request.TransitionDTO{Status: request.StatusApproved})
			Expect(err).NotTo(HaveOccurred())

			name := "Mouse"
			_, err = service.UpdateRequest(req.ID, 1, request.UpdateRequestDTO{Name: &name})
			Expect(errors.Is(err, request.ErrIllegalTransition)).To(BeTrue())
		})
	})

	Describe("ListRequests", func() {
		It("scopes the listing to one user", func() {
			fileRequest(1)
			fileRequest(1)
			fileRequest(2)

			uid := int64(1)
			mine, err := service.ListRequests(request.ListFilter{UserID: &uid})
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(2))
		})

		It("rejects filtering on an unknown status", func() {
			status := "SHIPPED"
			_, err := service.ListRequests(request.ListFilter{Status: &status})
			Expect(errors.Is(err, request.ErrUnknownStatus)).To(BeTrue())
		})
	})
})
