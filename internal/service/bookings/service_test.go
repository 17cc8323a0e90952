package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framehaus/StudioBookingService/internal/domain"
	bookingRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/booking"
	studioClient "github.com/framehaus/StudioBookingService/internal/integrations/studioservice"
	"github.com/framehaus/StudioBookingService/internal/service/bookings/models"
	"github.com/framehaus/StudioBookingService/pkg/ptr"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	byID                 map[int64]*domain.Booking
	customerBookings     []*domain.Booking
	studioBookings       []*domain.Booking
	lastFilter           domain.StudioBookingsFilter
	cancelledID          int64
	cancelReason         string
	updatedStatus        domain.BookingStatus
	assignedPhotographer int64
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (r *fakeBookingRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return r.customerBookings, nil
}

func (r *fakeBookingRepo) GetByStudioWithFilter(_ context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	return r.studioBookings, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	r.updatedStatus = status
	return nil
}

func (r *fakeBookingRepo) AssignPhotographer(_ context.Context, _ int64, photographerID int64) error {
	r.assignedPhotographer = photographerID
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	r.cancelledID = id
	r.cancelReason = reason
	return nil
}

type fakeStudioClient struct {
	studio    *studioClient.Studio
	studioErr error
}

func (c *fakeStudioClient) GetStudio(_ context.Context, _ int64) (*studioClient.Studio, error) {
	if c.studioErr != nil {
		return nil, c.studioErr
	}
	return c.studio, nil
}

const (
	ownerID   = int64(42)
	managerID = int64(500)
)

func testStudio() *studioClient.Studio {
	return &studioClient.Studio{ID: 1, Name: "FrameHaus Center", ManagerIDs: []int64{managerID}}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              77,
		CustomerID:      ownerID,
		StudioID:        1,
		LayoutID:        10,
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		LayoutName:      "Cyclorama A",
		SessionPrice:    4500.0,
	}
}

func newTestService(repo *fakeBookingRepo, studio *fakeStudioClient) *Service {
	return NewService(repo, studio, nopLogger{})
}

func TestGetByID_OwnerAllowed(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	resp, err := svc.GetByID(context.Background(), 77, ownerID)
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, "2025-10-15", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "Cyclorama A", resp.LayoutName)
}

func TestGetByID_ManagerAllowed(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	_, err := svc.GetByID(context.Background(), 77, managerID)
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	_, err := svc.GetByID(context.Background(), 77, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{byID: map[int64]*domain.Booking{}},
		&fakeStudioClient{studio: testStudio()})

	_, err := svc.GetByID(context.Background(), 404, ownerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCustomerBookings_InvalidStatusRejected(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeStudioClient{studio: testStudio()})

	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: ownerID,
		Status:     ptr.Ptr("paused"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStudioBookings_ManagerOnly(t *testing.T) {
	repo := &fakeBookingRepo{studioBookings: []*domain.Booking{confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	resp, err := svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		UserID:   managerID,
		StudioID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		UserID:   999,
		StudioID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_OwnerSuccess(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	err := svc.Cancel(context.Background(), 77, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), repo.cancelledID)
	assert.Equal(t, "передумал", repo.cancelReason)
}

func TestCancel_ManagerCanCancelForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	err := svc.Cancel(context.Background(), 77, &models.CancelBookingRequest{UserID: managerID})
	require.NoError(t, err)
	assert.Equal(t, int64(77), repo.cancelledID)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	err := svc.Cancel(context.Background(), 77, &models.CancelBookingRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_FinishedBookingRejected(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{"completed", domain.StatusCompleted},
		{"already cancelled", domain.StatusCancelled},
		{"no show", domain.StatusNoShow},
		{"in progress", domain.StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := confirmedBooking()
			booking.Status = tt.status
			repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
			svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

			err := svc.Cancel(context.Background(), 77, &models.CancelBookingRequest{UserID: ownerID})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestUpdateStatus_ManagerSuccess(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	err := svc.UpdateStatus(context.Background(), 77, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
}

func TestUpdateStatus_OwnerDenied(t *testing.T) {
	// Статусом управляет студия, а не клиент
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	err := svc.UpdateStatus(context.Background(), 77, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	err := svc.UpdateStatus(context.Background(), 77, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "archived",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssignPhotographer_ManagerSuccess(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	err := svc.AssignPhotographer(context.Background(), 77, &models.AssignPhotographerRequest{
		UserID:         managerID,
		PhotographerID: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(300), repo.assignedPhotographer)
}

func TestAssignPhotographer_InactiveBookingRejected(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{"completed", domain.StatusCompleted},
		{"cancelled", domain.StatusCancelled},
		{"no show", domain.StatusNoShow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := confirmedBooking()
			booking.Status = tt.status
			repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
			svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

			err := svc.AssignPhotographer(context.Background(), 77, &models.AssignPhotographerRequest{
				UserID:         managerID,
				PhotographerID: 300,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, repo.assignedPhotographer)
		})
	}
}

func TestAssignPhotographer_OwnerDenied(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: confirmedBooking()}}
	svc := newTestService(repo, &fakeStudioClient{studio: testStudio()})

	err := svc.AssignPhotographer(context.Background(), 77, &models.AssignPhotographerRequest{
		UserID:         ownerID,
		PhotographerID: 300,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
