package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framehaus/StudioBookingService/internal/domain"
	bookingRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/booking"
	configRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/scheduleconfig"
	studioClient "github.com/framehaus/StudioBookingService/internal/integrations/studioservice"
	"github.com/framehaus/StudioBookingService/pkg/ptr"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type rescheduleCall struct {
	id              int64
	bookingDate     time.Time
	startTime       types.TimeString
	endTime         types.TimeString
	durationMinutes int
}

type fakeBookingRepo struct {
	byID          map[int64]*domain.Booking
	onDate        []*domain.Booking
	rescheduleErr error
	rescheduled   *rescheduleCall
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (r *fakeBookingRepo) GetByStudioWithFilter(_ context.Context, _ domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	return r.onDate, nil
}

func (r *fakeBookingRepo) Reschedule(_ context.Context, id int64, bookingDate time.Time, startTime, endTime types.TimeString, durationMinutes int) error {
	if r.rescheduleErr != nil {
		return r.rescheduleErr
	}
	r.rescheduled = &rescheduleCall{
		id:              id,
		bookingDate:     bookingDate,
		startTime:       startTime,
		endTime:         endTime,
		durationMinutes: durationMinutes,
	}
	return nil
}

type fakeConfigRepo struct {
	config *domain.ScheduleConfig
}

func (r *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if r.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return r.config, nil
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

func ownBooking() *domain.Booking {
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

func otherBooking(id int64, start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		CustomerID:      99,
		StudioID:        1,
		LayoutID:        10,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *fakeBookingRepo, cfg *fakeConfigRepo, studio *fakeStudioClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, cfg, studio, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:    ownerID,
		BookingID: 77,
		NewDate:   time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
	}
}

func testNow() time.Time {
	return time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
}

func TestExecute_Success(t *testing.T) {
	booking := ownBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("15:00"), resp.EndTime)
	assert.Equal(t, string(domain.StatusRescheduled), resp.Status)

	require.NotNil(t, repo.rescheduled)
	assert.Equal(t, int64(77), repo.rescheduled.id)
	assert.Equal(t, types.TimeString("15:00"), repo.rescheduled.endTime)
	assert.Equal(t, 60, repo.rescheduled.durationMinutes)
}

func TestExecute_MoveWithinOwnIntervalAllowed(t *testing.T) {
	// Перенос на тот же день со сдвигом на полчаса: интервал пересекается
	// только с самим переносимым бронированием, это не конфликт
	booking := ownBooking()
	repo := &fakeBookingRepo{
		byID:   map[int64]*domain.Booking{77: booking},
		onDate: []*domain.Booking{booking},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	req := validRequest()
	req.NewDate = booking.BookingDate
	req.StartTime = types.TimeString("10:30")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
}

func TestExecute_ConflictWithAnotherBookingRejected(t *testing.T) {
	booking := ownBooking()
	repo := &fakeBookingRepo{
		byID:   map[int64]*domain.Booking{77: booking},
		onDate: []*domain.Booking{otherBooking(88, "14:30", "15:30")},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.rescheduled)
}

func TestExecute_TouchingBookingDoesNotConflict(t *testing.T) {
	booking := ownBooking()
	repo := &fakeBookingRepo{
		byID:   map[int64]*domain.Booking{77: booking},
		onDate: []*domain.Booking{otherBooking(88, "13:00", "14:00")},
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
}

func TestExecute_DurationPrecedence(t *testing.T) {
	tests := []struct {
		name           string
		configured     *int
		bookingMinutes int
		wantDuration   int
		wantEndTime    types.TimeString
	}{
		{"config wins over booking", ptr.Ptr(90), 60, 90, "15:30"},
		{"booking duration when config silent", nil, 45, 45, "14:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := ownBooking()
			booking.DurationMinutes = tt.bookingMinutes

			var cfg *fakeConfigRepo
			if tt.configured != nil {
				cfg = &fakeConfigRepo{config: &domain.ScheduleConfig{
					ID:                     7,
					StudioID:               1,
					OperatingStartTime:     types.TimeString("09:00"),
					OperatingEndTime:       types.TimeString("18:00"),
					SlotGapMinutes:         30,
					SessionDurationMinutes: tt.configured,
				}}
			} else {
				cfg = &fakeConfigRepo{}
			}

			repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
			uc := newTestUseCase(repo, cfg, &fakeStudioClient{studio: testStudio()}, testNow())

			resp, err := uc.Execute(context.Background(), validRequest())
			require.NoError(t, err)
			assert.Equal(t, tt.wantDuration, resp.DurationMinutes)
			assert.Equal(t, tt.wantEndTime, resp.EndTime)
		})
	}
}

func TestExecute_ManagerCanRescheduleForeignBooking(t *testing.T) {
	booking := ownBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	req := validRequest()
	req.UserID = managerID

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, repo.rescheduled)
}

func TestExecute_StrangerAccessDenied(t *testing.T) {
	booking := ownBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	req := validRequest()
	req.UserID = 777

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{}}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_FinishedBookingCannotBeRescheduled(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{"completed", domain.StatusCompleted},
		{"cancelled", domain.StatusCancelled},
		{"no show", domain.StatusNoShow},
		{"in progress", domain.StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := ownBooking()
			booking.Status = tt.status
			repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
			uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrCannotReschedule)
		})
	}
}

func TestExecute_PastDateRejected(t *testing.T) {
	booking := ownBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	req := validRequest()
	req.NewDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PastSlotTodayRejected(t *testing.T) {
	booking := ownBooking()
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: booking}}
	now := time.Date(2025, 10, 20, 15, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_ConcurrentSlotTakenMapsToSlotNotAvailable(t *testing.T) {
	booking := ownBooking()
	repo := &fakeBookingRepo{
		byID:          map[int64]*domain.Booking{77: booking},
		rescheduleErr: bookingRepo.ErrSlotTaken,
	}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero user", func(req *Request) { req.UserID = 0 }},
		{"zero booking", func(req *Request) { req.BookingID = 0 }},
		{"zero date", func(req *Request) { req.NewDate = time.Time{} }},
		{"empty start time", func(req *Request) { req.StartTime = "" }},
		{"malformed start time", func(req *Request) { req.StartTime = "2pm" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{77: ownBooking()}}
			uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, testNow())

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
