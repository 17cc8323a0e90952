package create_booking

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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	existing   []*domain.Booking
	createErr  error
	created    *domain.Booking
	lastFilter domain.StudioBookingsFilter
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	booking.ID = 101
	r.created = booking
	return booking, nil
}

func (r *fakeBookingRepo) GetByStudioWithFilter(_ context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	return r.existing, nil
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
	layout    *studioClient.Layout
	studioErr error
	layoutErr error
}

func (c *fakeStudioClient) GetStudio(_ context.Context, _ int64) (*studioClient.Studio, error) {
	if c.studioErr != nil {
		return nil, c.studioErr
	}
	return c.studio, nil
}

func (c *fakeStudioClient) GetLayout(_ context.Context, _, _ int64) (*studioClient.Layout, error) {
	if c.layoutErr != nil {
		return nil, c.layoutErr
	}
	return c.layout, nil
}

func testStudio() *studioClient.Studio {
	return &studioClient.Studio{ID: 1, Name: "FrameHaus Center", ManagerIDs: []int64{500}}
}

func testLayout() *studioClient.Layout {
	return &studioClient.Layout{
		ID:           10,
		StudioID:     1,
		Name:         "Cyclorama A",
		SessionPrice: ptr.Ptr(4500.0),
		IsActive:     true,
	}
}

func activeBooking(id int64, start, end types.TimeString, duration int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		CustomerID:      42,
		StudioID:        1,
		LayoutID:        10,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
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
		CustomerID: 42,
		StudioID:   1,
		LayoutID:   10,
		Date:       time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}
}

func TestExecute_SuccessWithDefaultConfig(t *testing.T) {
	repo := &fakeBookingRepo{}
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, domain.DefaultSessionDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Cyclorama A", resp.LayoutName)
	assert.Equal(t, 4500.0, resp.SessionPrice)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusConfirmed, repo.created.Status)
	assert.False(t, repo.lastFilter.IncludeInactive, "conflict check must only see time-occupying bookings")
}

func TestExecute_NotesAreOptional(t *testing.T) {
	// Пожелания не обязательны: без них бронирование создаётся
	// с notes = NULL, а не с пустой строкой
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("without notes", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Nil(t, resp.Notes)
		require.NotNil(t, repo.created)
		assert.Nil(t, repo.created.Notes)
	})

	t.Run("with notes", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

		req := validRequest()
		req.Notes = ptr.Ptr("съёмка каталога, нужен циклорамный фон")

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		require.NotNil(t, resp.Notes)
		assert.Equal(t, "съёмка каталога, нужен циклорамный фон", *resp.Notes)
		require.NotNil(t, repo.created.Notes)
	})
}

func TestExecute_ConfiguredDurationOverridesDefault(t *testing.T) {
	repo := &fakeBookingRepo{}
	cfg := &fakeConfigRepo{config: &domain.ScheduleConfig{
		ID:                     7,
		StudioID:               1,
		OperatingStartTime:     types.TimeString("09:00"),
		OperatingEndTime:       types.TimeString("18:00"),
		SlotGapMinutes:         30,
		SessionDurationMinutes: ptr.Ptr(90),
	}}
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, cfg, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	req := validRequest()
	req.StartTime = types.TimeString("10:30")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, types.TimeString("12:00"), resp.EndTime)
}

func TestExecute_OverlappingBookingRejected(t *testing.T) {
	repo := &fakeBookingRepo{existing: []*domain.Booking{
		activeBooking(1, "10:30", "11:30", 60),
	}}
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created, "booking must not be created when the slot is occupied")
}

func TestExecute_TouchingBookingDoesNotConflict(t *testing.T) {
	// Существующая сессия заканчивается ровно в 10:00 - новая может начаться в 10:00
	repo := &fakeBookingRepo{existing: []*domain.Booking{
		activeBooking(1, "09:00", "10:00", 60),
	}}
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}

func TestExecute_SessionPastClosingRejected(t *testing.T) {
	cfg := &fakeConfigRepo{config: &domain.ScheduleConfig{
		ID:                 7,
		StudioID:           1,
		OperatingStartTime: types.TimeString("09:00"),
		OperatingEndTime:   types.TimeString("18:00"),
		SlotGapMinutes:     30,
	}}
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, cfg, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	req := validRequest()
	req.StartTime = types.TimeString("17:30") // 60 минут не помещаются до 18:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotOffGridRejected(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	req := validRequest()
	req.StartTime = types.TimeString("10:15") // сетка по умолчанию кратна 30 минутам

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotOutsideOperatingHoursRejected(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	req := validRequest()
	req.StartTime = types.TimeString("08:00") // студия открывается в 09:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_MisconfiguredWindowRejected(t *testing.T) {
	cfg := &fakeConfigRepo{config: &domain.ScheduleConfig{
		ID:                 7,
		StudioID:           1,
		OperatingStartTime: types.TimeString("18:00"),
		OperatingEndTime:   types.TimeString("09:00"),
		SlotGapMinutes:     30,
	}}
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, cfg, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDateRejected(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PastSlotTodayRejected(t *testing.T) {
	// Сейчас 12:00 того же дня - слот 10:00 уже прошёл
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_FutureSlotTodayAllowed(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 10, 0, 0, time.UTC)
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, repo.created)
}

func TestExecute_InactiveLayoutRejected(t *testing.T) {
	layout := testLayout()
	layout.IsActive = false
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: layout}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLayoutInactive)
}

func TestExecute_StudioNotFound(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{},
		&fakeStudioClient{studioErr: studioClient.ErrStudioNotFound}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStudioNotFound)
}

func TestExecute_LayoutNotFound(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{},
		&fakeStudioClient{studio: testStudio(), layoutErr: studioClient.ErrLayoutNotFound}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestExecute_ConcurrentSlotTakenMapsToSlotNotAvailable(t *testing.T) {
	// Слот заняли между проверкой доступности и вставкой - уникальный индекс БД
	repo := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, &fakeConfigRepo{}, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'a'
	}

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero customer", func(req *Request) { req.CustomerID = 0 }},
		{"negative studio", func(req *Request) { req.StudioID = -1 }},
		{"zero layout", func(req *Request) { req.LayoutID = 0 }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"empty start time", func(req *Request) { req.StartTime = "" }},
		{"malformed start time", func(req *Request) { req.StartTime = "25:99" }},
		{"non-canonical start time", func(req *Request) { req.StartTime = "9:00" }},
		{"notes too long", func(req *Request) { req.Notes = ptr.Ptr(string(longNotes)) }},
	}

	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{},
				&fakeStudioClient{studio: testStudio(), layout: testLayout()}, now)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
