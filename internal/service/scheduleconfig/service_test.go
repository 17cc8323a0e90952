package scheduleconfig

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framehaus/StudioBookingService/internal/domain"
	configRepo "github.com/framehaus/StudioBookingService/internal/infra/storage/scheduleconfig"
	studioClient "github.com/framehaus/StudioBookingService/internal/integrations/studioservice"
	"github.com/framehaus/StudioBookingService/internal/service/scheduleconfig/models"
	"github.com/framehaus/StudioBookingService/pkg/ptr"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeConfigRepo struct {
	byID          map[int64]*domain.ScheduleConfig
	byStudioPair  *domain.ScheduleConfig
	studioConfigs []*domain.ScheduleConfig
	created       *domain.ScheduleConfig
	updated       *domain.ScheduleConfig
	deletedID     int64
}

func (r *fakeConfigRepo) Create(_ context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	config.ID = 7
	config.CreatedAt = time.Now()
	config.UpdatedAt = config.CreatedAt
	r.created = config
	return config, nil
}

func (r *fakeConfigRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleConfig, error) {
	config, ok := r.byID[id]
	if !ok {
		return nil, configRepo.ErrConfigNotFound
	}
	return config, nil
}

func (r *fakeConfigRepo) GetByStudioAndLayout(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if r.byStudioPair == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return r.byStudioPair, nil
}

func (r *fakeConfigRepo) GetAllByStudio(_ context.Context, _ int64) ([]*domain.ScheduleConfig, error) {
	return r.studioConfigs, nil
}

func (r *fakeConfigRepo) Update(_ context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	config.ID = id
	r.updated = config
	return config, nil
}

func (r *fakeConfigRepo) Delete(_ context.Context, id int64) error {
	r.deletedID = id
	return nil
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

const managerID = int64(500)

func testStudio() *studioClient.Studio {
	return &studioClient.Studio{ID: 1, Name: "FrameHaus Center", ManagerIDs: []int64{managerID}}
}

func testLayout() *studioClient.Layout {
	return &studioClient.Layout{ID: 10, StudioID: 1, Name: "Cyclorama A", IsActive: true}
}

func createRequest() *models.CreateConfigRequest {
	return &models.CreateConfigRequest{
		UserID:             managerID,
		StudioID:           1,
		OperatingStartTime: "08:00",
		OperatingEndTime:   "20:00",
		SlotGapMinutes:     60,
	}
}

func storedConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                 3,
		StudioID:           1,
		OperatingStartTime: types.TimeString("09:00"),
		OperatingEndTime:   types.TimeString("18:00"),
		SlotGapMinutes:     30,
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio(), layout: testLayout()}, nopLogger{})

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "08:00", resp.OperatingStartTime)
	assert.Equal(t, 60, resp.SlotGapMinutes)
	require.NotNil(t, repo.created)
}

func TestCreate_NonManagerDenied(t *testing.T) {
	svc := NewService(&fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	req := createRequest()
	req.UserID = 999

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_DuplicateRejected(t *testing.T) {
	repo := &fakeConfigRepo{byStudioPair: storedConfig()}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	_, err := svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, ErrConfigAlreadyExists)
}

func TestCreate_UnknownLayoutRejected(t *testing.T) {
	svc := NewService(&fakeConfigRepo{},
		&fakeStudioClient{studio: testStudio(), layoutErr: studioClient.ErrLayoutNotFound}, nopLogger{})

	req := createRequest()
	req.LayoutID = ptr.Ptr(int64(404))

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.CreateConfigRequest)
	}{
		{"window crosses midnight", func(req *models.CreateConfigRequest) {
			req.OperatingStartTime = "20:00"
			req.OperatingEndTime = "08:00"
		}},
		{"equal open and close", func(req *models.CreateConfigRequest) {
			req.OperatingStartTime = "09:00"
			req.OperatingEndTime = "09:00"
		}},
		{"gap below minimum", func(req *models.CreateConfigRequest) { req.SlotGapMinutes = 1 }},
		{"gap above maximum", func(req *models.CreateConfigRequest) { req.SlotGapMinutes = 999 }},
		{"session too short", func(req *models.CreateConfigRequest) { req.SessionDurationMinutes = ptr.Ptr(5) }},
		{"session too long", func(req *models.CreateConfigRequest) { req.SessionDurationMinutes = ptr.Ptr(600) }},
		{"non-canonical time", func(req *models.CreateConfigRequest) { req.OperatingStartTime = "8:00" }},
		{"malformed time", func(req *models.CreateConfigRequest) { req.OperatingEndTime = "25:70" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeConfigRepo{}, &fakeStudioClient{studio: testStudio()}, nopLogger{})

			req := createRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpsert_CreatesWhenMissing(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	resp, err := svc.Upsert(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.NotNil(t, repo.created)
	assert.Nil(t, repo.updated)
}

func TestUpsert_UpdatesExisting(t *testing.T) {
	existing := storedConfig()
	repo := &fakeConfigRepo{
		byStudioPair: existing,
		byID:         map[int64]*domain.ScheduleConfig{existing.ID: existing},
	}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	resp, err := svc.Upsert(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, existing.ID, resp.ID)
	assert.Equal(t, "08:00", resp.OperatingStartTime)
	assert.Equal(t, 60, resp.SlotGapMinutes)
	require.NotNil(t, repo.updated)
	assert.Nil(t, repo.created)
}

func TestUpdate_PartialFieldsApplied(t *testing.T) {
	existing := storedConfig()
	repo := &fakeConfigRepo{byID: map[int64]*domain.ScheduleConfig{existing.ID: existing}}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	resp, err := svc.Update(context.Background(), existing.ID, &models.UpdateConfigRequest{
		UserID:         managerID,
		SlotGapMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.SlotGapMinutes)
	// Нетронутые поля сохраняются
	assert.Equal(t, "09:00", resp.OperatingStartTime)
	assert.Equal(t, "18:00", resp.OperatingEndTime)
}

func TestUpdate_InvalidResultRejected(t *testing.T) {
	existing := storedConfig()
	repo := &fakeConfigRepo{byID: map[int64]*domain.ScheduleConfig{existing.ID: existing}}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	// После применения окно начиналось бы позже конца
	_, err := svc.Update(context.Background(), existing.ID, &models.UpdateConfigRequest{
		UserID:             managerID,
		OperatingStartTime: ptr.Ptr("19:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.updated)
}

func TestGetAllByStudio_ManagerOnly(t *testing.T) {
	repo := &fakeConfigRepo{studioConfigs: []*domain.ScheduleConfig{storedConfig()}}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	resp, err := svc.GetAllByStudio(context.Background(), 1, managerID)
	require.NoError(t, err)
	assert.Len(t, resp.Configs, 1)

	_, err = svc.GetAllByStudio(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete_Success(t *testing.T) {
	existing := storedConfig()
	repo := &fakeConfigRepo{byID: map[int64]*domain.ScheduleConfig{existing.ID: existing}}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), existing.ID, managerID))
	assert.Equal(t, existing.ID, repo.deletedID)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&fakeConfigRepo{byID: map[int64]*domain.ScheduleConfig{}},
		&fakeStudioClient{studio: testStudio()}, nopLogger{})

	err := svc.Delete(context.Background(), 404, managerID)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestDelete_NonManagerDenied(t *testing.T) {
	existing := storedConfig()
	repo := &fakeConfigRepo{byID: map[int64]*domain.ScheduleConfig{existing.ID: existing}}
	svc := NewService(repo, &fakeStudioClient{studio: testStudio()}, nopLogger{})

	err := svc.Delete(context.Background(), existing.ID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.deletedID)
}
