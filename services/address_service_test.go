package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tienda-backend/models"
	"tienda-backend/services"
)

type recordingAddrRepo struct {
	mockAddrRepo
	created        *models.Address
	updated        *models.Address
	setDefaultID   uuid.UUID
	setDefaultUser uuid.UUID
	deleteErr      error
}

func (m *recordingAddrRepo) Create(_ context.Context, address *models.Address) error {
	m.created = address
	return nil
}
func (m *recordingAddrRepo) Update(_ context.Context, address *models.Address) error {
	m.updated = address
	return nil
}
func (m *recordingAddrRepo) SetDefault(_ context.Context, id, userID uuid.UUID) error {
	m.setDefaultID = id
	m.setDefaultUser = userID
	return nil
}
func (m *recordingAddrRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return m.deleteErr
}

func newTestAddressService(repo *recordingAddrRepo) *services.AddressService {
	logger, _ := zap.NewDevelopment()
	return services.NewAddressService(repo, logger)
}

func TestAddressCreate_ScopedToUser(t *testing.T) {
	repo := &recordingAddrRepo{}
	svc := newTestAddressService(repo)
	userID := uuid.New()

	address, svcErr := svc.Create(context.Background(), userID, services.AddressInput{
		Street:     "Av. Corrientes 1234",
		City:       "Buenos Aires",
		State:      "AR-C",
		Country:    "AR",
		PostalCode: "1043",
		IsDefault:  true,
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, userID, address.UserID)
	assert.True(t, address.IsDefault)
	assert.Same(t, address, repo.created)
}

func TestAddressSetDefault_TargetsOwner(t *testing.T) {
	addrID := uuid.New()
	userID := uuid.New()
	repo := &recordingAddrRepo{}
	repo.address = &models.Address{ID: addrID, UserID: userID}
	svc := newTestAddressService(repo)

	svcErr := svc.SetDefault(context.Background(), addrID)

	assert.Nil(t, svcErr)
	assert.Equal(t, addrID, repo.setDefaultID)
	assert.Equal(t, userID, repo.setDefaultUser)
}

func TestAddressSetDefault_NotFound(t *testing.T) {
	repo := &recordingAddrRepo{}
	repo.findErr = gorm.ErrRecordNotFound
	svc := newTestAddressService(repo)

	svcErr := svc.SetDefault(context.Background(), uuid.New())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestAddressUpdate_KeepsOwner(t *testing.T) {
	addrID := uuid.New()
	userID := uuid.New()
	repo := &recordingAddrRepo{}
	repo.address = &models.Address{ID: addrID, UserID: userID, Street: "Old St"}
	svc := newTestAddressService(repo)

	address, svcErr := svc.Update(context.Background(), addrID, services.AddressInput{
		Street:     "New St 99",
		City:       "Córdoba",
		State:      "AR-X",
		Country:    "AR",
		PostalCode: "5000",
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, userID, address.UserID)
	assert.Equal(t, "New St 99", address.Street)
}

func TestAddressDelete_NotFound(t *testing.T) {
	repo := &recordingAddrRepo{deleteErr: gorm.ErrRecordNotFound}
	svc := newTestAddressService(repo)

	svcErr := svc.Delete(context.Background(), uuid.New())

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}
