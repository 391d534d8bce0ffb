package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
)

func TestAdminUpdateStatus_TerminalStatusIsFrozen(t *testing.T) {
	for _, terminal := range []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusCanceled} {
		tx := NewTxManagerMock()
		uc := NewAdminOrderUsecase(tx, new(AuditLogRepoMock))

		tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
			Return(model.Order{ID: 5, Status: terminal}, nil)

		err := uc.UpdateStatus(context.Background(), 1, 5, "shipped")

		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Status)
		tx.Repos.OrdersMock.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestAdminUpdateStatus_InvalidStatus(t *testing.T) {
	uc := NewAdminOrderUsecase(NewTxManagerMock(), new(AuditLogRepoMock))

	err := uc.UpdateStatus(context.Background(), 1, 5, "exploded")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAdminUpdateStatus_CancelRestoresStockAndAudits(t *testing.T) {
	tx := NewTxManagerMock()
	auditRepo := new(AuditLogRepoMock)
	uc := NewAdminOrderUsecase(tx, auditRepo)

	tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, Status: model.OrderStatusPending}, nil)
	tx.Repos.OrdersMock.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatusCanceled).
		Return(nil)
	tx.Repos.OrderItemsMock.On("ListByOrderID", mock.Anything, int64(5)).
		Return([]model.OrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		}, nil)
	tx.Repos.InventoryMock.On("IncreaseStock", mock.Anything, int64(1), int64(2)).Return(nil)
	tx.Repos.InventoryMock.On("IncreaseStock", mock.Anything, int64(2), int64(1)).Return(nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == 5 &&
			l.ActorUserID == 1
	})).Return(nil)

	err := uc.UpdateStatus(context.Background(), 1, 5, "canceled")

	assert.NoError(t, err)
	tx.Repos.InventoryMock.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestAdminUpdateStatus_NormalTransitionDoesNotTouchStock(t *testing.T) {
	tx := NewTxManagerMock()
	auditRepo := new(AuditLogRepoMock)
	uc := NewAdminOrderUsecase(tx, auditRepo)

	tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, Status: model.OrderStatusProcessing}, nil)
	tx.Repos.OrdersMock.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatusShipped).
		Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.UpdateStatus(context.Background(), 1, 5, "shipped")

	assert.NoError(t, err)
	tx.Repos.InventoryMock.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminSetPaymentVerified_AuditsChange(t *testing.T) {
	tx := NewTxManagerMock()
	auditRepo := new(AuditLogRepoMock)
	uc := NewAdminOrderUsecase(tx, auditRepo)

	tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, PaymentVerified: false}, nil)
	tx.Repos.OrdersMock.On("SetPaymentVerified", mock.Anything, int64(5), true).
		Return(nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdatePaymentVerified && l.ResourceID == 5
	})).Return(nil)

	err := uc.SetPaymentVerified(context.Background(), 1, 5, true)

	assert.NoError(t, err)
	auditRepo.AssertExpectations(t)
}

func TestAdminSetPaymentVerified_NoopWhenUnchanged(t *testing.T) {
	tx := NewTxManagerMock()
	auditRepo := new(AuditLogRepoMock)
	uc := NewAdminOrderUsecase(tx, auditRepo)

	tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, PaymentVerified: true}, nil)

	err := uc.SetPaymentVerified(context.Background(), 1, 5, true)

	assert.NoError(t, err)
	tx.Repos.OrdersMock.AssertNotCalled(t, "SetPaymentVerified", mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
