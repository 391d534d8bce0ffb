package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"
)

// テスト用verifier。固定の署名だけ受け付ける。
type fakeVerifier struct {
	validSignature string
}

func (v *fakeVerifier) Verify(p payment.ConfirmationPayload) error {
	if p.Signature == v.validSignature {
		return nil
	}
	return payment.ErrSignatureMismatch
}

func confirmInput(sig string) ConfirmPaymentInput {
	return ConfirmPaymentInput{
		OrderID:    5,
		OrderRef:   "order_abc",
		PaymentRef: "pay_xyz",
		Signature:  sig,
	}
}

func TestConfirmPayment_ValidSignatureMovesToProcessing(t *testing.T) {
	tx := NewTxManagerMock()
	uc := NewPaymentUsecase(tx, &fakeVerifier{validSignature: "good"})

	tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 10, Status: model.OrderStatusPending}, nil)
	tx.Repos.OrdersMock.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatusProcessing).
		Return(nil)

	out, err := uc.ConfirmPayment(context.Background(), 10, confirmInput("good"))

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Status)
	tx.Repos.OrdersMock.AssertExpectations(t)
	//payment_verifiedはここでは触らない
	tx.Repos.OrdersMock.AssertNotCalled(t, "SetPaymentVerified", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_BadSignatureLeavesOrderUntouched(t *testing.T) {
	tx := NewTxManagerMock()
	uc := NewPaymentUsecase(tx, &fakeVerifier{validSignature: "good"})

	_, err := uc.ConfirmPayment(context.Background(), 10, confirmInput("bad"))

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//署名NGなら注文を一切読まない・書かない
	tx.Repos.OrdersMock.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	tx.Repos.OrdersMock.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_NonOwnerGets404(t *testing.T) {
	tx := NewTxManagerMock()
	uc := NewPaymentUsecase(tx, &fakeVerifier{validSignature: "good"})

	tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 999, Status: model.OrderStatusPending}, nil)

	_, err := uc.ConfirmPayment(context.Background(), 10, confirmInput("good"))

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	tx.Repos.OrdersMock.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_UnknownOrderGets404(t *testing.T) {
	tx := NewTxManagerMock()
	uc := NewPaymentUsecase(tx, &fakeVerifier{validSignature: "good"})

	tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.ConfirmPayment(context.Background(), 10, confirmInput("good"))

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestConfirmPayment_IdempotentOnReconfirm(t *testing.T) {
	tx := NewTxManagerMock()
	uc := NewPaymentUsecase(tx, &fakeVerifier{validSignature: "good"})

	//既にprocessing
	tx.Repos.OrdersMock.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, UserID: 10, Status: model.OrderStatusProcessing}, nil)

	out, err := uc.ConfirmPayment(context.Background(), 10, confirmInput("good"))

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Status)
	tx.Repos.OrdersMock.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
