package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"
)

// 支払い確認。外部ゲートウェイの署名を検証して注文を進める。
type PaymentUsecase struct {
	tx       repo.TransactionManager
	verifier payment.SignatureVerifier
}

func NewPaymentUsecase(tx repo.TransactionManager, verifier payment.SignatureVerifier) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, verifier: verifier}
}

type ConfirmPaymentInput struct {
	OrderID    int64
	OrderRef   string
	PaymentRef string
	Signature  string
}

type ConfirmPaymentOutput struct {
	Status string `json:"status"`
}

// 署名OKなら status=processing にする。
// payment_verified はここでは触らない（別経路で更新される）。
// 既にprocessingの注文への再確認は成功扱い（副作用なし）。
func (u *PaymentUsecase) ConfirmPayment(ctx context.Context, userID int64, in ConfirmPaymentInput) (ConfirmPaymentOutput, error) {
	if userID <= 0 {
		return ConfirmPaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return ConfirmPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "order id missing")
	}

	//署名検証。失敗したら注文には一切触らない。
	err := u.verifier.Verify(payment.ConfirmationPayload{
		OrderRef:   in.OrderRef,
		PaymentRef: in.PaymentRef,
		Signature:  in.Signature,
	})
	if err != nil {
		if errors.Is(err, payment.ErrSignatureMismatch) {
			return ConfirmPaymentOutput{}, NewHTTPError(http.StatusBadRequest, "signature verification failed")
		}
		//ゲートウェイ側の想定外エラーはメッセージ付き400で返す（リトライしない）
		return ConfirmPaymentOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//所有者以外には存在を漏らさない（404）
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		//二重確認は無害（statusの代入だけで加算等の副作用はない）
		if o.Status == model.OrderStatusProcessing {
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, in.OrderID, model.OrderStatusProcessing); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return ConfirmPaymentOutput{}, err
	}
	return ConfirmPaymentOutput{Status: "Payment verified"}, nil
}
