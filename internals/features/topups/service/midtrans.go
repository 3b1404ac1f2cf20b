// file: internals/features/topups/service/midtrans.go
package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"messku_backend/internals/features/topups/model"
)

var SnapClient snap.Client

// InitMidtrans harus dipanggil saat bootstrap app.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
		return
	}
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken membuat token Snap Midtrans untuk satu top-up.
func GenerateSnapToken(t *model.Topup, name, email string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  t.TopupOrderID,
			GrossAmt: t.TopupAmount.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
