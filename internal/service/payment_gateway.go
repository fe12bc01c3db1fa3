package service

import (
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// CheckoutGateway creates hosted checkout sessions with the external
// payment processor.
type CheckoutGateway interface {
	CreateSession(orderID string, amountCents int64, email, description string) (sessionID, redirectURL string, err error)
}

// MidtransGateway backs CheckoutGateway with the Midtrans Snap API.
type MidtransGateway struct {
	client snap.Client
}

// NewMidtransGateway initialises the Snap client against sandbox or
// production.
func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	g := &MidtransGateway{}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g.client.New(serverKey, env)
	return g
}

// CreateSession creates a Snap transaction and returns its token and
// redirect URL.
func (g *MidtransGateway) CreateSession(orderID string, amountCents int64, email, description string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amountCents,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    orderID,
				Price: amountCents,
				Qty:   1,
				Name:  description,
			},
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}

	resp, err := g.client.CreateTransaction(req)
	if err != nil {
		return "", "", fmt.Errorf("create checkout session: %w", err)
	}
	return resp.Token, resp.RedirectURL, nil
}
