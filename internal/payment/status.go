package payment

import (
	"context"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/NavalhaLabs/barber-manager/internal/models"
)

// StatusProvider resolve o status de um pagamento antecipado. Só o
// status é consumido: a cobrança em si acontece fora deste serviço.
type StatusProvider interface {
	Status(ctx context.Context, paymentRef string) (string, error)
}

// ===============================
// Mercado Pago
// ===============================

type MercadoPagoProvider struct {
	client mppayment.Client
}

func NewMercadoPagoProvider(accessToken string) (*MercadoPagoProvider, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoProvider{client: mppayment.NewClient(cfg)}, nil
}

// Status mapeia o vocabulário do Mercado Pago para o nosso:
// approved -> paid; rejected/cancelled/refunded -> unpaid; resto pende.
func (p *MercadoPagoProvider) Status(ctx context.Context, paymentRef string) (string, error) {
	id, err := strconv.Atoi(paymentRef)
	if err != nil {
		return "", err
	}

	resource, err := p.client.Get(ctx, id)
	if err != nil {
		return "", err
	}

	switch resource.Status {
	case "approved":
		return models.PaymentPaid, nil
	case "rejected", "cancelled", "refunded", "charged_back":
		return models.PaymentUnpaid, nil
	default:
		return models.PaymentPending, nil
	}
}
