package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"prompttovideo-be/internal/dto"
	"prompttovideo-be/internal/entity"
	"prompttovideo-be/internal/repository/specification"
	"prompttovideo-be/internal/repository/unitofwork"
	"prompttovideo-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// creditPacks is the purchasable catalog. Packs are configuration, not
// database rows; the pack id travels through Stripe metadata and comes
// back on the webhook.
var creditPacks = []entity.CreditPack{
	{Id: "starter", Name: "Starter Pack", Credits: 10, PriceCents: 999, Description: "10 video credits"},
	{Id: "pro", Name: "Pro Pack", Credits: 50, PriceCents: 3999, Description: "50 video credits"},
	{Id: "unlimited", Name: "Unlimited", Credits: -1, PriceCents: 1999, Description: "Unlimited video generation"},
}

func findPack(id string) *entity.CreditPack {
	for i := range creditPacks {
		if creditPacks[i].Id == id {
			return &creditPacks[i]
		}
	}
	return nil
}

type IPaymentService interface {
	GetCreditPacks(ctx context.Context) ([]*dto.CreditPackResponse, error)
	CreateCheckoutSession(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	uowFactory    unitofwork.RepositoryFactory
	creditService ICreditService
	publisher     IPublisherService
	secretKey     string
	webhookSecret string
	clientURL     string
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	creditService ICreditService,
	publisher IPublisherService,
	secretKey, webhookSecret, clientURL string,
) IPaymentService {
	stripe.Key = secretKey
	return &paymentService{
		uowFactory:    uowFactory,
		creditService: creditService,
		publisher:     publisher,
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		clientURL:     clientURL,
	}
}

func (s *paymentService) GetCreditPacks(ctx context.Context) ([]*dto.CreditPackResponse, error) {
	res := make([]*dto.CreditPackResponse, 0, len(creditPacks))
	for _, p := range creditPacks {
		res = append(res, &dto.CreditPackResponse{
			Id:          p.Id,
			Name:        p.Name,
			Credits:     p.Credits,
			Price:       float64(p.PriceCents) / 100,
			Description: p.Description,
		})
	}
	return res, nil
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	pack := findPack(req.PackId)
	if pack == nil {
		return nil, errors.New("credit pack not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = fmt.Sprintf("%s/credits?purchase=success", s.clientURL)
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = fmt.Sprintf("%s/credits?purchase=cancelled", s.clientURL)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(user.Email),
		ClientReferenceID: stripe.String(userId.String()),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(pack.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(pack.Name),
						Description: stripe.String(pack.Description),
					},
				},
			},
		},
	}
	params.AddMetadata("user_id", userId.String())
	params.AddMetadata("pack_id", pack.Id)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &dto.CheckoutResponse{
		SessionId:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

// HandleWebhook verifies the Stripe signature and fulfills completed
// checkouts. The session id doubles as the ledger idempotency key, so
// Stripe's retry delivery cannot double-credit.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	userIdStr := sess.Metadata["user_id"]
	packId := sess.Metadata["pack_id"]
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fmt.Errorf("webhook session %s has invalid user_id %q", sess.ID, userIdStr)
	}
	pack := findPack(packId)
	if pack == nil {
		return fmt.Errorf("webhook session %s references unknown pack %q", sess.ID, packId)
	}

	if pack.Credits == -1 {
		if err := s.creditService.GrantUnlimited(ctx, userId, sess.ID); err != nil {
			return err
		}
	} else {
		ref := sess.ID
		desc := fmt.Sprintf("Purchased %s", pack.Name)
		if err := s.creditService.Grant(ctx, userId, pack.Credits, entity.CreditSourcePurchase, desc, &ref); err != nil {
			return err
		}
	}

	_ = s.publisher.PublishEvent(ctx, events.CreditsPurchased, map[string]interface{}{
		"user_id": userId.String(),
		"pack_id": pack.Id,
		"credits": pack.Credits,
	})
	return nil
}
