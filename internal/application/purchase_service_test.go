package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oksasatya/go-project-marketplace/config"
	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
	repo "github.com/oksasatya/go-project-marketplace/internal/domain/repository"
	"github.com/oksasatya/go-project-marketplace/internal/mock"
	"github.com/oksasatya/go-project-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/go-project-marketplace/pkg/mailer/templates"
)

type purchaseFixture struct {
	projects  *mock.MockProjectRepository
	purchases *mock.MockPurchaseRepository
	payments  *mock.MockPaymentGateway
	pub       *mock.MockJobPublisher
	svc       *PurchaseService
}

func newPurchaseFixture(t *testing.T) purchaseFixture {
	ctrl := gomock.NewController(t)
	f := purchaseFixture{
		projects:  mock.NewMockProjectRepository(ctrl),
		purchases: mock.NewMockPurchaseRepository(ctrl),
		payments:  mock.NewMockPaymentGateway(ctrl),
		pub:       mock.NewMockJobPublisher(ctrl),
	}
	cfg := &config.Config{Currency: "usd", MailSendEnabled: true, AppURL: "https://market.test"}
	f.svc = NewPurchaseService(f.projects, f.purchases, f.payments, nil, f.pub, quietLogger(), cfg)
	return f
}

func TestAmountCents(t *testing.T) {
	assert.Equal(t, int64(50000), AmountCents(500))
	assert.Equal(t, int64(1999), AmountCents(19.99))
	assert.Equal(t, int64(1), AmountCents(0.005))
	assert.Equal(t, int64(0), AmountCents(0))
}

func TestPurchase(t *testing.T) {
	f := newPurchaseFixture(t)
	project := sampleProjects()[1]
	before := paymentIntentsCreated.Value()

	f.projects.EXPECT().GetByID(gomock.Any(), "p1").Return(&project, nil)
	f.payments.EXPECT().
		CreateIntent(gomock.Any(), int64(50000), "usd", map[string]string{"project_id": "p1", "user_id": "u2"}).
		Return(gateway.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil)
	f.purchases.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *entity.Purchase) error {
		assert.Equal(t, "pi_1", p.PaymentIntentID)
		assert.Equal(t, entity.PurchasePending, p.Status)
		assert.Equal(t, "u2", p.BuyerID)
		p.ID = "pur_1"
		return nil
	})
	var job mailer.EmailJob
	f.pub.EXPECT().PublishJSON(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, body any) error {
		job = body.(mailer.EmailJob)
		return nil
	})

	res, err := f.svc.Purchase(context.Background(), bob, "p1", "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, PurchaseResult{PurchaseID: "pur_1", ClientSecret: "pi_1_secret", AmountCents: 50000, Currency: "usd"}, res)
	assert.Equal(t, before+1, paymentIntentsCreated.Value())

	assert.Equal(t, "ann@x.io", job.To)
	assert.Equal(t, mailtpl.ProjectPurchased, job.Template)
	assert.Equal(t, "Bob", job.Data["BuyerName"])
	assert.Equal(t, "500.00 USD", job.Data["Amount"])
	assert.Equal(t, "203.0.113.7", job.Data["IP"])
	assert.Equal(t, "https://market.test/project/p1", job.Data["ProjectURL"])
}

func TestPurchase_OwnProject(t *testing.T) {
	f := newPurchaseFixture(t)
	project := sampleProjects()[1]
	f.projects.EXPECT().GetByID(gomock.Any(), "p1").Return(&project, nil)

	_, err := f.svc.Purchase(context.Background(), ann, "p1", "")
	assert.ErrorIs(t, err, ErrCannotBuyOwnProject)
}

func TestPurchase_UnknownProject(t *testing.T) {
	f := newPurchaseFixture(t)
	f.projects.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, repo.ErrNotFound)

	_, err := f.svc.Purchase(context.Background(), bob, "nope", "")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestPurchase_ProviderFailure(t *testing.T) {
	f := newPurchaseFixture(t)
	project := sampleProjects()[1]
	f.projects.EXPECT().GetByID(gomock.Any(), "p1").Return(&project, nil)
	f.payments.EXPECT().CreateIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(gateway.PaymentIntent{}, errors.New("card_declined"))

	_, err := f.svc.Purchase(context.Background(), bob, "p1", "")
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
}

func TestPurchase_NoGateway(t *testing.T) {
	f := newPurchaseFixture(t)
	f.svc.Payments = nil
	project := sampleProjects()[1]
	f.projects.EXPECT().GetByID(gomock.Any(), "p1").Return(&project, nil)

	_, err := f.svc.Purchase(context.Background(), bob, "p1", "")
	assert.ErrorIs(t, err, ErrPaymentUnavailable)
}

func TestPurchase_List(t *testing.T) {
	f := newPurchaseFixture(t)
	want := []entity.Purchase{{ID: "pur_1", BuyerID: "u2"}}
	f.purchases.EXPECT().ListByBuyer(gomock.Any(), "u2").Return(want, nil)

	got, err := f.svc.List(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
