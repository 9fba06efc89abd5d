package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/FuadAliah/celtis-pos/internal/catalog"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/pkg/config"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	published  []published
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if f.declareErr != nil {
		return f.declareErr
	}
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testSale() sales.Sale {
	return sales.Sale{
		ID:            "sale-1",
		SaleNumber:    "SALE-1",
		PaymentMethod: enums.PaymentMethodCard,
		Status:        enums.SaleStatusCompleted,
		CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		StaffName:     "Jane Smith",
		Items: []sales.Item{{
			MenuItemName:        "Margherita Pizza",
			MenuItemSKU:         "PZ-001",
			Quantity:            2,
			Size:                enums.SizeLarge,
			Customizations:      []catalog.SelectedModifier{{ID: "mod-extra-cheese", Name: "Extra Cheese", Price: 1.5}},
			SpecialInstructions: "cut in 8",
			UnitPrice:           8.5,
			Subtotal:            17,
		}},
	}
}

func TestNewPublisherDeclaresTopicExchange(t *testing.T) {
	ch := &fakeChannel{}
	_, err := NewPublisher(ch, "pos_kitchen")
	require.NoError(t, err)
	assert.Equal(t, []string{"pos_kitchen:topic"}, ch.declared)

	_, err = NewPublisher(&fakeChannel{declareErr: errors.New("denied")}, "pos_kitchen")
	assert.Error(t, err)
	_, err = NewPublisher(nil, "pos_kitchen")
	assert.Error(t, err)
	_, err = NewPublisher(&fakeChannel{}, "")
	assert.Error(t, err)
}

func TestNotifyPublishesTicket(t *testing.T) {
	ch := &fakeChannel{}
	pub, err := NewPublisher(ch, "pos_kitchen")
	require.NoError(t, err)

	require.NoError(t, pub.Notify(context.Background(), testSale()))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "pos_kitchen", got.exchange)
	assert.Equal(t, "kitchen.ticket.card", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "sale-1", got.msg.MessageId)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), got.msg.Timestamp)

	var ticket Ticket
	require.NoError(t, json.Unmarshal(got.msg.Body, &ticket))
	assert.Equal(t, "SALE-1", ticket.SaleNumber)
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, TicketItem{
		Name:      "Margherita Pizza",
		SKU:       "PZ-001",
		Quantity:  2,
		Size:      "large",
		Modifiers: []string{"Extra Cheese"},
		Note:      "cut in 8",
	}, ticket.Items[0])

	require.NoError(t, pub.Close())
	assert.True(t, ch.closed)
}

func TestNotifyStampsCompletionTime(t *testing.T) {
	ch := &fakeChannel{}
	pub, err := NewPublisher(ch, "pos_kitchen")
	require.NoError(t, err)

	sale := testSale()
	completed := time.Date(2026, 3, 1, 11, 30, 0, 0, time.FixedZone("AST", 3*60*60))
	sale.CompletedAt = &completed
	require.NoError(t, pub.Notify(context.Background(), sale))
	require.Len(t, ch.published, 1)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC), ch.published[0].msg.Timestamp)
}

func TestNotifySurfacesPublishErrors(t *testing.T) {
	pub, err := NewPublisher(&fakeChannel{publishErr: errors.New("channel closed")}, "pos_kitchen")
	require.NoError(t, err)
	assert.Error(t, pub.Notify(context.Background(), testSale()))
}

func TestDialRequiresURL(t *testing.T) {
	_, err := Dial(context.Background(), config.KitchenConfig{Exchange: "pos_kitchen"}, nil)
	assert.Error(t, err)
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = Nop{}
	assert.NoError(t, n.Notify(context.Background(), testSale()))
}
