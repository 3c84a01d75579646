package rabbitmq

import (
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

type fakeDeclarer struct {
	qosErr      error
	exchangeErr error
	queueErr    error
	bindErr     error
	bound       []string
	closed      bool
}

func (d *fakeDeclarer) Qos(int, int, bool) error { return d.qosErr }

func (d *fakeDeclarer) ExchangeDeclare(string, string, bool, bool, bool, bool, amqp.Table) error {
	return d.exchangeErr
}

func (d *fakeDeclarer) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{Name: name}, d.queueErr
}

func (d *fakeDeclarer) QueueBind(name, key, _ string, _ bool, _ amqp.Table) error {
	if d.bindErr != nil {
		return d.bindErr
	}
	d.bound = append(d.bound, name+"/"+key)
	return nil
}

func (d *fakeDeclarer) Close() error {
	d.closed = true
	return nil
}

func TestDeclareTopology(t *testing.T) {
	boom := errors.New("channel/connection is not open")

	tests := []struct {
		name       string
		ch         *fakeDeclarer
		wantErr    string
		wantClosed bool
	}{
		{
			name: "success",
			ch:   &fakeDeclarer{},
		},
		{
			name:       "qos error",
			ch:         &fakeDeclarer{qosErr: boom},
			wantErr:    "failed to set QoS",
			wantClosed: true,
		},
		{
			name:       "exchange error",
			ch:         &fakeDeclarer{exchangeErr: boom},
			wantErr:    "failed to declare exchange notifications",
			wantClosed: true,
		},
		{
			name:       "queue error",
			ch:         &fakeDeclarer{queueErr: boom},
			wantErr:    "failed to declare queue notifications.renewal",
			wantClosed: true,
		},
		{
			name:       "bind error",
			ch:         &fakeDeclarer{bindErr: boom},
			wantErr:    "failed to bind queue notifications.renewal",
			wantClosed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := declareTopology(tt.ch, GetNotificationQueues())

			if tt.wantErr != "" {
				assert.ErrorIs(t, err, boom)
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, []string{"notifications.renewal/renewal", "notifications.payment/payment"}, tt.ch.bound)
			}
			assert.Equal(t, tt.wantClosed, tt.ch.closed)
		})
	}
}
