package messaging

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"

	logrus "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestEmailSender(t *testing.T) {
	dialer := &fakeDialer{}
	s := &EmailSender{from: "noreply@example.com", dialer: dialer}

	err := s.Send(context.Background(), Message{To: "awa@example.com", Subject: "Code", Body: "1234"})
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"awa@example.com"}, dialer.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"noreply@example.com"}, dialer.sent[0].GetHeader("From"))

	dialer.err = errors.New("dial tcp: refused")
	err = s.Send(context.Background(), Message{To: "awa@example.com"})
	assert.ErrorContains(t, err, "refused")
}

type fakeCreator struct {
	params *twilioApi.CreateMessageParams
}

func (f *fakeCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	return &twilioApi.ApiV2010Message{}, nil
}

func TestSMSSender(t *testing.T) {
	api := &fakeCreator{}
	s := &SMSSender{from: "+15005550006", api: api}

	require.NoError(t, s.Send(context.Background(), Message{To: "+221770000001", Body: "code 1234"}))
	require.NotNil(t, api.params)
	assert.Equal(t, "+221770000001", *api.params.To)
	assert.Equal(t, "+15005550006", *api.params.From)
	assert.Equal(t, "code 1234", *api.params.Body)
}

type blockingSender struct{}

func (blockingSender) Send(ctx context.Context, _ Message) error {
	<-ctx.Done()
	return ctx.Err()
}

type countingSender struct {
	calls atomic.Int32
	err   error
}

func (c *countingSender) Send(context.Context, Message) error {
	c.calls.Add(1)
	return c.err
}

func TestDispatcherRunsAndWaits(t *testing.T) {
	log, hook := test.NewNullLogger()
	d := NewDispatcher(log, time.Second)

	ok := &countingSender{}
	failing := &countingSender{err: errors.New("boom")}
	for i := 0; i < 3; i++ {
		d.Dispatch(ChannelEmail, ok, Message{To: "a@example.com"})
	}
	d.Dispatch(ChannelSMS, failing, Message{To: "+221"})
	d.Wait()

	assert.EqualValues(t, 3, ok.calls.Load())
	assert.EqualValues(t, 1, failing.calls.Load())

	var errorsLogged int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errorsLogged++
		}
	}
	assert.Equal(t, 1, errorsLogged)
}

func TestDispatcherTimesOutSlowDelivery(t *testing.T) {
	log, _ := test.NewNullLogger()
	d := NewDispatcher(log, 20*time.Millisecond)

	d.Dispatch(ChannelEmail, blockingSender{}, Message{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, d.Drain(ctx))
}

func TestLogSender(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	s := LogSender{Channel: ChannelSMS, Log: log}

	require.NoError(t, s.Send(context.Background(), Message{To: "+221", Body: "Your reset code: 4821"}))
	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, "+221", hook.Entries[0].Data["to"])
	for _, e := range hook.AllEntries() {
		line, err := e.String()
		require.NoError(t, err)
		assert.NotContains(t, line, "4821", "reset codes must not reach the log")
	}
}
