package coursemail_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coursemail"
	"github.com/dmitrymomot/coursemail/pkg/health"
	"github.com/dmitrymomot/coursemail/pkg/logger"
	"github.com/dmitrymomot/coursemail/pkg/mailer"
	"github.com/dmitrymomot/coursemail/pkg/mailer/smtp"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Verify(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTransport) Send(ctx context.Context, email *mailer.Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *mockTransport) Close() error {
	return m.Called().Error(0)
}

func testConfig() coursemail.Config {
	return coursemail.Config{
		Transport: coursemail.TransportSMTP,
		Platform:  testPlatform(),
		SMTP: smtp.Config{
			Host:     "smtp.courseplatform.com",
			Port:     587,
			User:     "noreply@courseplatform.com",
			Password: "app-password",
		},
	}
}

func newService(t *testing.T, tr mailer.Transport, opts ...coursemail.Option) *coursemail.Service {
	t.Helper()

	opts = append([]coursemail.Option{
		coursemail.WithTransportFactory(func() (mailer.Transport, error) { return tr, nil }),
		coursemail.WithCatalogOptions(coursemail.WithClock(fixedClock)),
	}, opts...)

	svc, err := coursemail.New(testConfig(), opts...)
	require.NoError(t, err)
	return svc
}

func TestService_SendWelcome(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	tr.On("Verify", mock.Anything).Return(nil)
	tr.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return e.To[0] == "john@example.com" &&
			e.Subject == "Welcome to Course Platform!" &&
			e.From == `"Course Platform" <noreply@courseplatform.com>` &&
			e.ReplyTo == "support@courseplatform.com" &&
			strings.Contains(e.HTML, "Welcome aboard, John Doe!") &&
			strings.Contains(e.Text, "Log in to your account: http://localhost:3000/staff/login")
	})).Return("<id-1@courseplatform.com>", nil)
	tr.On("Close").Return(nil)

	res := newService(t, tr).SendWelcome(context.Background(), coursemail.WelcomeData{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		UserType:  coursemail.RoleStaff,
	})

	require.Equal(t, mailer.Succeeded("<id-1@courseplatform.com>"), res)
	tr.AssertExpectations(t)
}

func TestService_SendEnrollment(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	tr.On("Verify", mock.Anything).Return(nil)
	tr.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return e.To[0] == "jane@example.com" &&
			e.Subject == "Enrollment Confirmed: Go Basics | Course Platform" &&
			strings.Contains(e.HTML, "March 5, 2031")
	})).Return("abc123", nil)
	tr.On("Close").Return(nil)

	// Zero enrollment date falls back to the catalog clock.
	res := newService(t, tr).SendEnrollment(context.Background(), coursemail.EnrollmentData{
		StudentName:  "Jane",
		StudentEmail: "jane@example.com",
		CourseTitle:  "Go Basics",
	})

	require.True(t, res.Success)
	require.Equal(t, "abc123", res.MessageID)
	tr.AssertExpectations(t)
}

func TestService_SendPasswordReset_VerifyFailure(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	tr.On("Verify", mock.Anything).Return(errors.New("SMTP failure"))
	tr.On("Close").Return(nil)

	res := newService(t, tr).SendPasswordReset(context.Background(), coursemail.PasswordResetData{
		Email:         "john@example.com",
		ResetCode:     "123456",
		ExpiryMinutes: 10,
	})

	require.Equal(t, mailer.Failed("SMTP failure"), res)
	tr.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	tr.AssertExpectations(t)
}

func TestService_CredentialsMissing(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	cfg := testConfig()
	cfg.SMTP.Password = ""

	svc, err := coursemail.New(cfg, coursemail.WithTransportFactory(func() (mailer.Transport, error) {
		t.Fatal("factory must not be called")
		return tr, nil
	}))
	require.NoError(t, err)

	res := svc.SendWelcome(context.Background(), coursemail.WelcomeData{Email: "john@example.com"})
	require.Equal(t, mailer.Failed(mailer.MsgCredentialsMissing), res)
	tr.AssertNotCalled(t, "Verify", mock.Anything)
}

func TestService_RenderFailure(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	var buf bytes.Buffer
	log := logger.New(logger.Config{}, logger.WithOutput(&buf))

	svc := newService(t, tr,
		coursemail.WithLogger(log),
		coursemail.WithCatalogOptions(coursemail.WithTemplates(fstest.MapFS{})),
	)

	res := svc.SendWelcome(context.Background(), coursemail.WelcomeData{Email: "john@example.com"})
	require.False(t, res.Success)
	require.Contains(t, res.Error, mailer.ErrTemplateNotFound.Error())
	assert.Contains(t, buf.String(), "failed to render email")
	tr.AssertNotCalled(t, "Verify", mock.Anything)
}

func TestService_Send(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	tr.On("Verify", mock.Anything).Return(nil)
	tr.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return e.Text == "Hello World"
	})).Return("abc123", nil)
	tr.On("Close").Return(nil)

	res := newService(t, tr).Send(context.Background(), mailer.Options{
		To:      "user@example.com",
		Subject: "Test",
		HTML:    "<p>Hello <strong>World</strong></p>",
	})
	require.Equal(t, mailer.Succeeded("abc123"), res)
}

func TestNew_Transports(t *testing.T) {
	t.Parallel()

	t.Run("resend credentials", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.Transport = coursemail.TransportResend
		cfg.Resend.APIKey = "re_123"
		cfg.Resend.SenderEmail = "hello@courseplatform.com"

		svc, err := coursemail.New(cfg)
		require.NoError(t, err)
		require.NotNil(t, svc.Catalog())
	})

	t.Run("resend without key fails the gate", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.Transport = coursemail.TransportResend

		svc, err := coursemail.New(cfg)
		require.NoError(t, err)

		res := svc.Send(context.Background(), mailer.Options{To: "a@example.com", HTML: "<p>x</p>"})
		require.Equal(t, mailer.Failed(mailer.MsgCredentialsMissing), res)
	})

	t.Run("unknown transport", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.Transport = "carrier-pigeon"

		_, err := coursemail.New(cfg)
		require.ErrorIs(t, err, coursemail.ErrUnknownTransport)
	})

	t.Run("credentials override", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.SMTP.User = ""

		tr := &mockTransport{}
		tr.On("Verify", mock.Anything).Return(nil)
		tr.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.From == `"Course Platform" <ops@courseplatform.com>`
		})).Return("id", nil)
		tr.On("Close").Return(nil)

		svc, err := coursemail.New(cfg,
			coursemail.WithTransportFactory(func() (mailer.Transport, error) { return tr, nil }),
			coursemail.WithCredentials(mailer.Credentials{User: "ops@courseplatform.com", Secret: "s"}),
		)
		require.NoError(t, err)

		res := svc.Send(context.Background(), mailer.Options{To: "a@example.com", HTML: "<p>x</p>"})
		require.True(t, res.Success)
		tr.AssertExpectations(t)
	})
}

func TestService_Checks(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		tr := &mockTransport{}
		tr.On("Verify", mock.Anything).Return(nil)
		tr.On("Close").Return(nil)

		report := health.Run(context.Background(), newService(t, tr).Checks())
		require.True(t, report.Healthy(), report.Checks)
		tr.AssertExpectations(t)
	})

	t.Run("transport down", func(t *testing.T) {
		t.Parallel()

		tr := &mockTransport{}
		tr.On("Verify", mock.Anything).Return(errors.New("SMTP failure"))
		tr.On("Close").Return(nil)

		report := health.Run(context.Background(), newService(t, tr).Checks())
		require.False(t, report.Healthy())
		assert.Equal(t, "SMTP failure", report.Checks["transport"].Error)
		assert.Equal(t, health.StatusHealthy, report.Checks["templates"].Status)
	})

	t.Run("missing templates", func(t *testing.T) {
		t.Parallel()

		tr := &mockTransport{}
		tr.On("Verify", mock.Anything).Return(nil)
		tr.On("Close").Return(nil)

		svc := newService(t, tr, coursemail.WithCatalogOptions(coursemail.WithTemplates(fstest.MapFS{})))
		report := health.Run(context.Background(), svc.Checks())
		assert.Equal(t, health.StatusUnhealthy, report.Checks["templates"].Status)
	})
}
