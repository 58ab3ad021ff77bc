package handler

import (
	"context"
	"errors"
	"fmt"
	"foodbot/internal/adapters/metrics"
	"foodbot/internal/core/port"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodbot/internal/core/domain"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRegistry struct {
	mock.Mock
	cmd port.Command
}

func (m *MockRegistry) Get(cmd string) (port.Command, error) {
	args := m.Called(cmd)
	return m.cmd, args.Error(1)
}

func (m *MockRegistry) Register(handler port.Command) {
	m.cmd = handler
	m.Called(handler)
}

func (m *MockRegistry) ListCommands() []string {
	m.Called()
	return []string{"foo", "bar"}
}

type MockCmdHandler struct{ mock.Mock }

func (m *MockCmdHandler) Respond(ctx context.Context, timeout time.Duration, msg *domain.Message) error {
	args := m.Called(ctx, timeout, msg)
	return args.Error(0)
}

func (m *MockCmdHandler) GetCommand() string {
	m.Called()
	return ""
}

type MockAuthorizer struct{ mock.Mock }

func (m *MockAuthorizer) IsAuthorized(ctx context.Context, chatID int64) bool {
	args := m.Called(ctx, chatID)
	return args.Bool(0)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) CommandHandled(command, outcome string) {
	m.Called(command, outcome)
}

type MockSender struct{ mock.Mock }

func (m *MockSender) SendMessageReply(ctx context.Context, msg *domain.Message, text string) (int, error) {
	args := m.Called(ctx, msg, text)
	return args.Int(0), args.Error(1)
}

func (m *MockSender) NotifyAndReturnError(ctx context.Context, err error, msg *domain.Message) error {
	args := m.Called(ctx, err, msg)
	return args.Error(0)
}

const botUsername = "food_bot"

func makeUpdate(txt string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Text: txt,
			Chat: models.Chat{ID: 100},
			From: &models.User{ID: 200, Username: "bob", FirstName: "Bob"},
		},
	}
}

func TestCommandHandler_Handle(t *testing.T) {
	type testcase struct {
		name       string
		update     *models.Update
		chatType   models.ChatType
		mockSetup  func(r *MockRegistry, ch *MockCmdHandler, a *MockAuthorizer, s *MockSender, m *MockMetrics)
		wantCalled bool
		wantMsg    *domain.Message
	}

	tests := []testcase{
		{
			name:   "no message in update",
			update: &models.Update{},
			mockSetup: func(_ *MockRegistry, _ *MockCmdHandler, _ *MockAuthorizer, _ *MockSender, _ *MockMetrics) {
				// No call
			},
			wantCalled: false,
		},
		{
			name:   "unknown command in group is not answered",
			update: makeUpdate("/unknown"),
			mockSetup: func(r *MockRegistry, _ *MockCmdHandler, _ *MockAuthorizer, _ *MockSender, m *MockMetrics) {
				r.On("Get", "/unknown").Return(nil, errors.New("no handler"))
				m.On("CommandHandled", metrics.CommandUnknown, metrics.OutcomeUnknown).Return()
			},
			wantCalled: false,
		},
		{
			name:   "unknown command addressed to the bot",
			update: makeUpdate("/unknown@Food_Bot"),
			mockSetup: func(r *MockRegistry, _ *MockCmdHandler, a *MockAuthorizer, s *MockSender, m *MockMetrics) {
				r.On("Get", "/unknown").Return(nil, errors.New("no handler"))
				a.On("IsAuthorized", mock.Anything, int64(100)).Return(true)
				s.On("SendMessageReply", mock.Anything, mock.Anything, unknownCommand).Return(2, nil)
				m.On("CommandHandled", metrics.CommandUnknown, metrics.OutcomeUnknown).Return()
			},
			wantCalled: false,
		},
		{
			name:     "unknown command in private chat",
			update:   makeUpdate("/unknown"),
			chatType: models.ChatTypePrivate,
			mockSetup: func(r *MockRegistry, _ *MockCmdHandler, a *MockAuthorizer, s *MockSender, m *MockMetrics) {
				r.On("Get", "/unknown").Return(nil, errors.New("no handler"))
				a.On("IsAuthorized", mock.Anything, int64(100)).Return(true)
				s.On("SendMessageReply", mock.Anything, mock.Anything, unknownCommand).Return(2, nil)
				m.On("CommandHandled", metrics.CommandUnknown, metrics.OutcomeUnknown).Return()
			},
			wantCalled: false,
		},
		{
			name:   "command for another bot is ignored",
			update: makeUpdate("/start@some_other_bot waffles"),
			mockSetup: func(_ *MockRegistry, _ *MockCmdHandler, _ *MockAuthorizer, _ *MockSender, _ *MockMetrics) {
			},
			wantCalled: false,
		},
		{
			name:   "unauthorized chat",
			update: makeUpdate("/order waffles"),
			mockSetup: func(r *MockRegistry, _ *MockCmdHandler, a *MockAuthorizer, _ *MockSender, m *MockMetrics) {
				r.On("Get", "/order").Return(nil, nil)
				a.On("IsAuthorized", mock.Anything, int64(100)).Return(false)
				m.On("CommandHandled", "/order", metrics.OutcomeUnauthorized).Return()
			},
			wantCalled: false,
		},
		{
			name:   "known command, Respond called successfully",
			update: makeUpdate("/order@food_bot Large Syrup"),
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler, a *MockAuthorizer, _ *MockSender, m *MockMetrics) {
				r.On("Get", "/order").Return(ch, nil)
				a.On("IsAuthorized", mock.Anything, int64(100)).Return(true)
				ch.On("Respond", mock.Anything, mock.Anything,
					mock.AnythingOfType("*domain.Message")).Return(nil)
				m.On("CommandHandled", "/order", metrics.OutcomeHandled).Return()
			},
			wantCalled: true,
			wantMsg: &domain.Message{
				ID:       1,
				ChatID:   100,
				UserID:   200,
				Username: "Bob",
				Text:     "/order@food_bot Large Syrup",
			},
		},
		{
			name:   "known command, Respond returns error",
			update: makeUpdate("/view"),
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler, a *MockAuthorizer, _ *MockSender, m *MockMetrics) {
				r.On("Get", "/view").Return(ch, nil)
				a.On("IsAuthorized", mock.Anything, int64(100)).Return(true)
				ch.On("Respond", mock.Anything, mock.Anything,
					mock.AnythingOfType("*domain.Message")).Return(errors.New("fail"))
				m.On("CommandHandled", "/view", metrics.OutcomeFailed).Return()
			},
			wantCalled: true,
			wantMsg:    nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := new(MockRegistry)
			handler := new(MockCmdHandler)
			auth := new(MockAuthorizer)
			sender := new(MockSender)
			m := new(MockMetrics)
			reg.cmd = handler
			tc.mockSetup(reg, handler, auth, sender, m)

			if tc.update.Message != nil {
				tc.update.Message.Chat.Type = tc.chatType
			}

			ch := NewCommand(reg, auth, sender, m, "@"+botUsername, 3*time.Second)
			ch.Handle(t.Context(), nil, tc.update)

			// as the Respond() call is a goroutine, wait for finish
			time.Sleep(100 * time.Millisecond)

			reg.AssertExpectations(t)
			auth.AssertExpectations(t)
			sender.AssertExpectations(t)
			m.AssertExpectations(t)
			if tc.wantCalled {
				if tc.wantMsg != nil {
					handler.AssertCalled(t, "Respond",
						mock.Anything,
						3*time.Second,
						mock.MatchedBy(func(msg *domain.Message) bool {
							return assert.ObjectsAreEqual(tc.wantMsg, msg)
						}),
					)
				} else {
					handler.AssertCalled(t, "Respond",
						mock.Anything,
						mock.Anything,
						mock.AnythingOfType("*domain.Message"),
					)
				}
			} else {
				assert.Empty(t, handler.Calls)
			}
		})
	}
}

func TestCommandHandler_UnknownCommandsShareOneSeries(t *testing.T) {
	reg := new(MockRegistry)
	reg.On("Get", mock.Anything).Return(nil, errors.New("no handler"))
	prom := metrics.NewPrometheus(func() int { return 0 })

	ch := NewCommand(reg, new(MockAuthorizer), new(MockSender), prom, botUsername, time.Second)
	for i := range 50 {
		ch.Handle(t.Context(), nil, makeUpdate(fmt.Sprintf("/junk%d", i)))
	}

	rec := httptest.NewRecorder()
	prom.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "foodbot_commands_total{"))
	assert.Contains(t, body, `foodbot_commands_total{command="unknown",outcome="unknown"} 50`)
	assert.NotContains(t, body, "junk")
}

func Test_getDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		expected string
	}{
		{
			name:     "first name present",
			user:     &models.User{Username: "alice", FirstName: "Alice"},
			expected: "Alice",
		},
		{
			name:     "empty first name, fallback to username",
			user:     &models.User{Username: "bob"},
			expected: "@bob",
		},
		{
			name:     "neither",
			user:     &models.User{ID: 3},
			expected: "someone",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, getDisplayName(tc.user))
		})
	}
}

func Test_newRequestID(t *testing.T) {
	a := newRequestID()
	b := newRequestID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
