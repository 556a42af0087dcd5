package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"messenger/backend/internal/account"
	"messenger/backend/internal/api/handler"
	"messenger/backend/internal/conversation"
	"messenger/backend/internal/models"
	"messenger/backend/internal/moderation"
	"messenger/backend/internal/storage/storagetest"
	"messenger/backend/internal/verification"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(storageMock *storagetest.MockStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewHandler(
		account.NewService(storageMock, []byte("test-secret")),
		conversation.NewService(storageMock),
		moderation.NewService(storageMock, nil),
		verification.NewService(storageMock),
		storageMock,
		true,
	)
	return handler.NewRouter(h)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestPreflight_AnswersWithCORSHeaders(t *testing.T) {
	r := newTestRouter(new(storagetest.MockStorage))

	req := httptest.NewRequest(http.MethodOptions, "/moderation", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, X-Auth-Token, X-User-Id", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestUnknownRoute_Is404(t *testing.T) {
	r := newTestRouter(new(storagetest.MockStorage))

	w, body := doJSON(t, r, http.MethodGet, "/nope", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", body["error"])
}

func TestMessages_MissingIdentityHeaderIs401(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	w, body := doJSON(t, r, http.MethodGet, "/messages", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", body["error"])
	storageMock.AssertNotCalled(t, "ListChatSummaries", mock.Anything)
}

func TestMessages_InboxShape(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	last := "hi"
	storageMock.On("TouchPresence", uint(1)).Return(nil)
	storageMock.On("ListChatSummaries", uint(1)).Return([]models.ChatSummary{
		{ChatID: 7, UserID: 2, Username: "bob", LastMessage: &last, UnreadCount: 1},
	}, nil).Once()
	storageMock.On("IsOnline", uint(2)).Return(false, nil).Once()

	w, body := doJSON(t, r, http.MethodGet, "/messages", nil, map[string]string{"X-User-Id": "1"})

	require.Equal(t, http.StatusOK, w.Code)
	chats := body["chats"].([]any)
	require.Len(t, chats, 1)
	chat := chats[0].(map[string]any)
	assert.EqualValues(t, 7, chat["chat_id"])
	assert.Equal(t, "bob", chat["username"])
	assert.Equal(t, "hi", chat["last_message"])
	assert.EqualValues(t, 1, chat["unread_count"])
}

func TestMessages_HistoryTriggersMarkRead(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("TouchPresence", uint(1)).Return(nil)
	storageMock.On("FetchAndMarkRead", uint(9), uint(1)).Return([]models.MessageView{
		{ID: 3, MessageText: "hey", SenderID: 2, SenderUsername: "bob"},
	}, nil).Once()

	w, body := doJSON(t, r, http.MethodGet, "/messages?chat_id=9", nil, map[string]string{"X-User-Id": "1"})

	require.Equal(t, http.StatusOK, w.Code)
	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	storageMock.AssertExpectations(t)
}

func TestMessages_SendCreatesChat(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("TouchPresence", uint(1)).Return(nil)
	storageMock.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, Username: "bob"}, nil).Once()
	storageMock.On("GetOrCreateChat", uint(1), uint(2)).Return(uint(7), nil).Once()
	storageMock.On("SaveMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Message).ID = 100
		}).
		Return(nil).Once()

	w, body := doJSON(t, r, http.MethodPost, "/messages",
		map[string]any{"recipient_id": 2, "message_text": "hi"},
		map[string]string{"X-User-Id": "1"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 7, body["chat_id"])
	msg := body["message"].(map[string]any)
	assert.EqualValues(t, 100, msg["id"])
}

func TestMessages_SendValidation(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("TouchPresence", uint(1)).Return(nil)

	w, body := doJSON(t, r, http.MethodPost, "/messages",
		map[string]any{"recipient_id": 2, "message_text": "  "},
		map[string]string{"X-User-Id": "1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "message_text")
}

func TestModeration_NonAdminListIs403(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("TouchPresence", uint(3)).Return(nil)
	storageMock.On("GetUserByID", uint(3)).Return(&models.User{ID: 3}, nil).Once()

	w, body := doJSON(t, r, http.MethodGet, "/moderation", nil, map[string]string{"X-User-Id": "3"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required", body["error"])
	storageMock.AssertNotCalled(t, "ListReports", mock.Anything)
}

func TestModeration_FileReport(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("TouchPresence", uint(1)).Return(nil)
	storageMock.On("SaveReport", mock.AnythingOfType("*models.Report")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Report).ID = 11
		}).
		Return(nil).Once()

	w, body := doJSON(t, r, http.MethodPost, "/moderation",
		map[string]any{"reported_user_id": 2, "reason": "spam"},
		map[string]string{"X-User-Id": "1"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 11, body["report_id"])
	assert.Equal(t, "Report submitted", body["message"])
}

func TestModeration_AdminResolve(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("TouchPresence", uint(3)).Return(nil)
	storageMock.On("GetUserByID", uint(3)).Return(&models.User{ID: 3, IsAdmin: true}, nil).Once()
	storageMock.On("ReviewReport", uint(8), "dismissed", uint(3)).Return(nil).Once()

	w, body := doJSON(t, r, http.MethodPut, "/moderation",
		map[string]any{"report_id": 8, "status": "dismissed"},
		map[string]string{"X-User-Id": "3"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Report updated", body["message"])
	storageMock.AssertExpectations(t)
}

func TestAuth_RegisterConflictIs409(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("CreateUser", mock.AnythingOfType("*models.User")).
		Return(gorm.ErrDuplicatedKey).Once()

	w, body := doJSON(t, r, http.MethodPost, "/auth",
		map[string]any{"username": "alice", "password": "pw"}, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already exists", body["error"])
}

func TestAuth_RegisterIssuesToken(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("CreateUser", mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.User).ID = 1
		}).
		Return(nil).Once()

	w, body := doJSON(t, r, http.MethodPost, "/auth",
		map[string]any{"username": "alice", "full_name": "Alice A."}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
}

func TestAuth_SearchWithoutQueryIs404(t *testing.T) {
	r := newTestRouter(new(storagetest.MockStorage))

	w, body := doJSON(t, r, http.MethodGet, "/auth", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", body["error"])
}

func TestSms_SendReturnsDevCode(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("IssueCode", "+15551234", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	w, body := doJSON(t, r, http.MethodPost, "/sms",
		map[string]any{"action": "send", "phone": "+15551234"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["dev_code"], 6)
}

func TestSms_VerifyMismatchIs400(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("ConsumeCode", "+15551234", "000000", mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	w, body := doJSON(t, r, http.MethodPost, "/sms",
		map[string]any{"action": "verify", "phone": "+15551234", "code": "000000"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired code", body["error"])
}

func TestSms_VerifyMatch(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	r := newTestRouter(storageMock)

	storageMock.On("ConsumeCode", "+15551234", "123456", mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	w, body := doJSON(t, r, http.MethodPost, "/sms",
		map[string]any{"action": "verify", "phone": "+15551234", "code": "123456"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["verified"])
}

func TestSms_UnknownActionIs404(t *testing.T) {
	r := newTestRouter(new(storagetest.MockStorage))

	w, body := doJSON(t, r, http.MethodPost, "/sms",
		map[string]any{"action": "resend", "phone": "+15551234"}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", body["error"])
}
