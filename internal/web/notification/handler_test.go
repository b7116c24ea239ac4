package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitee.com/flycash/mece-notification/internal/domain"
	"gitee.com/flycash/mece-notification/internal/errs"
	notificationmocks "gitee.com/flycash/mece-notification/internal/service/notification/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(svc *notificationmocks.MockService) *gin.Engine {
	server := gin.New()
	NewHandler(svc, domain.DefaultLanguages(), time.UTC).PublicRoutes(server)
	return server
}

func exportDirectly(_ context.Context, msg *domain.NotificationMessage) (string, error) {
	return msg.Export()
}

func doRequest(t *testing.T, server *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch v := body.(type) {
	case string:
		buf.WriteString(v)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(v))
	}
	req, err := http.NewRequest(http.MethodPost, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_Preview(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		body     any
		before   func(svc *notificationmocks.MockService)
		wantCode int
		wantBody string
		wantMsg  string
	}{
		{
			name: "完整消息",
			body: map[string]any{
				"recipients":     []string{"user1", "user2"},
				"source":         "John Doe",
				"sourceId":       "ABC12345",
				"submitted":      "2016-01-24T11:00:00Z",
				"deadline":       "2016-01-24T13:00:00Z",
				"expiration":     "2016-01-24T15:00:00Z",
				"heading":        map[string]any{"fi": "Otsikko", "en": "Heading", "sv": "Rubrik"},
				"linkUrl":        map[string]any{"en": "http://www.example.com/en"},
				"avatarImageUrl": "https://www.example.com/avatarXy.jpg",
			},
			before: func(svc *notificationmocks.MockService) {
				svc.EXPECT().Preview(gomock.Any(), gomock.Any()).DoAndReturn(exportDirectly)
			},
			wantCode: http.StatusOK,
			wantBody: `{"recipients":["user1","user2"],"priority":"1","deadline":"2016-01-24T13:00:00Z","expiration":"2016-01-24T15:00:00Z","submitted":"2016-01-24T11:00:00Z","source":"John Doe","sourceId":"ABC12345","headingFI":"Otsikko","headingEN":"Heading","headingSV":"Rubrik","heading":"Otsikko","linkUrlFI":null,"linkUrlEN":"http:\/\/www.example.com\/en","linkUrlSV":null,"linkUrl":"http:\/\/www.example.com\/en","avatarImageUrl":"https:\/\/www.example.com\/avatarXy.jpg"}`,
		},
		{
			name: "未来的时间也可以按任意顺序给出",
			body: map[string]any{
				"recipients": []string{"user1"},
				"source":     "John Doe",
				"submitted":  "2999-01-24T11:00:00Z",
				"deadline":   "2999-01-24T10:00:00Z",
				"expiration": "2999-01-24T15:00:00Z",
			},
			before: func(svc *notificationmocks.MockService) {
				svc.EXPECT().Preview(gomock.Any(), gomock.Any()).DoAndReturn(exportDirectly)
			},
			wantCode: http.StatusOK,
			wantBody: `{"recipients":["user1"],"priority":"1","deadline":"2999-01-24T10:00:00Z","expiration":"2999-01-24T15:00:00Z","submitted":"2999-01-24T11:00:00Z","source":"John Doe"}`,
		},
		{
			name: "avatarImageUrl类型错误",
			body: map[string]any{
				"recipients":     []string{"user1"},
				"source":         "John Doe",
				"avatarImageUrl": true,
			},
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Given value type 'bool' for 'avatarImageUrl' property is not a string.",
		},
		{
			name: "不支持的语言",
			body: map[string]any{
				"recipients": []string{"user1"},
				"source":     "John Doe",
				"heading":    map[string]any{"de": "Überschrift"},
			},
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  `Language "de" is not supported.`,
		},
		{
			name: "多语言值不是字符串",
			body: map[string]any{
				"recipients": []string{"user1"},
				"source":     "John Doe",
				"message":    map[string]any{"fi": 1},
			},
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Value must be an string type.",
		},
		{
			name: "时区错误",
			body: map[string]any{
				"recipients": []string{"user1"},
				"source":     "John Doe",
				"submitted":  "2016-01-24T11:00:00+02:00",
			},
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  `submitted DateTime value must be in timezone "UTC"`,
		},
		{
			// expiration 晚于默认值，先写 expiration，再写 deadline 时触发校验
			name: "deadline晚于expiration",
			body: map[string]any{
				"recipients": []string{"user1"},
				"source":     "John Doe",
				"submitted":  "2099-01-24T11:00:00Z",
				"deadline":   "2099-01-24T16:00:00Z",
				"expiration": "2099-01-24T15:00:00Z",
			},
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Deadline can not be after expiration.",
		},
		{
			// 没有 submitted 时默认是当前时间，过去的 expiration 早于它
			name: "缺省submitted晚于expiration",
			body: map[string]any{
				"recipients": []string{"user1"},
				"source":     "John Doe",
				"deadline":   "2016-01-24T13:00:00Z",
				"expiration": "2016-01-24T15:00:00Z",
			},
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Expiration can not be before submitted.",
		},
		{
			name: "时间格式错误",
			body: map[string]any{
				"recipients": []string{"user1"},
				"source":     "John Doe",
				"deadline":   "yesterday",
			},
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  `deadline = "yesterday"`,
		},
		{
			name:     "缺少接收者",
			body:     map[string]any{"source": "John Doe"},
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Recipients",
		},
		{
			name:     "JSON格式错误",
			body:     `{"recipients":`,
			before:   func(svc *notificationmocks.MockService) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			svc := notificationmocks.NewMockService(ctrl)
			tc.before(svc)

			recorder := doRequest(t, newServer(svc), "/notifications/preview", tc.body)
			assert.Equal(t, tc.wantCode, recorder.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, recorder.Body.String())
				return
			}
			var res Result
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			assert.Contains(t, res.Msg, tc.wantMsg)
		})
	}
}

func TestHandler_Submit(t *testing.T) {
	t.Parallel()

	body := map[string]any{
		"recipients": []string{"user1"},
		"source":     "John Doe",
		"priority":   "2",
	}

	testCases := []struct {
		name     string
		before   func(svc *notificationmocks.MockService)
		wantCode int
		wantRes  Result
	}{
		{
			name: "发布成功",
			before: func(svc *notificationmocks.MockService) {
				svc.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, msg *domain.NotificationMessage) (domain.PublishReceipt, error) {
						assert.Equal(t, "2", msg.Priority())
						return domain.PublishReceipt{ID: 123, Topic: "notification_messages", Payload: "{}"}, nil
					})
			},
			wantCode: http.StatusOK,
			wantRes: Result{
				Code: codeOK,
				Msg:  "OK",
				Data: map[string]any{"id": "123", "topic": "notification_messages", "payload": "{}"},
			},
		},
		{
			name: "发布失败",
			before: func(svc *notificationmocks.MockService) {
				svc.EXPECT().Submit(gomock.Any(), gomock.Any()).
					Return(domain.PublishReceipt{}, errors.Join(errs.ErrPublishFailed, errors.New("broker down")))
			},
			wantCode: http.StatusInternalServerError,
			wantRes:  Result{Code: codeSystemError, Msg: "系统错误"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			svc := notificationmocks.NewMockService(ctrl)
			tc.before(svc)

			recorder := doRequest(t, newServer(svc), "/notifications", body)
			assert.Equal(t, tc.wantCode, recorder.Code)
			var res Result
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			assert.Equal(t, tc.wantRes, res)
		})
	}
}
