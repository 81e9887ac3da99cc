package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/troovstudio/troov-backend/internal/platform/apierr"
)

func TestRespondErr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{name: "api error", err: apierr.BadRequest("invalid_ticket", "Subject and message are required"), status: http.StatusBadRequest, code: "invalid_ticket", msg: "Subject and message are required"},
		{name: "wrapped", err: errors.Join(errors.New("ctx"), apierr.NotFound("project")), status: http.StatusNotFound, code: "not_found", msg: "project not found"},
		{name: "plain", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_error", msg: "boom"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		RespondErr(c, tc.err)
		if rec.Code != tc.status {
			t.Fatalf("%s: status want=%d got=%d", tc.name, tc.status, rec.Code)
		}
		var env ErrorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if env.Error.Code != tc.code || env.Error.Message != tc.msg {
			t.Fatalf("%s: want=%s/%q got=%s/%q", tc.name, tc.code, tc.msg, env.Error.Code, env.Error.Message)
		}
	}
}
